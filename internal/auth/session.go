// ABOUTME: Persisted login flag shared by every command run against a data directory
// ABOUTME: Login stores the flag after a successful check; logout removes it

package auth

import (
	"errors"
	"fmt"

	"github.com/harper/autoseguro/internal/kvstore"
)

// SessionKey is the substrate key holding the login flag.
const SessionKey = "auth"

const loggedIn = "true"

// Session tracks whether the operator is logged in.
type Session struct {
	kv kvstore.Store
}

// NewSession creates a session on top of a substrate.
func NewSession(kv kvstore.Store) *Session {
	return &Session{kv: kv}
}

// Login checks the credentials and marks the session as logged in.
func (s *Session) Login(a Authenticator, username, password string) error {
	if err := a.Authenticate(username, password); err != nil {
		return err
	}
	if err := s.kv.Set(SessionKey, loggedIn); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout clears the login flag.
func (s *Session) Logout() error {
	if err := s.kv.Delete(SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the login flag is set.
func (s *Session) IsAuthenticated() (bool, error) {
	v, err := s.kv.Get(SessionKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	return v == loggedIn, nil
}

// Require returns ErrNotAuthenticated unless the operator is logged in.
func (s *Session) Require() error {
	ok, err := s.IsAuthenticated()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthenticated
	}
	return nil
}
