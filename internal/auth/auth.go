// ABOUTME: Operator authentication with a pluggable credential check
// ABOUTME: Ships a single-account authenticator backed by a bcrypt hash

package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Default operator credentials for a fresh installation.
const (
	DefaultUsername = "admin"
	DefaultPassword = "103020"
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not logged in")
)

// Authenticator checks a username and password.
type Authenticator interface {
	Authenticate(username, password string) error
}

// StaticAuthenticator accepts exactly one account. The username is compared
// case-insensitively.
type StaticAuthenticator struct {
	Username     string
	PasswordHash []byte
}

var _ Authenticator = (*StaticAuthenticator)(nil)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// NewStaticAuthenticator creates an authenticator for one account. An empty
// hash falls back to the default password.
func NewStaticAuthenticator(username, passwordHash string) (*StaticAuthenticator, error) {
	if username == "" {
		username = DefaultUsername
	}
	if passwordHash == "" {
		h, err := HashPassword(DefaultPassword)
		if err != nil {
			return nil, err
		}
		passwordHash = h
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &StaticAuthenticator{Username: username, PasswordHash: []byte(passwordHash)}, nil
}

// Authenticate implements Authenticator.
func (a *StaticAuthenticator) Authenticate(username, password string) error {
	if !strings.EqualFold(strings.TrimSpace(username), a.Username) {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
