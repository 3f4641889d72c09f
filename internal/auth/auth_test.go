// ABOUTME: Tests for the static authenticator and the persisted session
// ABOUTME: Uses bcrypt.MinCost hashes to keep the suite fast

package auth

import (
	"errors"
	"testing"

	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthenticator(t *testing.T, user, pass string) *StaticAuthenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	require.NoError(t, err)
	a, err := NewStaticAuthenticator(user, string(hash))
	require.NoError(t, err)
	return a
}

func TestStaticAuthenticator_Defaults(t *testing.T) {
	a, err := NewStaticAuthenticator("", "")
	require.NoError(t, err)

	assert.NoError(t, a.Authenticate("admin", "103020"))
	assert.NoError(t, a.Authenticate("ADMIN", "103020"))
	assert.NoError(t, a.Authenticate(" Admin ", "103020"))
}

func TestStaticAuthenticator_Rejects(t *testing.T) {
	a := testAuthenticator(t, "corretor", "s3nha")

	tests := []struct {
		name, user, pass string
	}{
		{"wrong password", "corretor", "senha"},
		{"wrong user", "admin", "s3nha"},
		{"empty", "", ""},
		{"password case matters", "corretor", "S3NHA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authenticate(tt.user, tt.pass)
			assert.True(t, errors.Is(err, ErrInvalidCredentials))
		})
	}
}

func TestNewStaticAuthenticator_BadHash(t *testing.T) {
	_, err := NewStaticAuthenticator("admin", "plaintext")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("abc")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("abc")))
}

func TestSession_LoginLogout(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := NewSession(kv)
	a := testAuthenticator(t, "admin", "103020")

	ok, err := s.IsAuthenticated()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(s.Require(), ErrNotAuthenticated))

	require.NoError(t, s.Login(a, "admin", "103020"))
	v, err := kv.Get(SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	assert.NoError(t, s.Require())

	require.NoError(t, s.Logout())
	ok, err = s.IsAuthenticated()
	require.NoError(t, err)
	assert.False(t, ok)

	// Logging out twice is fine.
	assert.NoError(t, s.Logout())
}

func TestSession_FailedLoginDoesNotSetFlag(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := NewSession(kv)

	err := s.Login(testAuthenticator(t, "admin", "103020"), "admin", "000000")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = kv.Get(SessionKey)
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

func TestSession_StorageError(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	kv.FailSet = errors.New("read-only")

	err := NewSession(kv).Login(testAuthenticator(t, "admin", "103020"), "admin", "103020")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}
