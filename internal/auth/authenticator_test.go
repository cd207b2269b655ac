package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T, password string) *Authenticator {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthenticator(string(hashed), "test-secret", time.Hour)
}

func TestAuthenticator_Login(t *testing.T) {
	a := newTestAuthenticator(t, "s3cret")

	t.Run("CorrectPassword", func(t *testing.T) {
		token, exp, err := a.Login("s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := a.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.Equal(t, RoleAdmin, claims.Subject)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := a.Login("admin123")
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("NoHashConfigured", func(t *testing.T) {
		_, _, err := NewAuthenticator("", "test-secret", 0).Login("anything")
		assert.ErrorIs(t, err, ErrAdminDisabled)
	})
}

func TestAuthenticator_Verify(t *testing.T) {
	a := newTestAuthenticator(t, "s3cret")

	t.Run("Expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		a.now = func() time.Time { return past }
		token, _, err := a.Issue()
		require.NoError(t, err)
		a.now = time.Now

		_, err = a.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthenticator("", "other-secret", time.Hour)
		token, _, err := other.Issue()
		require.NoError(t, err)

		_, err = a.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("NonAdminRole", func(t *testing.T) {
		claims := Claims{Role: "viewer", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = a.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := a.Verify("not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("NoSecretRejectsEverything", func(t *testing.T) {
		claims := Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte{})
		require.NoError(t, err)

		got, err := NewAuthenticator("", "", time.Hour).Verify(forged)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.ErrorIs(t, err, ErrAdminDisabled)
	})

	t.Run("NoPasswordHashRejectsSignedToken", func(t *testing.T) {
		signer := NewAuthenticator("", "test-secret", time.Hour)
		token, _, err := signer.Issue()
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.False(t, signer.Enabled())
	})
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
