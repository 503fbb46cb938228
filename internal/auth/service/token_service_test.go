package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

func TestTokenService_IssueVerify(t *testing.T) {
	service := newTestTokenService()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		token, expiresAt, err := service.Issue("sub-1", "alice@example.com", "Alice")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", claims.Subject)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "Alice", claims.Name)
		assert.Equal(t, "tenantvault", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Error_WrongIssuer", func(t *testing.T) {
		other := NewTokenService(TokenServiceConfig{
			Secret:     []byte(testTokenSecret),
			Issuer:     "someone-else",
			Expiration: time.Hour,
		})
		token, _, err := other.Issue("sub-1", "", "")
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSessionToken)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		expired := NewTokenService(TokenServiceConfig{
			Secret:     []byte(testTokenSecret),
			Issuer:     "tenantvault",
			Expiration: -time.Minute,
		})
		token, _, err := expired.Issue("sub-1", "", "")
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSessionToken)
	})

	t.Run("Error_NoneAlgorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "sub-1",
			Issuer:    "tenantvault",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSessionToken)
	})

	t.Run("Error_SecretNotConfigured", func(t *testing.T) {
		unconfigured := NewTokenService(TokenServiceConfig{Expiration: time.Hour})

		_, _, err := unconfigured.Issue("sub-1", "", "")
		assert.ErrorIs(t, err, authDomain.ErrSigningSecretNotConfigured)

		_, err = unconfigured.Verify("anything")
		assert.ErrorIs(t, err, authDomain.ErrSigningSecretNotConfigured)
	})
}
