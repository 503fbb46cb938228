package service

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testBaaSSecret  = "baas-jwt-secret-0123456789abcdef0123456789"
	testTokenSecret = "token-session-secret-0123456789abcdef012345"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signBaaSToken signs an access token the way the BaaS auth service does.
func signBaaSToken(t *testing.T, secret, subject, audience string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": "authenticated",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}
	if audience != "" {
		claims["aud"] = audience
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newRequest(cookies map[string]string, bearer string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

func newTestBaaSProvider() *BaaSSessionProvider {
	return NewBaaSSessionProvider(BaaSSessionConfig{
		JWTSecret:  []byte(testBaaSSecret),
		Audience:   "authenticated",
		CookieName: "sb-access-token",
	}, createTestLogger())
}

func newTestTokenService() TokenService {
	return NewTokenService(TokenServiceConfig{
		Secret:     []byte(testTokenSecret),
		Issuer:     "tenantvault",
		Expiration: time.Hour,
	})
}

func newTestTokenProvider() *TokenSessionProvider {
	return NewTokenSessionProvider(newTestTokenService(), "session-token", createTestLogger())
}
