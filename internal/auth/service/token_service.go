package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// TokenServiceConfig configures HS256 session tokens.
type TokenServiceConfig struct {
	Secret     []byte
	Issuer     string
	Expiration time.Duration
	Leeway     time.Duration
}

type tokenService struct {
	cfg    TokenServiceConfig
	parser *jwt.Parser
}

// NewTokenService creates a TokenService. Without a secret every call fails with
// authDomain.ErrSigningSecretNotConfigured.
func NewTokenService(cfg TokenServiceConfig) TokenService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &tokenService{cfg: cfg, parser: jwt.NewParser(opts...)}
}

func (t *tokenService) Issue(subject, email, name string) (string, time.Time, error) {
	if len(t.cfg.Secret) == 0 {
		return "", time.Time{}, authDomain.ErrSigningSecretNotConfigured
	}

	now := time.Now()
	expiresAt := now.Add(t.cfg.Expiration)

	claims := authDomain.TokenSessionClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

func (t *tokenService) Verify(token string) (*authDomain.TokenSessionClaims, error) {
	if len(t.cfg.Secret) == 0 {
		return nil, authDomain.ErrSigningSecretNotConfigured
	}

	claims := &authDomain.TokenSessionClaims{}
	_, err := t.parser.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return t.cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authDomain.ErrInvalidSessionToken, err)
	}
	return claims, nil
}
