package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// BaaSSessionConfig configures verification of BaaS access tokens.
type BaaSSessionConfig struct {
	// JWTSecret is the HS256 secret of the BaaS project's auth service.
	JWTSecret []byte
	// Audience is the expected "aud" claim; empty disables the check.
	Audience string
	// CookieName is the cookie carrying the access token.
	CookieName string
	// Leeway tolerates clock skew on time-based claims.
	Leeway time.Duration
}

// BaaSSessionProvider resolves tenants from BaaS access tokens.
type BaaSSessionProvider struct {
	cfg    BaaSSessionConfig
	parser *jwt.Parser
	logger *slog.Logger
}

// NewBaaSSessionProvider creates a BaaSSessionProvider. With an empty JWT secret no token
// verifies, so callers leave the provider out of the resolver instead.
func NewBaaSSessionProvider(cfg BaaSSessionConfig, logger *slog.Logger) *BaaSSessionProvider {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &BaaSSessionProvider{
		cfg:    cfg,
		parser: jwt.NewParser(opts...),
		logger: logger,
	}
}

// Name returns the source name.
func (p *BaaSSessionProvider) Name() authDomain.Source {
	return authDomain.SourceBaaSSession
}

// TryResolve verifies the session token and returns the BaaS user id as tenant.
// Subjects that are not UUIDs are rejected.
func (p *BaaSSessionProvider) TryResolve(r *http.Request) (authDomain.Identity, bool) {
	for _, raw := range candidateTokens(r, p.cfg.CookieName) {
		claims := &authDomain.BaaSSessionClaims{}
		_, err := p.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
			return p.cfg.JWTSecret, nil
		})
		if err != nil {
			p.logger.Debug("baas session rejected", slog.String("error", err.Error()))
			continue
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			p.logger.Debug("baas session rejected: subject is not a uuid")
			continue
		}

		return authDomain.Identity{
			TenantID: authDomain.TenantID(userID.String()),
			Source:   authDomain.SourceBaaSSession,
		}, true
	}

	return authDomain.Identity{}, false
}
