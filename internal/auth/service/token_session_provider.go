package service

import (
	"log/slog"
	"net/http"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// TokenSessionProvider resolves tenants from session tokens signed by this application.
type TokenSessionProvider struct {
	tokenService TokenService
	cookieName   string
	logger       *slog.Logger
}

// NewTokenSessionProvider creates a TokenSessionProvider reading cookieName and the bearer header.
func NewTokenSessionProvider(
	tokenService TokenService,
	cookieName string,
	logger *slog.Logger,
) *TokenSessionProvider {
	return &TokenSessionProvider{
		tokenService: tokenService,
		cookieName:   cookieName,
		logger:       logger,
	}
}

// Name returns the source name.
func (p *TokenSessionProvider) Name() authDomain.Source {
	return authDomain.SourceTokenSession
}

// TryResolve returns the namespaced "token:" identity of a verified session token.
func (p *TokenSessionProvider) TryResolve(r *http.Request) (authDomain.Identity, bool) {
	for _, raw := range candidateTokens(r, p.cookieName) {
		claims, err := p.tokenService.Verify(raw)
		if err != nil {
			p.logger.Debug("token session rejected", slog.String("error", err.Error()))
			continue
		}

		if claims.Email == "" && claims.Subject == "" {
			continue
		}

		return authDomain.Identity{
			TenantID: authDomain.NewTokenTenantID(claims.Email, claims.Subject),
			Source:   authDomain.SourceTokenSession,
		}, true
	}

	return authDomain.Identity{}, false
}
