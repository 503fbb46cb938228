package service

import (
	"log/slog"
	"net/http"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// Resolver tries identity providers in order and returns the first match.
type Resolver struct {
	providers []IdentityProvider
	logger    *slog.Logger
}

// NewResolver creates a Resolver. Provider order is precedence order; nil providers are skipped.
func NewResolver(logger *slog.Logger, providers ...IdentityProvider) *Resolver {
	enabled := make([]IdentityProvider, 0, len(providers))
	for _, provider := range providers {
		if provider != nil {
			enabled = append(enabled, provider)
		}
	}
	return &Resolver{providers: enabled, logger: logger}
}

// Resolve returns the identity of the first provider that recognizes the request.
func (r *Resolver) Resolve(req *http.Request) (authDomain.Identity, error) {
	for _, provider := range r.providers {
		if identity, ok := provider.TryResolve(req); ok {
			r.logger.Debug("identity resolved",
				slog.String("source", string(identity.Source)),
				slog.String("tenant", identity.TenantID.Redacted()),
			)
			return identity, nil
		}
	}
	return authDomain.Identity{}, authDomain.ErrUnauthenticated
}
