// Package http provides the identity, gating and rate limiting middleware that sits in
// front of every tenant-scoped route.
package http

import (
	"context"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// identityKey is a context key type for storing the resolved identity.
type identityKey struct{}

// WithIdentity stores a resolved identity in the context.
// This is typically called by IdentityMiddleware once per request.
func WithIdentity(ctx context.Context, identity authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the resolved identity from the context.
// Returns (identity, true) if a tenant was resolved, or a zero identity and false otherwise.
func GetIdentity(ctx context.Context) (authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(authDomain.Identity)
	if !ok || identity.TenantID.IsZero() {
		return authDomain.Identity{}, false
	}
	return identity, true
}

// GetTenant retrieves the resolved tenant from the context.
func GetTenant(ctx context.Context) (authDomain.TenantID, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.TenantID, ok
}
