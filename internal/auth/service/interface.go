// Package service resolves the tenant of an inbound request from its session credentials.
package service

import (
	"net/http"
	"time"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// IdentityProvider resolves a tenant from one session source.
//
// TryResolve returns false when the request carries no usable credential for this
// source. Invalid or expired credentials are treated the same as absent ones so the
// next provider gets a chance.
type IdentityProvider interface {
	Name() authDomain.Source
	TryResolve(r *http.Request) (authDomain.Identity, bool)
}

// IdentityResolver resolves the tenant of a request or returns authDomain.ErrUnauthenticated.
type IdentityResolver interface {
	Resolve(r *http.Request) (authDomain.Identity, error)
}

// TokenService issues and verifies session tokens for the token session source.
type TokenService interface {
	Issue(subject, email, name string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*authDomain.TokenSessionClaims, error)
}
