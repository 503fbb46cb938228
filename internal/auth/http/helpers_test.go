package http

import (
	"io"
	"log/slog"
	"net/http"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

const testTenant = authDomain.TenantID("6f1c2d3e-4a5b-4c6d-8e7f-0a1b2c3d4e5f")

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubResolver resolves every request to identity, or fails when identity is zero.
type stubResolver struct {
	identity authDomain.Identity
}

func (s stubResolver) Resolve(_ *http.Request) (authDomain.Identity, error) {
	if s.identity.TenantID.IsZero() {
		return authDomain.Identity{}, authDomain.ErrUnauthenticated
	}
	return s.identity, nil
}

func resolvedAs(tenant authDomain.TenantID) stubResolver {
	return stubResolver{identity: authDomain.Identity{TenantID: tenant, Source: authDomain.SourceBaaSSession}}
}
