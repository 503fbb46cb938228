package usecase

import (
	"context"
	"fmt"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// Credential requirement modes for the request gate.
const (
	RequireDatabase = "database"
	RequireBaaS     = "baas"
	RequireAny      = "any"
)

type existenceChecker interface {
	Exists(ctx context.Context, tenant authDomain.TenantID) (bool, error)
}

type credentialChecker struct {
	checkers []existenceChecker
}

// NewCredentialChecker builds the setup check for mode: RequireDatabase, RequireBaaS or
// RequireAny (either store satisfies it).
func NewCredentialChecker(
	mode string,
	baasStore BaaSCredentialStore,
	databaseStore DatabaseCredentialStore,
) (CredentialChecker, error) {
	switch mode {
	case RequireDatabase:
		return &credentialChecker{checkers: []existenceChecker{databaseStore}}, nil
	case RequireBaaS:
		return &credentialChecker{checkers: []existenceChecker{baasStore}}, nil
	case RequireAny:
		return &credentialChecker{checkers: []existenceChecker{databaseStore, baasStore}}, nil
	default:
		return nil, fmt.Errorf("unsupported credential requirement: %q", mode)
	}
}

func (c *credentialChecker) HasCredentials(ctx context.Context, tenant authDomain.TenantID) (bool, error) {
	for _, checker := range c.checkers {
		exists, err := checker.Exists(ctx, tenant)
		if err != nil {
			return false, err
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}
