package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	"github.com/allisson/tenantvault/internal/vault/usecase/mocks"
)

func TestCredentialChecker_HasCredentials(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mode       string
		baasExists bool
		dbExists   bool
		expected   bool
	}{
		{"DatabaseModeWithDatabase", RequireDatabase, false, true, true},
		{"DatabaseModeWithOnlyBaaS", RequireDatabase, true, false, false},
		{"BaaSModeWithBaaS", RequireBaaS, true, false, true},
		{"BaaSModeWithOnlyDatabase", RequireBaaS, false, true, false},
		{"AnyModeWithBaaS", RequireAny, true, false, true},
		{"AnyModeWithDatabase", RequireAny, false, true, true},
		{"AnyModeWithNothing", RequireAny, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baasStore := &mocks.MockCredentialStore[vaultDomain.BaaSCredentials]{}
			dbStore := &mocks.MockCredentialStore[vaultDomain.DatabaseConnection]{}
			baasStore.On("Exists", ctx, testTenant).Return(tt.baasExists, nil).Maybe()
			dbStore.On("Exists", ctx, testTenant).Return(tt.dbExists, nil).Maybe()

			checker, err := NewCredentialChecker(tt.mode, baasStore, dbStore)
			require.NoError(t, err)

			has, err := checker.HasCredentials(ctx, testTenant)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, has)
		})
	}

	t.Run("Error_StoreFailure", func(t *testing.T) {
		baasStore := &mocks.MockCredentialStore[vaultDomain.BaaSCredentials]{}
		dbStore := &mocks.MockCredentialStore[vaultDomain.DatabaseConnection]{}
		storeErr := errors.New("redis down")
		dbStore.On("Exists", ctx, testTenant).Return(false, storeErr).Once()

		checker, err := NewCredentialChecker(RequireAny, baasStore, dbStore)
		require.NoError(t, err)

		has, err := checker.HasCredentials(ctx, testTenant)

		assert.False(t, has)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("Error_UnsupportedMode", func(t *testing.T) {
		checker, err := NewCredentialChecker("both", nil, nil)

		assert.Nil(t, checker)
		assert.Error(t, err)
	})
}
