package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

var (
	_ vaultUsecase.RecordRepository = (*PostgreSQLRecordRepository)(nil)
	_ vaultUsecase.RecordRepository = (*MySQLRecordRepository)(nil)
	_ vaultUsecase.RecordRepository = (*FileRecordRepository)(nil)
	_ vaultUsecase.RecordRepository = (*RedisRecordRepository)(nil)
)

const (
	tenantA = authDomain.TenantID("4b1c9f7e-2d3a-4c5b-9e8f-7a6b5c4d3e2f")
	tenantB = authDomain.TenantID("token:alice@example.com")
)

func newTestRecord(fill byte) *cryptoDomain.EncryptedRecord {
	iv := make([]byte, cryptoDomain.NonceSize)
	tag := make([]byte, cryptoDomain.TagSize)
	for i := range iv {
		iv[i] = fill
	}
	for i := range tag {
		tag[i] = fill + 1
	}
	return &cryptoDomain.EncryptedRecord{
		Algorithm:  cryptoDomain.AESGCM,
		IV:         iv,
		Tag:        tag,
		Ciphertext: []byte{fill, fill + 2, fill + 4, fill + 6},
		CreatedAt:  time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
	}
}

func assertSameRecord(t *testing.T, expected, actual *cryptoDomain.EncryptedRecord) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected.Algorithm, actual.Algorithm)
	assert.Equal(t, expected.IV, actual.IV)
	assert.Equal(t, expected.Tag, actual.Tag)
	assert.Equal(t, expected.Ciphertext, actual.Ciphertext)
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt))
}

// runRecordRepositoryContract exercises behavior every backend must share.
func runRecordRepositoryContract(t *testing.T, newRepo func(t *testing.T) vaultUsecase.RecordRepository) {
	ctx := context.Background()

	t.Run("GetMissingRecord", func(t *testing.T) {
		repo := newRepo(t)

		record, err := repo.Get(ctx, vaultDomain.BaaSStore, tenantA)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		repo := newRepo(t)
		record := newTestRecord(1)

		require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantA, record))

		got, err := repo.Get(ctx, vaultDomain.BaaSStore, tenantA)
		require.NoError(t, err)
		assertSameRecord(t, record, got)
	})

	t.Run("PutReplacesExistingRecord", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantA, newTestRecord(1)))
		replacement := newTestRecord(7)

		require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantA, replacement))

		got, err := repo.Get(ctx, vaultDomain.BaaSStore, tenantA)
		require.NoError(t, err)
		assertSameRecord(t, replacement, got)

		tenants, err := repo.ListTenants(ctx, vaultDomain.BaaSStore)
		require.NoError(t, err)
		assert.Equal(t, []authDomain.TenantID{tenantA}, tenants)
	})

	t.Run("StoresArePartitioned", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Put(ctx, vaultDomain.DatabaseStore, tenantA, newTestRecord(3)))

		exists, err := repo.Exists(ctx, vaultDomain.BaaSStore, tenantA)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.Exists(ctx, vaultDomain.DatabaseStore, tenantA)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("TenantsArePartitioned", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantA, newTestRecord(1)))
		require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantB, newTestRecord(5)))

		got, err := repo.Get(ctx, vaultDomain.BaaSStore, tenantB)
		require.NoError(t, err)
		assertSameRecord(t, newTestRecord(5), got)

		tenants, err := repo.ListTenants(ctx, vaultDomain.BaaSStore)
		require.NoError(t, err)
		assert.ElementsMatch(t, []authDomain.TenantID{tenantA, tenantB}, tenants)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantA, newTestRecord(1)))

		require.NoError(t, repo.Delete(ctx, vaultDomain.BaaSStore, tenantA))

		exists, err := repo.Exists(ctx, vaultDomain.BaaSStore, tenantA)
		require.NoError(t, err)
		assert.False(t, exists)

		err = repo.Delete(ctx, vaultDomain.BaaSStore, tenantA)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("ListEmptyStore", func(t *testing.T) {
		repo := newRepo(t)

		tenants, err := repo.ListTenants(ctx, vaultDomain.DatabaseStore)

		require.NoError(t, err)
		assert.Empty(t, tenants)
	})
}
