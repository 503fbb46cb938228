package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/tenantvault/internal/testutil"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

func TestRedisRecordRepository(t *testing.T) {
	runRecordRepositoryContract(t, func(t *testing.T) vaultUsecase.RecordRepository {
		return NewRedisRecordRepository(testutil.SetupRedisClient(t), "tenantvault-test")
	})
}

func TestRedisRecordRepository_KeyLayout(t *testing.T) {
	client := testutil.SetupRedisClient(t)
	repo := NewRedisRecordRepository(client, "tenantvault-test")
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, vaultDomain.DatabaseStore, tenantA, newTestRecord(2)))

	fields, err := client.HKeys(ctx, "tenantvault-test:database").Result()
	require.NoError(t, err)
	assert.Equal(t, []string{tenantA.String()}, fields)
}
