package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/tenantvault/internal/errors"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

func TestFileRecordRepository(t *testing.T) {
	runRecordRepositoryContract(t, func(t *testing.T) vaultUsecase.RecordRepository {
		return NewFileRecordRepository(t.TempDir())
	})
}

func TestFileRecordRepository_Layout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vault")
	repo := NewFileRecordRepository(dir)

	require.NoError(t, repo.Put(ctx, vaultDomain.BaaSStore, tenantA, newTestRecord(1)))

	info, err := os.Stat(filepath.Join(dir, "baas.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileDataMode), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dir, "baas.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"initializationVector": "010101010101010101010101"`)
	assert.Contains(t, string(data), `"algorithm": "aes-gcm"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	reopened := NewFileRecordRepository(dir)
	got, err := reopened.Get(ctx, vaultDomain.BaaSStore, tenantA)
	require.NoError(t, err)
	assertSameRecord(t, newTestRecord(1), got)
}

func TestFileRecordRepository_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "database.json"), []byte("{not json"), 0o600))
	repo := NewFileRecordRepository(dir)

	_, err := repo.Get(context.Background(), vaultDomain.DatabaseStore, tenantA)

	assert.ErrorIs(t, err, apperrors.ErrCorrupted)
}

func TestFileRecordRepository_LegacyRecordWithoutAlgorithm(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"` + tenantA.String() + `":{"initializationVector":"000102030405060708090a0b",` +
		`"authenticationTag":"000102030405060708090a0b0c0d0e0f","ciphertext":"abcd",` +
		`"createdAt":"2025-01-01T00:00:00Z"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "baas.json"), []byte(legacy), 0o600))
	repo := NewFileRecordRepository(dir)

	record, err := repo.Get(context.Background(), vaultDomain.BaaSStore, tenantA)

	require.NoError(t, err)
	assert.Equal(t, "aes-gcm", string(record.Algorithm))
	assert.Equal(t, []byte{0xab, 0xcd}, record.Ciphertext)
}
