package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// RedisRecordRepository keeps each store in a hash at <prefix>:<store>, one field per
// tenant holding the record in canonical JSON form.
type RedisRecordRepository struct {
	client redis.UniversalClient
	prefix string
}

// Get retrieves the record of tenant in store.
func (r *RedisRecordRepository) Get(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (*cryptoDomain.EncryptedRecord, error) {
	data, err := r.client.HGet(ctx, r.key(store), tenant.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential record")
	}

	var record cryptoDomain.EncryptedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Put inserts or replaces the record of tenant in store.
func (r *RedisRecordRepository) Put(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
	record *cryptoDomain.EncryptedRecord,
) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode credential record")
	}

	if err := r.client.HSet(ctx, r.key(store), tenant.String(), data).Err(); err != nil {
		return apperrors.Wrap(err, "failed to put credential record")
	}
	return nil
}

// Exists reports whether tenant has a record in store.
func (r *RedisRecordRepository) Exists(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (bool, error) {
	exists, err := r.client.HExists(ctx, r.key(store), tenant.String()).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check credential record")
	}
	return exists, nil
}

// Delete removes the record of tenant in store.
func (r *RedisRecordRepository) Delete(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) error {
	removed, err := r.client.HDel(ctx, r.key(store), tenant.String()).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential record")
	}
	if removed == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTenants returns every tenant with a record in store.
func (r *RedisRecordRepository) ListTenants(
	ctx context.Context,
	store vaultDomain.StoreName,
) ([]authDomain.TenantID, error) {
	fields, err := r.client.HKeys(ctx, r.key(store)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenants")
	}

	sort.Strings(fields)
	tenants := make([]authDomain.TenantID, 0, len(fields))
	for _, field := range fields {
		tenants = append(tenants, authDomain.TenantID(field))
	}
	return tenants, nil
}

func (r *RedisRecordRepository) key(store vaultDomain.StoreName) string {
	return fmt.Sprintf("%s:%s", r.prefix, store)
}

// NewRedisRecordRepository creates a Redis record repository with keys under prefix.
func NewRedisRecordRepository(client redis.UniversalClient, prefix string) *RedisRecordRepository {
	return &RedisRecordRepository{client: client, prefix: prefix}
}
