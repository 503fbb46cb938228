package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	"github.com/allisson/tenantvault/internal/database"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// MySQLRecordRepository implements record persistence for MySQL databases.
type MySQLRecordRepository struct {
	db *sql.DB
}

// Get retrieves the record of tenant in store.
func (m *MySQLRecordRepository) Get(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (*cryptoDomain.EncryptedRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT algorithm, iv, auth_tag, ciphertext, created_at 
			  FROM tenant_credentials 
			  WHERE store = ? AND tenant_id = ?`

	var record cryptoDomain.EncryptedRecord
	err := querier.QueryRowContext(ctx, query, string(store), tenant.String()).Scan(
		&record.Algorithm,
		&record.IV,
		&record.Tag,
		&record.Ciphertext,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential record")
	}

	return &record, nil
}

// Put inserts or replaces the record of tenant in store.
func (m *MySQLRecordRepository) Put(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
	record *cryptoDomain.EncryptedRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tenant_credentials (store, tenant_id, algorithm, iv, auth_tag, ciphertext, created_at, updated_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?) 
			  ON DUPLICATE KEY UPDATE 
			  algorithm = VALUES(algorithm), 
			  iv = VALUES(iv), 
			  auth_tag = VALUES(auth_tag), 
			  ciphertext = VALUES(ciphertext), 
			  created_at = VALUES(created_at), 
			  updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx,
		query,
		string(store),
		tenant.String(),
		string(record.Algorithm),
		record.IV,
		record.Tag,
		record.Ciphertext,
		record.CreatedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to put credential record")
	}
	return nil
}

// Exists reports whether tenant has a record in store.
func (m *MySQLRecordRepository) Exists(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM tenant_credentials WHERE store = ? AND tenant_id = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, string(store), tenant.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check credential record")
	}
	return exists, nil
}

// Delete removes the record of tenant in store.
func (m *MySQLRecordRepository) Delete(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tenant_credentials WHERE store = ? AND tenant_id = ?`

	result, err := querier.ExecContext(ctx, query, string(store), tenant.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential record")
	}
	return checkRowsAffected(result)
}

// ListTenants returns every tenant with a record in store.
func (m *MySQLRecordRepository) ListTenants(
	ctx context.Context,
	store vaultDomain.StoreName,
) ([]authDomain.TenantID, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT tenant_id FROM tenant_credentials WHERE store = ? ORDER BY tenant_id`

	rows, err := querier.QueryContext(ctx, query, string(store))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenants")
	}
	return scanTenants(rows)
}

// NewMySQLRecordRepository creates a new MySQL record repository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}
