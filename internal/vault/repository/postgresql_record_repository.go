// Package repository implements persistence for encrypted credential records. PostgreSQL,
// MySQL, Redis and a local JSON file backend all keep one record per (store, tenant).
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

// PostgreSQLRecordRepository implements record persistence for PostgreSQL databases.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// Get retrieves the record of tenant in store.
func (p *PostgreSQLRecordRepository) Get(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (*cryptoDomain.EncryptedRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT algorithm, iv, auth_tag, ciphertext, created_at 
			  FROM tenant_credentials 
			  WHERE store = $1 AND tenant_id = $2`

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
func (p *PostgreSQLRecordRepository) Put(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
	record *cryptoDomain.EncryptedRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tenant_credentials (store, tenant_id, algorithm, iv, auth_tag, ciphertext, created_at, updated_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8) 
			  ON CONFLICT (store, tenant_id) DO UPDATE SET 
			  algorithm = EXCLUDED.algorithm, 
			  iv = EXCLUDED.iv, 
			  auth_tag = EXCLUDED.auth_tag, 
			  ciphertext = EXCLUDED.ciphertext, 
			  created_at = EXCLUDED.created_at, 
			  updated_at = EXCLUDED.updated_at`

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
func (p *PostgreSQLRecordRepository) Exists(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM tenant_credentials WHERE store = $1 AND tenant_id = $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, string(store), tenant.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check credential record")
	}
	return exists, nil
}

// Delete removes the record of tenant in store.
func (p *PostgreSQLRecordRepository) Delete(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM tenant_credentials WHERE store = $1 AND tenant_id = $2`

	result, err := querier.ExecContext(ctx, query, string(store), tenant.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential record")
	}
	return checkRowsAffected(result)
}

// ListTenants returns every tenant with a record in store.
func (p *PostgreSQLRecordRepository) ListTenants(
	ctx context.Context,
	store vaultDomain.StoreName,
) ([]authDomain.TenantID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT tenant_id FROM tenant_credentials WHERE store = $1 ORDER BY tenant_id`

	rows, err := querier.QueryContext(ctx, query, string(store))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenants")
	}
	return scanTenants(rows)
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL record repository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

func checkRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanTenants(rows *sql.Rows) ([]authDomain.TenantID, error) {
	defer func() {
		_ = rows.Close()
	}()

	tenants := make([]authDomain.TenantID, 0)
	for rows.Next() {
		var tenant string
		if err := rows.Scan(&tenant); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant")
		}
		tenants = append(tenants, authDomain.TenantID(tenant))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tenants")
	}
	return tenants, nil
}
