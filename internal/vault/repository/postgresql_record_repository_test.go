package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/tenantvault/internal/database"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	"github.com/allisson/tenantvault/internal/testutil"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func TestPostgreSQLRecordRepository(t *testing.T) {
	db := testutil.SetupDB(t, testutil.Postgres)

	runRecordRepositoryContract(t, func(t *testing.T) vaultUsecase.RecordRepository {
		testutil.TruncateCredentials(t, db)
		return NewPostgreSQLRecordRepository(db)
	})
}

func TestPostgreSQLRecordRepository_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT algorithm, iv, auth_tag, ciphertext, created_at`)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		record := newTestRecord(4)
		mock.ExpectQuery(query).
			WithArgs("baas", tenantA.String()).
			WillReturnRows(sqlmock.NewRows([]string{"algorithm", "iv", "auth_tag", "ciphertext", "created_at"}).
				AddRow("aes-gcm", record.IV, record.Tag, record.Ciphertext, record.CreatedAt))

		got, err := NewPostgreSQLRecordRepository(db).Get(ctx, vaultDomain.BaaSStore, tenantA)

		require.NoError(t, err)
		assertSameRecord(t, record, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		_, err := NewPostgreSQLRecordRepository(db).Get(ctx, vaultDomain.BaaSStore, tenantA)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := newMockDB(t)
		dbErr := errors.New("connection reset by peer")
		mock.ExpectQuery(query).WillReturnError(dbErr)

		_, err := NewPostgreSQLRecordRepository(db).Get(ctx, vaultDomain.BaaSStore, tenantA)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLRecordRepository_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("UpsertsInsideTransaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		record := newTestRecord(1)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (store, tenant_id) DO UPDATE`)).
			WithArgs("database", tenantA.String(), "aes-gcm", record.IV, record.Tag, record.Ciphertext,
				record.CreatedAt, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewPostgreSQLRecordRepository(db)
		err := database.NewTxManager(db).WithTx(ctx, func(ctx context.Context) error {
			return repo.Put(ctx, vaultDomain.DatabaseStore, tenantA, record)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLRecordRepository_Delete(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`DELETE FROM tenant_credentials`)

	t.Run("Deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).WithArgs("baas", tenantA.String()).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLRecordRepository(db).Delete(ctx, vaultDomain.BaaSStore, tenantA))
	})

	t.Run("NothingToDelete", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLRecordRepository(db).Delete(ctx, vaultDomain.BaaSStore, tenantA)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLRecordRepository_ExistsAndList(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRecordRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("baas", tenantA.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT tenant_id FROM tenant_credentials`)).
		WithArgs("baas").
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow(tenantA.String()).AddRow(tenantB.String()))

	exists, err := repo.Exists(ctx, vaultDomain.BaaSStore, tenantA)
	require.NoError(t, err)
	assert.True(t, exists)

	tenants, err := repo.ListTenants(ctx, vaultDomain.BaaSStore)
	require.NoError(t, err)
	assert.Len(t, tenants, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
