// Package usecase implements the credential vault: a generic encrypted store instantiated
// once per payload kind, the setup check used by the request gate and master key rotation.
package usecase

import (
	"context"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// RecordRepository persists at most one encrypted record per (store, tenant).
//
// Put is an upsert and must be atomic per key. Get returns apperrors.ErrNotFound when
// the record is absent.
type RecordRepository interface {
	Get(
		ctx context.Context,
		store vaultDomain.StoreName,
		tenant authDomain.TenantID,
	) (*cryptoDomain.EncryptedRecord, error)
	Put(
		ctx context.Context,
		store vaultDomain.StoreName,
		tenant authDomain.TenantID,
		record *cryptoDomain.EncryptedRecord,
	) error
	Exists(ctx context.Context, store vaultDomain.StoreName, tenant authDomain.TenantID) (bool, error)
	Delete(ctx context.Context, store vaultDomain.StoreName, tenant authDomain.TenantID) error
	ListTenants(ctx context.Context, store vaultDomain.StoreName) ([]authDomain.TenantID, error)
}

// PayloadVerifier performs eager validation of a payload before it is stored,
// typically a live connection test.
type PayloadVerifier[P any] interface {
	Verify(ctx context.Context, payload P) error
}

// CredentialStore encrypts and persists one payload kind per tenant.
type CredentialStore[P any] interface {
	// Save validates, optionally verifies, encrypts and upserts the payload. Nothing is
	// written when validation or verification fails.
	Save(ctx context.Context, tenant authDomain.TenantID, payload P) error

	// Load returns the decrypted payload or vaultDomain.ErrNotConfigured.
	//
	// Security Note: the payload holds plaintext secrets. Never log it.
	Load(ctx context.Context, tenant authDomain.TenantID) (*P, error)

	// Exists reports whether a record is stored, without decrypting it.
	Exists(ctx context.Context, tenant authDomain.TenantID) (bool, error)

	// Delete removes the tenant's record. Deleting a missing record is not an error.
	Delete(ctx context.Context, tenant authDomain.TenantID) error
}

// BaaSCredentialStore stores BaaS project credentials.
type BaaSCredentialStore = CredentialStore[vaultDomain.BaaSCredentials]

// DatabaseCredentialStore stores database connection strings.
type DatabaseCredentialStore = CredentialStore[vaultDomain.DatabaseConnection]

// CredentialChecker answers the request gate's "has this tenant finished setup?" question.
type CredentialChecker interface {
	HasCredentials(ctx context.Context, tenant authDomain.TenantID) (bool, error)
}

// RotationUseCase re-encrypts every stored record under a new master key.
type RotationUseCase interface {
	Rotate(ctx context.Context, target cryptoService.SecretCipher) (int, error)
}
