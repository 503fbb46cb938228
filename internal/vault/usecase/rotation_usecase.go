package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
	"github.com/allisson/tenantvault/internal/database"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

type rotationUseCase struct {
	repo      RecordRepository
	txManager database.TxManager
	current   cryptoService.SecretCipher
	logger    *slog.Logger
}

// NewRotationUseCase creates a RotationUseCase that reads records with current.
func NewRotationUseCase(
	repo RecordRepository,
	txManager database.TxManager,
	current cryptoService.SecretCipher,
	logger *slog.Logger,
) RotationUseCase {
	return &rotationUseCase{
		repo:      repo,
		txManager: txManager,
		current:   current,
		logger:    logger,
	}
}

type resealedRecord struct {
	store  vaultDomain.StoreName
	tenant authDomain.TenantID
	record *cryptoDomain.EncryptedRecord
}

// Rotate re-encrypts every record of every store with target. Every record is opened and
// re-sealed in memory before the first write, so an unreadable record leaves the vault
// untouched on every backend. With a SQL backend the writes also share one transaction.
func (r *rotationUseCase) Rotate(ctx context.Context, target cryptoService.SecretCipher) (int, error) {
	rotated := 0

	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		resealed, err := r.reseal(ctx, target)
		if err != nil {
			return err
		}

		for _, item := range resealed {
			if err := r.repo.Put(ctx, item.store, item.tenant, item.record); err != nil {
				return fmt.Errorf(
					"failed to write %s record of %s after %d of %d re-encrypted: %w",
					item.store, item.tenant.Redacted(), rotated, len(resealed), err,
				)
			}
			rotated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("master key rotated", slog.Int("records", rotated))
	return rotated, nil
}

func (r *rotationUseCase) reseal(ctx context.Context, target cryptoService.SecretCipher) ([]resealedRecord, error) {
	var resealed []resealedRecord

	for _, store := range []vaultDomain.StoreName{vaultDomain.BaaSStore, vaultDomain.DatabaseStore} {
		tenants, err := r.repo.ListTenants(ctx, store)
		if err != nil {
			return nil, err
		}

		for _, tenant := range tenants {
			record, err := r.repo.Get(ctx, store, tenant)
			if err != nil {
				return nil, err
			}

			aad := vaultDomain.AssociatedData(store, tenant)

			var payload json.RawMessage
			if err := r.current.Decrypt(ctx, record, aad, &payload); err != nil {
				return nil, fmt.Errorf("failed to open %s record of %s: %w", store, tenant.Redacted(), err)
			}

			sealed, err := target.Encrypt(ctx, payload, aad)
			cryptoDomain.Wipe(payload)
			if err != nil {
				return nil, err
			}
			resealed = append(resealed, resealedRecord{store: store, tenant: tenant, record: sealed})
		}
	}
	return resealed, nil
}
