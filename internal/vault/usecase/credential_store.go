package usecase

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

type credentialStore[P any] struct {
	store    vaultDomain.StoreName
	repo     RecordRepository
	cipher   cryptoService.SecretCipher
	validate func(P) error
	verifier PayloadVerifier[P]
	logger   *slog.Logger
}

// NewCredentialStore creates a CredentialStore for one payload kind. verifier may be nil.
func NewCredentialStore[P any](
	store vaultDomain.StoreName,
	repo RecordRepository,
	cipher cryptoService.SecretCipher,
	validate func(P) error,
	verifier PayloadVerifier[P],
	logger *slog.Logger,
) CredentialStore[P] {
	return &credentialStore[P]{
		store:    store,
		repo:     repo,
		cipher:   cipher,
		validate: validate,
		verifier: verifier,
		logger:   logger,
	}
}

// NewBaaSCredentialStore creates the store for BaaS project credentials.
func NewBaaSCredentialStore(
	repo RecordRepository,
	cipher cryptoService.SecretCipher,
	rules vaultDomain.BaaSCredentialRules,
	logger *slog.Logger,
) BaaSCredentialStore {
	return NewCredentialStore(vaultDomain.BaaSStore, repo, cipher, rules.Validate, nil, logger)
}

// NewDatabaseCredentialStore creates the store for connection strings. Each save is
// verified with a live connection test first.
func NewDatabaseCredentialStore(
	repo RecordRepository,
	cipher cryptoService.SecretCipher,
	rules vaultDomain.DatabaseConnectionRules,
	verifier PayloadVerifier[vaultDomain.DatabaseConnection],
	logger *slog.Logger,
) DatabaseCredentialStore {
	return NewCredentialStore(vaultDomain.DatabaseStore, repo, cipher, rules.Validate, verifier, logger)
}

func (s *credentialStore[P]) Save(ctx context.Context, tenant authDomain.TenantID, payload P) error {
	if tenant.IsZero() {
		return authDomain.ErrUnauthenticated
	}

	if err := s.validate(payload); err != nil {
		return err
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, payload); err != nil {
			s.logger.Warn("credential verification failed",
				slog.String("store", string(s.store)),
				slog.String("tenant", tenant.Redacted()),
				slog.Any("error", err),
			)
			return fmt.Errorf("%w: %w", vaultDomain.ErrConnectionRejected, err)
		}
	}

	record, err := s.cipher.Encrypt(ctx, payload, vaultDomain.AssociatedData(s.store, tenant))
	if err != nil {
		return err
	}

	if err := s.repo.Put(ctx, s.store, tenant, record); err != nil {
		return err
	}

	s.logger.Info("credentials saved",
		slog.String("store", string(s.store)),
		slog.String("tenant", tenant.Redacted()),
	)
	return nil
}

func (s *credentialStore[P]) Load(ctx context.Context, tenant authDomain.TenantID) (*P, error) {
	if tenant.IsZero() {
		return nil, authDomain.ErrUnauthenticated
	}

	record, err := s.repo.Get(ctx, s.store, tenant)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrNotConfigured
		}
		return nil, err
	}

	var payload P
	if err := s.cipher.Decrypt(ctx, record, vaultDomain.AssociatedData(s.store, tenant), &payload); err != nil {
		s.logger.Error("failed to open credential record",
			slog.String("store", string(s.store)),
			slog.String("tenant", tenant.Redacted()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &payload, nil
}

func (s *credentialStore[P]) Exists(ctx context.Context, tenant authDomain.TenantID) (bool, error) {
	if tenant.IsZero() {
		return false, nil
	}
	return s.repo.Exists(ctx, s.store, tenant)
}

func (s *credentialStore[P]) Delete(ctx context.Context, tenant authDomain.TenantID) error {
	if tenant.IsZero() {
		return authDomain.ErrUnauthenticated
	}

	if err := s.repo.Delete(ctx, s.store, tenant); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	s.logger.Info("credentials deleted",
		slog.String("store", string(s.store)),
		slog.String("tenant", tenant.Redacted()),
	)
	return nil
}
