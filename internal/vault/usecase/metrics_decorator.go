package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/metrics"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// credentialStoreWithMetrics decorates CredentialStore with metrics instrumentation.
type credentialStoreWithMetrics[P any] struct {
	next    CredentialStore[P]
	store   vaultDomain.StoreName
	metrics metrics.BusinessMetrics
}

// NewCredentialStoreWithMetrics wraps a CredentialStore with metrics recording.
func NewCredentialStoreWithMetrics[P any](
	next CredentialStore[P],
	store vaultDomain.StoreName,
	m metrics.BusinessMetrics,
) CredentialStore[P] {
	return &credentialStoreWithMetrics[P]{
		next:    next,
		store:   store,
		metrics: m,
	}
}

func (s *credentialStoreWithMetrics[P]) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "vault", string(s.store)+"_"+operation, start, err)
}

// Save records metrics for credential save operations.
func (s *credentialStoreWithMetrics[P]) Save(ctx context.Context, tenant authDomain.TenantID, payload P) error {
	start := time.Now()
	err := s.next.Save(ctx, tenant, payload)
	s.record(ctx, "save", start, err)
	return err
}

// Load records metrics for credential load operations.
func (s *credentialStoreWithMetrics[P]) Load(ctx context.Context, tenant authDomain.TenantID) (*P, error) {
	start := time.Now()
	payload, err := s.next.Load(ctx, tenant)
	s.record(ctx, "load", start, err)
	return payload, err
}

// Exists records metrics for credential existence checks.
func (s *credentialStoreWithMetrics[P]) Exists(ctx context.Context, tenant authDomain.TenantID) (bool, error) {
	start := time.Now()
	exists, err := s.next.Exists(ctx, tenant)
	s.record(ctx, "exists", start, err)
	return exists, err
}

// Delete records metrics for credential delete operations.
func (s *credentialStoreWithMetrics[P]) Delete(ctx context.Context, tenant authDomain.TenantID) error {
	start := time.Now()
	err := s.next.Delete(ctx, tenant)
	s.record(ctx, "delete", start, err)
	return err
}
