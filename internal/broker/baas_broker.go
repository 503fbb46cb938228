package broker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/metrics"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

// BaaSHandle is a BaaS client bound to one tenant's project.
type BaaSHandle struct {
	tenant authDomain.TenantID
	client *BaaSClient

	mu     sync.Mutex
	closed bool
}

// Tenant returns the tenant the handle belongs to.
func (h *BaaSHandle) Tenant() authDomain.TenantID {
	return h.tenant
}

// Client returns the bound client, or ErrHandleClosed after Close.
func (h *BaaSHandle) Client() (*BaaSClient, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHandleClosed
	}
	return h.client, nil
}

// Close releases idle connections. It is safe to call more than once.
func (h *BaaSHandle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.client.CloseIdleConnections()
	h.closed = true
}

// BaaSBroker builds clients for tenants' BaaS projects.
type BaaSBroker struct {
	store   vaultUsecase.BaaSCredentialStore
	config  BaaSClientConfig
	metrics metrics.BusinessMetrics
	logger  *slog.Logger
}

// NewBaaSBroker creates a BaaSBroker.
func NewBaaSBroker(
	store vaultUsecase.BaaSCredentialStore,
	config BaaSClientConfig,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *BaaSBroker {
	return &BaaSBroker{
		store:   store,
		config:  config,
		metrics: businessMetrics,
		logger:  logger,
	}
}

// Open loads the tenant's BaaS credentials and binds a client to them. No request is
// made until the client is used.
func (b *BaaSBroker) Open(ctx context.Context, tenant authDomain.TenantID) (handle *BaaSHandle, err error) {
	start := time.Now()
	defer func() { metrics.Observe(ctx, b.metrics, "broker", "baas_open", start, err) }()

	creds, err := b.store.Load(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return &BaaSHandle{
		tenant: tenant,
		client: NewBaaSClient(*creds, b.config, b.logger),
	}, nil
}

// WithHandle opens a handle, runs fn with its client and closes it on every path.
func (b *BaaSBroker) WithHandle(
	ctx context.Context,
	tenant authDomain.TenantID,
	fn func(ctx context.Context, client *BaaSClient) error,
) error {
	handle, err := b.Open(ctx, tenant)
	if err != nil {
		return err
	}
	defer handle.Close()

	client, err := handle.Client()
	if err != nil {
		return err
	}
	return fn(ctx, client)
}
