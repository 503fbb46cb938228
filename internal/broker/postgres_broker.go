package broker

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/metrics"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

// PoolFactory creates a pool from a parsed configuration without necessarily connecting.
type PoolFactory func(ctx context.Context, config *pgxpool.Config) (Pool, error)

// NewPgxPool is the default PoolFactory.
func NewPgxPool(ctx context.Context, config *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, config)
}

// PostgresBroker opens per-operation pools to tenant databases.
type PostgresBroker struct {
	store   vaultUsecase.DatabaseCredentialStore
	config  Config
	factory PoolFactory
	metrics metrics.BusinessMetrics
	logger  *slog.Logger
}

// NewPostgresBroker creates a PostgresBroker. A nil factory selects NewPgxPool.
func NewPostgresBroker(
	store vaultUsecase.DatabaseCredentialStore,
	config Config,
	factory PoolFactory,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *PostgresBroker {
	if factory == nil {
		factory = NewPgxPool
	}
	return &PostgresBroker{
		store:   store,
		config:  config,
		factory: factory,
		metrics: businessMetrics,
		logger:  logger,
	}
}

// Open loads the tenant's connection string and returns a verified handle. NotConfigured
// from the vault propagates unchanged; every other failure is ErrConnectionFailed and
// leaves nothing open.
func (b *PostgresBroker) Open(ctx context.Context, tenant authDomain.TenantID) (handle *Handle, err error) {
	start := time.Now()
	defer func() { metrics.Observe(ctx, b.metrics, "broker", "postgres_open", start, err) }()

	conn, err := b.store.Load(ctx, tenant)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(conn.ConnectionString)
	if err != nil {
		return nil, connectionFailed(ReasonInvalidConfig)
	}
	poolConfig.MaxConns = b.config.MaxConns
	poolConfig.MaxConnIdleTime = b.config.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = b.config.ConnectTimeout

	pool, err := b.factory(ctx, poolConfig)
	if err != nil {
		b.logFailure(tenant, err)
		return nil, classifyConnectError(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, b.config.ConnectTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		b.logFailure(tenant, err)
		return nil, classifyConnectError(err)
	}

	b.logger.Debug("tenant connection opened", slog.String("tenant", tenant.Redacted()))
	return newHandle(tenant, pool, b.config.QueryTimeout, b.logger), nil
}

// WithHandle opens a handle, runs fn through it and closes it on every path.
func (b *PostgresBroker) WithHandle(
	ctx context.Context,
	tenant authDomain.TenantID,
	fn func(ctx context.Context, q Querier) error,
) error {
	handle, err := b.Open(ctx, tenant)
	if err != nil {
		return err
	}
	defer handle.Close()

	return handle.Run(ctx, fn)
}

func (b *PostgresBroker) logFailure(tenant authDomain.TenantID, err error) {
	b.logger.Warn("tenant connection failed",
		slog.String("tenant", tenant.Redacted()),
		slog.String("reason", classifyConnectError(err).Error()),
	)
}
