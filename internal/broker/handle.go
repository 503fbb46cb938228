package broker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// Querier is the statement surface a tenant operation sees.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is a tenant connection pool. *pgxpool.Pool satisfies it.
type Pool interface {
	Querier
	Ping(ctx context.Context) error
	Close()
}

// HandleState describes where a handle is in its lifecycle.
type HandleState string

const (
	StateOpen   HandleState = "open"
	StateFailed HandleState = "failed"
	StateClosed HandleState = "closed"
)

// Handle is an open connection to one tenant's database.
type Handle struct {
	tenant       authDomain.TenantID
	pool         Pool
	queryTimeout time.Duration
	logger       *slog.Logger

	mu    sync.Mutex
	state HandleState
}

func newHandle(tenant authDomain.TenantID, pool Pool, queryTimeout time.Duration, logger *slog.Logger) *Handle {
	return &Handle{
		tenant:       tenant,
		pool:         pool,
		queryTimeout: queryTimeout,
		logger:       logger,
		state:        StateOpen,
	}
}

// Tenant returns the tenant the handle belongs to.
func (h *Handle) Tenant() authDomain.TenantID {
	return h.tenant
}

// State returns the current lifecycle state.
func (h *Handle) State() HandleState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Run executes fn against the tenant database within the query timeout. Transport failures
// move the handle to StateFailed; statement errors leave it open.
func (h *Handle) Run(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	switch h.State() {
	case StateClosed:
		return ErrHandleClosed
	case StateFailed:
		return connectionFailed(ReasonUnreachable)
	}

	ctx, cancel := context.WithTimeout(ctx, h.queryTimeout)
	defer cancel()

	err := classifyQueryError(fn(ctx, h.pool))
	if errors.Is(err, ErrConnectionFailed) {
		h.mu.Lock()
		if h.state == StateOpen {
			h.state = StateFailed
		}
		h.mu.Unlock()
		h.logger.Warn("tenant query failed",
			slog.String("tenant", h.tenant.Redacted()),
			slog.Any("error", err),
		)
	}
	return err
}

// Close releases the pool. It is safe to call more than once.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateClosed {
		return
	}
	h.pool.Close()
	h.state = StateClosed
}
