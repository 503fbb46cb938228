package broker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

const testTenant = authDomain.TenantID("4b1c9f7e-2d3a-4c5b-9e8f-7a6b5c4d3e2f")

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		ConnectTimeout:  time.Second,
		QueryTimeout:    50 * time.Millisecond,
		MaxConns:        3,
		MaxConnIdleTime: 30 * time.Second,
	}
}

// fakePool records lifecycle calls instead of talking to a server.
type fakePool struct {
	pingErr error
	execErr error
	closed  atomic.Int32
	execs   atomic.Int32
}

func (p *fakePool) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	p.execs.Add(1)
	return pgconn.NewCommandTag("INSERT 0 1"), p.execErr
}

func (p *fakePool) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, p.execErr
}

func (p *fakePool) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func (p *fakePool) Ping(_ context.Context) error {
	return p.pingErr
}

func (p *fakePool) Close() {
	p.closed.Add(1)
}

// fakeFactory hands out pool and remembers the configuration it was given.
type fakeFactory struct {
	pool   *fakePool
	err    error
	config *pgxpool.Config
	calls  int
}

func (f *fakeFactory) create(_ context.Context, config *pgxpool.Config) (Pool, error) {
	f.calls++
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return f.pool, nil
}
