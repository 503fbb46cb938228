package broker

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// ConnectionValidator tests a connection string by connecting and running SELECT NOW().
// It is the database credential store's verification hook.
type ConnectionValidator struct {
	connectTimeout time.Duration
	logger         *slog.Logger
}

// NewConnectionValidator creates a ConnectionValidator.
func NewConnectionValidator(connectTimeout time.Duration, logger *slog.Logger) *ConnectionValidator {
	return &ConnectionValidator{connectTimeout: connectTimeout, logger: logger}
}

// Verify opens a single connection, runs a trivial query and closes it.
func (v *ConnectionValidator) Verify(ctx context.Context, conn vaultDomain.DatabaseConnection) error {
	config, err := pgx.ParseConfig(conn.ConnectionString)
	if err != nil {
		return connectionFailed(ReasonInvalidConfig)
	}
	config.ConnectTimeout = v.connectTimeout

	ctx, cancel := context.WithTimeout(ctx, v.connectTimeout)
	defer cancel()

	pgConn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return classifyConnectError(err)
	}
	defer func() {
		if closeErr := pgConn.Close(context.Background()); closeErr != nil {
			v.logger.Debug("failed to close validation connection", slog.Any("error", closeErr))
		}
	}()

	var now time.Time
	if err := pgConn.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return classifyConnectError(err)
	}
	return nil
}
