package broker

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/allisson/tenantvault/internal/errors"
)

// Broker error definitions.
var (
	// ErrConnectionFailed indicates the tenant backend could not be reached or refused the
	// session. The wrapped reason is one of a fixed set and never includes connection details.
	ErrConnectionFailed = apperrors.Wrap(apperrors.ErrUnavailable, "connection failed")

	// ErrQueryFailed indicates the tenant backend executed and rejected a statement.
	ErrQueryFailed = errors.New("query failed")

	// ErrHandleClosed indicates a handle was used after Close.
	ErrHandleClosed = errors.New("connection handle closed")
)

// PostgreSQL SQLSTATE codes that get a dedicated connection failure reason.
const (
	sqlStateInvalidPassword      = "28P01"
	sqlStateInvalidAuthorization = "28000"
	sqlStateInvalidCatalogName   = "3D000"
)

// Connection failure reasons.
const (
	ReasonTimeout          = "connection timed out"
	ReasonAuthFailed       = "authentication failed"
	ReasonDatabaseNotFound = "database does not exist"
	ReasonRejected         = "server rejected connection"
	ReasonUnreachable      = "server unreachable"
	ReasonInvalidConfig    = "invalid connection string"
)

func connectionFailed(reason string) error {
	return fmt.Errorf("%w: %s", ErrConnectionFailed, reason)
}

// classifyConnectError reduces a driver error to ErrConnectionFailed with a safe reason.
// The driver error itself is dropped because it may carry hosts, users or passwords.
func classifyConnectError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err):
		return connectionFailed(ReasonTimeout)
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case sqlStateInvalidPassword, sqlStateInvalidAuthorization:
			return connectionFailed(ReasonAuthFailed)
		case sqlStateInvalidCatalogName:
			return connectionFailed(ReasonDatabaseNotFound)
		default:
			return connectionFailed(ReasonRejected)
		}
	default:
		return connectionFailed(ReasonUnreachable)
	}
}

// classifyQueryError separates server-side statement failures from transport failures.
// Errors that are neither are returned unchanged so callers can match them.
func classifyQueryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: sqlstate %s", ErrQueryFailed, pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return connectionFailed(ReasonTimeout)
	}
	if errors.As(err, &connectErr) {
		return classifyConnectError(err)
	}
	return err
}
