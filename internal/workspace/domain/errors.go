package domain

import (
	"github.com/allisson/tenantvault/internal/errors"
)

// ErrBackendNotConfigured indicates the tenant has neither a database connection nor BaaS
// credentials to serve workspace data from.
var ErrBackendNotConfigured = errors.Wrap(errors.ErrNotFound, "database not configured")
