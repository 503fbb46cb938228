package domain

import (
	"github.com/allisson/tenantvault/internal/errors"
)

// Vault error definitions.
var (
	// ErrNotConfigured indicates the tenant has no record in the store. Callers usually
	// treat it as a state (redirect to setup, "configured": false) rather than a failure.
	ErrNotConfigured = errors.Wrap(errors.ErrNotFound, "credentials not configured")

	// ErrInvalidCredentialFormat indicates a payload that failed validation. The wrapped
	// message names the offending field and never echoes the secret.
	ErrInvalidCredentialFormat = errors.Wrap(errors.ErrInvalidInput, "invalid credential format")

	// ErrConnectionRejected indicates eager validation could not reach the tenant backend
	// with the submitted credentials.
	ErrConnectionRejected = errors.Wrap(errors.ErrInvalidInput, "connection test failed")
)
