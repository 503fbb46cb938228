package domain

import (
	"github.com/allisson/tenantvault/internal/errors"
)

// Identity resolution errors.
var (
	// ErrUnauthenticated indicates no identity provider could resolve the request.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "unauthenticated")

	// ErrInvalidSessionToken indicates a session token failed verification.
	ErrInvalidSessionToken = errors.Wrap(errors.ErrUnauthorized, "invalid session token")

	// ErrSigningSecretNotConfigured indicates a token operation without a signing secret.
	ErrSigningSecretNotConfigured = errors.Wrap(errors.ErrMisconfigured, "session signing secret not configured")
)
