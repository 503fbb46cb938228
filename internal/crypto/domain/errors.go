package domain

import (
	"github.com/allisson/tenantvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so the
// HTTP layer can map them without knowing about cryptography.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrMasterKeyNotConfigured indicates no master key is available for an operation that needs one.
	//
	// The application starts without a master key; only vault operations fail.
	//
	// HTTP Status: 500 Internal Server Error
	ErrMasterKeyNotConfigured = errors.Wrap(errors.ErrMisconfigured, "master key not configured")

	// ErrMasterKeyUnwrapFailed indicates the KMS could not decrypt the wrapped master key.
	//
	// HTTP Status: 500 Internal Server Error
	ErrMasterKeyUnwrapFailed = errors.Wrap(errors.ErrMisconfigured, "failed to unwrap master key")

	// ErrDecryptionFailed indicates a record could not be opened.
	//
	// This covers a wrong key, a tampered or truncated record, a record moved to another
	// tenant and malformed hex. The specific cause is never disclosed.
	//
	// HTTP Status: 500 Internal Server Error
	ErrDecryptionFailed = errors.Wrap(errors.ErrCorrupted, "decryption failed")
)
