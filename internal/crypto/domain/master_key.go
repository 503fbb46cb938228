package domain

import (
	"crypto/sha256"
	"encoding/base64"
)

// DeriveKey turns the configured master key string into a 32-byte encryption key.
//
// Derivation rules:
//   - an empty value returns ErrMasterKeyNotConfigured
//   - a value that base64-decodes (standard encoding) to exactly 32 bytes is used as-is
//   - any other value is hashed with SHA-256
//
// The permissive rule lets operators supply either a generated key (see the
// create-master-key command) or an arbitrary passphrase. The caller owns the returned
// slice and should Wipe it when done.
func DeriveKey(raw string) ([]byte, error) {
	if raw == "" {
		return nil, ErrMasterKeyNotConfigured
	}

	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		if len(decoded) == KeySize {
			return decoded, nil
		}
		Wipe(decoded)
	}

	sum := sha256.Sum256([]byte(raw))
	key := make([]byte, KeySize)
	copy(key, sum[:])
	Wipe(sum[:])
	return key, nil
}

// Wipe overwrites key material in place. A nil slice is a no-op.
func Wipe(b []byte) {
	clear(b)
}
