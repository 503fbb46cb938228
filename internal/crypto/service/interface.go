// Package service provides the cryptographic building blocks of the vault: AEAD ciphers,
// master key providers and the SecretCipher that seals credential payloads into records.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
)

// AEAD seals and opens data with an authenticated cipher.
//
// The authentication tag is returned separately from the ciphertext so callers can
// persist it as its own field of an EncryptedRecord.
type AEAD interface {
	// Seal encrypts plaintext under a freshly generated random nonce.
	Seal(plaintext, aad []byte) (nonce, ciphertext, tag []byte, err error)

	// Open verifies the tag and decrypts. It never returns partial plaintext.
	Open(nonce, ciphertext, tag, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD instances for a given key and algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// MasterKeyProvider yields the derived 32-byte master key.
//
// Every call returns a fresh copy that the caller must zero after use. A provider
// without configuration returns cryptoDomain.ErrMasterKeyNotConfigured on each call
// instead of failing at construction time.
type MasterKeyProvider interface {
	Key(ctx context.Context) ([]byte, error)
}

// SecretCipher seals serializable values into EncryptedRecords and opens them again.
//
// The aad argument binds a record to its owner; opening with different associated
// data fails with cryptoDomain.ErrDecryptionFailed.
type SecretCipher interface {
	Encrypt(ctx context.Context, value any, aad []byte) (*cryptoDomain.EncryptedRecord, error)
	Decrypt(ctx context.Context, record *cryptoDomain.EncryptedRecord, aad []byte, out any) error
}

// KMSService opens KMS keepers for wrapping and unwrapping the master key.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
