package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
)

type secretCipher struct {
	masterKeys  MasterKeyProvider
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewSecretCipher creates a SecretCipher that seals new records with algorithm and opens
// records of any supported algorithm. The master key is fetched per operation.
func NewSecretCipher(
	masterKeys MasterKeyProvider,
	aeadManager AEADManager,
	algorithm cryptoDomain.Algorithm,
) SecretCipher {
	return &secretCipher{
		masterKeys:  masterKeys,
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}
}

func (s *secretCipher) Encrypt(
	ctx context.Context,
	value any,
	aad []byte,
) (*cryptoDomain.EncryptedRecord, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize secret: %w", err)
	}
	defer cryptoDomain.Wipe(plaintext)

	key, err := s.masterKeys.Key(ctx)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Wipe(key)

	return SealRecord(s.aeadManager, key, s.algorithm, plaintext, aad)
}

func (s *secretCipher) Decrypt(
	ctx context.Context,
	record *cryptoDomain.EncryptedRecord,
	aad []byte,
	out any,
) error {
	key, err := s.masterKeys.Key(ctx)
	if err != nil {
		return err
	}
	defer cryptoDomain.Wipe(key)

	plaintext, err := OpenRecord(s.aeadManager, key, record, aad)
	if err != nil {
		return err
	}
	defer cryptoDomain.Wipe(plaintext)

	if err := json.Unmarshal(plaintext, out); err != nil {
		return cryptoDomain.ErrDecryptionFailed
	}
	return nil
}

// SealRecord encrypts plaintext with key under a fresh nonce and returns the record.
func SealRecord(
	aeadManager AEADManager,
	key []byte,
	alg cryptoDomain.Algorithm,
	plaintext, aad []byte,
) (*cryptoDomain.EncryptedRecord, error) {
	aead, err := aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext, tag, err := aead.Seal(plaintext, aad)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedRecord{
		Algorithm:  alg,
		IV:         nonce,
		Tag:        tag,
		Ciphertext: ciphertext,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// OpenRecord verifies and decrypts a record. Every failure, including an unknown
// algorithm or malformed field lengths, is reported as ErrDecryptionFailed.
func OpenRecord(
	aeadManager AEADManager,
	key []byte,
	record *cryptoDomain.EncryptedRecord,
	aad []byte,
) ([]byte, error) {
	if record == nil || !record.Algorithm.Valid() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	if len(record.IV) != cryptoDomain.NonceSize || len(record.Tag) != cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	aead, err := aeadManager.CreateCipher(key, record.Algorithm)
	if err != nil {
		return nil, err
	}

	return aead.Open(record.IV, record.Ciphertext, record.Tag, aad)
}
