package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
)

// AESGCMCipher is AES-256-GCM with a 12-byte nonce and a 16-byte tag.
type AESGCMCipher struct {
	aeadCipher
}

// ChaCha20Poly1305Cipher is ChaCha20-Poly1305. Its nonce and tag sizes match AES-GCM, so
// records sealed with either algorithm share one layout.
type ChaCha20Poly1305Cipher struct {
	aeadCipher
}

// NewAESGCM creates an AES-256-GCM cipher from a 32-byte key.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES block: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap AES block in GCM: %w", err)
	}
	return &AESGCMCipher{aeadCipher{aead: gcm}}, nil
}

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 cipher from a 32-byte key.
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305Cipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	c, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}
	return &ChaCha20Poly1305Cipher{aeadCipher{aead: c}}, nil
}

// AEADManagerService picks the AEAD implementation for a record's algorithm.
type AEADManagerService struct{}

// NewAEADManager creates an AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher fails with ErrInvalidKeySize before looking at the algorithm, so a bad key
// is reported the same way for every record.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	}
	return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedAlgorithm, alg)
}

// aeadCipher adapts a cipher.AEAD to the split nonce/ciphertext/tag layout.
type aeadCipher struct {
	aead cipher.AEAD
}

func (a *aeadCipher) Seal(plaintext, aad []byte) (nonce, ciphertext, tag []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - a.aead.Overhead()

	return nonce, sealed[:split], sealed[split:], nil
}

func (a *aeadCipher) Open(nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() || len(tag) != a.aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
