package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
)

type staticMasterKeyProvider struct {
	raw string
}

// NewStaticMasterKeyProvider derives the master key from a plain configuration value.
// Derivation runs on every call, so an empty value only fails the operations that need a key.
func NewStaticMasterKeyProvider(raw string) MasterKeyProvider {
	return &staticMasterKeyProvider{raw: raw}
}

func (p *staticMasterKeyProvider) Key(_ context.Context) ([]byte, error) {
	return cryptoDomain.DeriveKey(p.raw)
}

// KMSMasterKeyProvider unwraps a KMS-encrypted master key on first use.
//
// The unwrapped key is cached after the first success. Failures are not cached so a
// transient KMS outage heals without a restart.
type KMSMasterKeyProvider struct {
	kmsService KMSService
	keyURI     string
	wrapped    string

	mu  sync.Mutex
	key []byte
}

// NewKMSMasterKeyProvider creates a provider for a base64 ciphertext produced by the KMS at keyURI.
func NewKMSMasterKeyProvider(kmsService KMSService, keyURI, wrapped string) *KMSMasterKeyProvider {
	return &KMSMasterKeyProvider{
		kmsService: kmsService,
		keyURI:     keyURI,
		wrapped:    wrapped,
	}
}

// Key returns a copy of the unwrapped and derived master key.
func (p *KMSMasterKeyProvider) Key(ctx context.Context) ([]byte, error) {
	if p.wrapped == "" {
		return nil, cryptoDomain.ErrMasterKeyNotConfigured
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key == nil {
		key, err := p.unwrap(ctx)
		if err != nil {
			return nil, err
		}
		p.key = key
	}

	key := make([]byte, len(p.key))
	copy(key, p.key)
	return key, nil
}

func (p *KMSMasterKeyProvider) unwrap(ctx context.Context) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(p.wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 ciphertext", cryptoDomain.ErrMasterKeyUnwrapFailed)
	}

	keeper, err := p.kmsService.OpenKeeper(ctx, p.keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMasterKeyUnwrapFailed, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMasterKeyUnwrapFailed, err)
	}
	defer cryptoDomain.Wipe(plaintext)

	return cryptoDomain.DeriveKey(string(plaintext))
}

// Close zeroes the cached key.
func (p *KMSMasterKeyProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	cryptoDomain.Wipe(p.key)
	p.key = nil
}
