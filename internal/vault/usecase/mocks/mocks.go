// Package mocks provides mock implementations of the vault use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

// Get mocks the Get method of RecordRepository.
func (m *MockRecordRepository) Get(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (*cryptoDomain.EncryptedRecord, error) {
	args := m.Called(ctx, store, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedRecord), args.Error(1)
}

// Put mocks the Put method of RecordRepository.
func (m *MockRecordRepository) Put(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
	record *cryptoDomain.EncryptedRecord,
) error {
	args := m.Called(ctx, store, tenant, record)
	return args.Error(0)
}

// Exists mocks the Exists method of RecordRepository.
func (m *MockRecordRepository) Exists(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (bool, error) {
	args := m.Called(ctx, store, tenant)
	return args.Bool(0), args.Error(1)
}

// Delete mocks the Delete method of RecordRepository.
func (m *MockRecordRepository) Delete(
	ctx context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) error {
	args := m.Called(ctx, store, tenant)
	return args.Error(0)
}

// ListTenants mocks the ListTenants method of RecordRepository.
func (m *MockRecordRepository) ListTenants(
	ctx context.Context,
	store vaultDomain.StoreName,
) ([]authDomain.TenantID, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authDomain.TenantID), args.Error(1)
}

// MockCredentialStore is a mock implementation of CredentialStore.
type MockCredentialStore[P any] struct {
	mock.Mock
}

// Save mocks the Save method of CredentialStore.
func (m *MockCredentialStore[P]) Save(ctx context.Context, tenant authDomain.TenantID, payload P) error {
	args := m.Called(ctx, tenant, payload)
	return args.Error(0)
}

// Load mocks the Load method of CredentialStore.
func (m *MockCredentialStore[P]) Load(ctx context.Context, tenant authDomain.TenantID) (*P, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*P), args.Error(1)
}

// Exists mocks the Exists method of CredentialStore.
func (m *MockCredentialStore[P]) Exists(ctx context.Context, tenant authDomain.TenantID) (bool, error) {
	args := m.Called(ctx, tenant)
	return args.Bool(0), args.Error(1)
}

// Delete mocks the Delete method of CredentialStore.
func (m *MockCredentialStore[P]) Delete(ctx context.Context, tenant authDomain.TenantID) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockCredentialChecker is a mock implementation of CredentialChecker.
type MockCredentialChecker struct {
	mock.Mock
}

// HasCredentials mocks the HasCredentials method of CredentialChecker.
func (m *MockCredentialChecker) HasCredentials(ctx context.Context, tenant authDomain.TenantID) (bool, error) {
	args := m.Called(ctx, tenant)
	return args.Bool(0), args.Error(1)
}

// MockRotationUseCase is a mock implementation of RotationUseCase.
type MockRotationUseCase struct {
	mock.Mock
}

// Rotate mocks the Rotate method of RotationUseCase.
func (m *MockRotationUseCase) Rotate(ctx context.Context, target cryptoService.SecretCipher) (int, error) {
	args := m.Called(ctx, target)
	return args.Int(0), args.Error(1)
}
