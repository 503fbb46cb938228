package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	cryptoDomain "github.com/allisson/tenantvault/internal/crypto/domain"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

const (
	fileDirMode  = 0o700
	fileDataMode = 0o600
)

// FileRecordRepository keeps each store in <dir>/<store>.json as a map from tenant to
// record in canonical form. Writes go to a temporary file that replaces the store file,
// so a crash never leaves a partially written store. Suitable for a single process only.
type FileRecordRepository struct {
	dir string
	mu  sync.RWMutex
}

type storeFile map[string]cryptoDomain.EncryptedRecord

// Get retrieves the record of tenant in store.
func (f *FileRecordRepository) Get(
	_ context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (*cryptoDomain.EncryptedRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	records, err := f.read(store)
	if err != nil {
		return nil, err
	}

	record, ok := records[tenant.String()]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

// Put inserts or replaces the record of tenant in store.
func (f *FileRecordRepository) Put(
	_ context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
	record *cryptoDomain.EncryptedRecord,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read(store)
	if err != nil {
		return err
	}

	records[tenant.String()] = *record
	return f.write(store, records)
}

// Exists reports whether tenant has a record in store.
func (f *FileRecordRepository) Exists(
	_ context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	records, err := f.read(store)
	if err != nil {
		return false, err
	}

	_, ok := records[tenant.String()]
	return ok, nil
}

// Delete removes the record of tenant in store.
func (f *FileRecordRepository) Delete(
	_ context.Context,
	store vaultDomain.StoreName,
	tenant authDomain.TenantID,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.read(store)
	if err != nil {
		return err
	}

	if _, ok := records[tenant.String()]; !ok {
		return apperrors.ErrNotFound
	}
	delete(records, tenant.String())
	return f.write(store, records)
}

// ListTenants returns every tenant with a record in store.
func (f *FileRecordRepository) ListTenants(
	_ context.Context,
	store vaultDomain.StoreName,
) ([]authDomain.TenantID, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	records, err := f.read(store)
	if err != nil {
		return nil, err
	}

	tenants := make([]authDomain.TenantID, 0, len(records))
	for tenant := range records {
		tenants = append(tenants, authDomain.TenantID(tenant))
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i] < tenants[j] })
	return tenants, nil
}

func (f *FileRecordRepository) path(store vaultDomain.StoreName) string {
	return filepath.Join(f.dir, string(store)+".json")
}

func (f *FileRecordRepository) read(store vaultDomain.StoreName) (storeFile, error) {
	data, err := os.ReadFile(f.path(store))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storeFile{}, nil
		}
		return nil, apperrors.Wrap(err, "failed to read credential store")
	}

	records := storeFile{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed store file %s", apperrors.ErrCorrupted, f.path(store))
	}
	return records, nil
}

func (f *FileRecordRepository) write(store vaultDomain.StoreName, records storeFile) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to encode credential store")
	}

	if err := os.MkdirAll(f.dir, fileDirMode); err != nil {
		return apperrors.Wrap(err, "failed to create credential store directory")
	}

	tmp, err := os.CreateTemp(f.dir, string(store)+".*.tmp")
	if err != nil {
		return apperrors.Wrap(err, "failed to create temporary store file")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return apperrors.Wrap(err, "failed to write credential store")
	}
	if err := tmp.Chmod(fileDataMode); err != nil {
		_ = tmp.Close()
		return apperrors.Wrap(err, "failed to set credential store permissions")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return apperrors.Wrap(err, "failed to sync credential store")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(err, "failed to close credential store")
	}

	if err := os.Rename(tmp.Name(), f.path(store)); err != nil {
		return apperrors.Wrap(err, "failed to replace credential store")
	}
	return nil
}

// NewFileRecordRepository creates a file-backed record repository rooted at dir.
func NewFileRecordRepository(dir string) *FileRecordRepository {
	return &FileRecordRepository{dir: dir}
}
