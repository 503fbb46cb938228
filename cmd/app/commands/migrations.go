package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/tenantvault/internal/config"
)

// migrationSources maps a database driver to its migration directory.
var migrationSources = map[string]string{
	"postgres": "file://migrations/postgresql",
	"mysql":    "file://migrations/mysql",
}

// RunMigrations brings the tenant_credentials schema up to date. The file and redis vault
// backends have no schema, so there is nothing to do for them.
func RunMigrations(logger *slog.Logger, vaultBackend, dbDriver, dbConnectionString string) error {
	if vaultBackend == config.VaultBackendFile || vaultBackend == config.VaultBackendRedis {
		logger.Info("vault backend has no schema, skipping migrations", slog.String("vault_backend", vaultBackend))
		return nil
	}

	source, ok := migrationSources[dbDriver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", dbDriver)
	}

	logger.Info("running database migrations", slog.String("driver", dbDriver))

	m, err := migrate.New(source, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
