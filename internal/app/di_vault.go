package app

import (
	"fmt"
	"sync"

	"github.com/allisson/tenantvault/internal/broker"
	"github.com/allisson/tenantvault/internal/config"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	vaultHTTP "github.com/allisson/tenantvault/internal/vault/http"
	vaultRepository "github.com/allisson/tenantvault/internal/vault/repository"
	vaultUseCase "github.com/allisson/tenantvault/internal/vault/usecase"
)

type vaultComponents struct {
	recordRepository        vaultUseCase.RecordRepository
	baasCredentialStore     vaultUseCase.BaaSCredentialStore
	databaseCredentialStore vaultUseCase.DatabaseCredentialStore
	credentialChecker       vaultUseCase.CredentialChecker
	credentialsHandler      *vaultHTTP.CredentialsHandler
	tempCredentialsHandler  *vaultHTTP.TempCredentialsHandler

	recordRepositoryInit        sync.Once
	baasCredentialStoreInit     sync.Once
	databaseCredentialStoreInit sync.Once
	credentialCheckerInit       sync.Once
	credentialsHandlerInit      sync.Once
	tempCredentialsHandlerInit  sync.Once
}

// RecordRepository returns the encrypted record repository of the configured vault backend.
func (c *Container) RecordRepository() (vaultUseCase.RecordRepository, error) {
	var err error
	c.recordRepositoryInit.Do(func() {
		c.recordRepository, err = c.initRecordRepository()
		if err != nil {
			c.initErrors["recordRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordRepository"]; exists {
		return nil, storedErr
	}
	return c.recordRepository, nil
}

// BaaSCredentialStore returns the store of tenants' BaaS credentials.
func (c *Container) BaaSCredentialStore() (vaultUseCase.BaaSCredentialStore, error) {
	var err error
	c.baasCredentialStoreInit.Do(func() {
		c.baasCredentialStore, err = c.initBaaSCredentialStore()
		if err != nil {
			c.initErrors["baasCredentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["baasCredentialStore"]; exists {
		return nil, storedErr
	}
	return c.baasCredentialStore, nil
}

// DatabaseCredentialStore returns the store of tenants' connection strings.
func (c *Container) DatabaseCredentialStore() (vaultUseCase.DatabaseCredentialStore, error) {
	var err error
	c.databaseCredentialStoreInit.Do(func() {
		c.databaseCredentialStore, err = c.initDatabaseCredentialStore()
		if err != nil {
			c.initErrors["databaseCredentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["databaseCredentialStore"]; exists {
		return nil, storedErr
	}
	return c.databaseCredentialStore, nil
}

// CredentialChecker returns the setup check used by the request gate.
func (c *Container) CredentialChecker() (vaultUseCase.CredentialChecker, error) {
	var err error
	c.credentialCheckerInit.Do(func() {
		c.credentialChecker, err = c.initCredentialChecker()
		if err != nil {
			c.initErrors["credentialChecker"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialChecker"]; exists {
		return nil, storedErr
	}
	return c.credentialChecker, nil
}

// RotationUseCase returns a rotation use case reading records with the current master key.
func (c *Container) RotationUseCase() (vaultUseCase.RotationUseCase, error) {
	repo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for rotation: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for rotation: %w", err)
	}

	cipher, err := c.SecretCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret cipher for rotation: %w", err)
	}

	return vaultUseCase.NewRotationUseCase(repo, txManager, cipher, c.Logger()), nil
}

// CredentialsHandler returns the HTTP handler for the credential endpoints.
func (c *Container) CredentialsHandler() (*vaultHTTP.CredentialsHandler, error) {
	var err error
	c.credentialsHandlerInit.Do(func() {
		c.credentialsHandler, err = c.initCredentialsHandler()
		if err != nil {
			c.initErrors["credentialsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialsHandler"]; exists {
		return nil, storedErr
	}
	return c.credentialsHandler, nil
}

// TempCredentialsHandler returns the HTTP handler for temporary credentials and the auth callback.
func (c *Container) TempCredentialsHandler() (*vaultHTTP.TempCredentialsHandler, error) {
	var err error
	c.tempCredentialsHandlerInit.Do(func() {
		c.tempCredentialsHandler, err = c.initTempCredentialsHandler()
		if err != nil {
			c.initErrors["tempCredentialsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tempCredentialsHandler"]; exists {
		return nil, storedErr
	}
	return c.tempCredentialsHandler, nil
}

// BaaSCredentialRules returns the acceptance rules for BaaS credentials.
func (c *Container) BaaSCredentialRules() vaultDomain.BaaSCredentialRules {
	rules := vaultDomain.DefaultBaaSCredentialRules()
	if len(c.config.BaaSAllowedHostSuffixes) > 0 {
		rules.AllowedHostSuffixes = c.config.BaaSAllowedHostSuffixes
	}
	if c.config.BaaSMinAPIKeyLength > 0 {
		rules.MinAPIKeyLength = c.config.BaaSMinAPIKeyLength
	}
	return rules
}

// DatabaseConnectionRules returns the acceptance rules for connection strings.
func (c *Container) DatabaseConnectionRules() vaultDomain.DatabaseConnectionRules {
	rules := vaultDomain.DefaultDatabaseConnectionRules()
	if len(c.config.TenantDBAllowedSchemes) > 0 {
		rules.AllowedSchemes = c.config.TenantDBAllowedSchemes
	}
	return rules
}

func (c *Container) initRecordRepository() (vaultUseCase.RecordRepository, error) {
	switch c.config.VaultBackend {
	case config.VaultBackendPostgres, config.VaultBackendMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for record repository: %w", err)
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			return vaultRepository.NewMySQLRecordRepository(db), nil
		case "postgres":
			return vaultRepository.NewPostgreSQLRecordRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	case config.VaultBackendRedis:
		return vaultRepository.NewRedisRecordRepository(c.RedisClient(), c.config.RedisKeyPrefix), nil
	case config.VaultBackendFile:
		return vaultRepository.NewFileRecordRepository(c.config.VaultFileDir), nil
	default:
		return nil, fmt.Errorf("unsupported vault backend: %s", c.config.VaultBackend)
	}
}

func (c *Container) initBaaSCredentialStore() (vaultUseCase.BaaSCredentialStore, error) {
	repo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for baas store: %w", err)
	}

	cipher, err := c.SecretCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret cipher for baas store: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for baas store: %w", err)
	}

	store := vaultUseCase.NewBaaSCredentialStore(repo, cipher, c.BaaSCredentialRules(), c.Logger())
	return vaultUseCase.NewCredentialStoreWithMetrics(store, vaultDomain.BaaSStore, businessMetrics), nil
}

func (c *Container) initDatabaseCredentialStore() (vaultUseCase.DatabaseCredentialStore, error) {
	repo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for database store: %w", err)
	}

	cipher, err := c.SecretCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret cipher for database store: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for database store: %w", err)
	}

	validator := broker.NewConnectionValidator(c.config.TenantDBConnectTimeout, c.Logger())
	store := vaultUseCase.NewDatabaseCredentialStore(
		repo,
		cipher,
		c.DatabaseConnectionRules(),
		validator,
		c.Logger(),
	)
	return vaultUseCase.NewCredentialStoreWithMetrics(store, vaultDomain.DatabaseStore, businessMetrics), nil
}

func (c *Container) initCredentialChecker() (vaultUseCase.CredentialChecker, error) {
	baasStore, err := c.BaaSCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get baas store for credential checker: %w", err)
	}

	databaseStore, err := c.DatabaseCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get database store for credential checker: %w", err)
	}

	return vaultUseCase.NewCredentialChecker(c.config.GateCredentialStore, baasStore, databaseStore)
}

func (c *Container) initCredentialsHandler() (*vaultHTTP.CredentialsHandler, error) {
	baasStore, err := c.BaaSCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get baas store for credentials handler: %w", err)
	}

	databaseStore, err := c.DatabaseCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get database store for credentials handler: %w", err)
	}

	return vaultHTTP.NewCredentialsHandler(baasStore, databaseStore, c.Logger()), nil
}

func (c *Container) initTempCredentialsHandler() (*vaultHTTP.TempCredentialsHandler, error) {
	cipher, err := c.SecretCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret cipher for temp credentials handler: %w", err)
	}

	baasStore, err := c.BaaSCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get baas store for temp credentials handler: %w", err)
	}

	handlerConfig := vaultHTTP.DefaultTempCredentialsConfig()
	handlerConfig.SecureCookie = c.config.SecureCookies
	if c.config.TempCredentialsTTL > 0 {
		handlerConfig.TTL = c.config.TempCredentialsTTL
	}

	return vaultHTTP.NewTempCredentialsHandler(
		cipher,
		c.BaaSCredentialRules(),
		baasStore,
		handlerConfig,
		c.Logger(),
	), nil
}
