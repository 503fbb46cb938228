package app

import (
	"fmt"
	"sync"

	"github.com/allisson/tenantvault/internal/broker"
)

type brokerComponents struct {
	postgresBroker *broker.PostgresBroker
	baasBroker     *broker.BaaSBroker

	postgresBrokerInit sync.Once
	baasBrokerInit     sync.Once
}

// PostgresBroker returns the broker for tenant PostgreSQL databases.
func (c *Container) PostgresBroker() (*broker.PostgresBroker, error) {
	var err error
	c.postgresBrokerInit.Do(func() {
		c.postgresBroker, err = c.initPostgresBroker()
		if err != nil {
			c.initErrors["postgresBroker"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["postgresBroker"]; exists {
		return nil, storedErr
	}
	return c.postgresBroker, nil
}

// BaaSBroker returns the broker for tenant BaaS projects.
func (c *Container) BaaSBroker() (*broker.BaaSBroker, error) {
	var err error
	c.baasBrokerInit.Do(func() {
		c.baasBroker, err = c.initBaaSBroker()
		if err != nil {
			c.initErrors["baasBroker"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["baasBroker"]; exists {
		return nil, storedErr
	}
	return c.baasBroker, nil
}

func (c *Container) initPostgresBroker() (*broker.PostgresBroker, error) {
	store, err := c.DatabaseCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get database store for postgres broker: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for postgres broker: %w", err)
	}

	brokerConfig := broker.DefaultConfig()
	if c.config.TenantDBConnectTimeout > 0 {
		brokerConfig.ConnectTimeout = c.config.TenantDBConnectTimeout
	}
	if c.config.TenantDBQueryTimeout > 0 {
		brokerConfig.QueryTimeout = c.config.TenantDBQueryTimeout
	}
	if c.config.TenantDBMaxConns > 0 {
		brokerConfig.MaxConns = int32(c.config.TenantDBMaxConns)
	}

	return broker.NewPostgresBroker(store, brokerConfig, nil, businessMetrics, c.Logger()), nil
}

func (c *Container) initBaaSBroker() (*broker.BaaSBroker, error) {
	store, err := c.BaaSCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get baas store for baas broker: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for baas broker: %w", err)
	}

	clientConfig := broker.DefaultBaaSClientConfig()
	if c.config.BaaSRequestTimeout > 0 {
		clientConfig.Timeout = c.config.BaaSRequestTimeout
	}

	return broker.NewBaaSBroker(store, clientConfig, businessMetrics, c.Logger()), nil
}
