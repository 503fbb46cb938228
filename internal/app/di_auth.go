package app

import (
	"sync"
	"time"

	authHTTP "github.com/allisson/tenantvault/internal/auth/http"
	authService "github.com/allisson/tenantvault/internal/auth/service"
)

// jwtLeeway tolerates clock skew between this server and the token issuers.
const jwtLeeway = 30 * time.Second

type authComponents struct {
	tokenService     authService.TokenService
	identityResolver authService.IdentityResolver

	tokenServiceInit     sync.Once
	identityResolverInit sync.Once
}

// TokenService returns the service that issues and verifies application session tokens.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService(authService.TokenServiceConfig{
			Secret:     []byte(c.config.TokenSessionSecret),
			Issuer:     c.config.TokenSessionIssuer,
			Expiration: c.config.TokenSessionExpiration,
			Leeway:     jwtLeeway,
		})
	})
	return c.tokenService
}

// IdentityResolver returns the resolver used by the identity middleware. BaaS sessions
// take precedence over application session tokens; a source without a secret is not
// registered.
func (c *Container) IdentityResolver() authService.IdentityResolver {
	c.identityResolverInit.Do(func() {
		c.identityResolver = c.initIdentityResolver()
	})
	return c.identityResolver
}

// GateConfig returns the request gate configuration.
func (c *Container) GateConfig() authHTTP.GateConfig {
	gateConfig := authHTTP.DefaultGateConfig()
	if c.config.LoginPath != "" {
		gateConfig.LoginPath = c.config.LoginPath
	}
	if c.config.SetupPath != "" {
		gateConfig.SetupPath = c.config.SetupPath
	}
	return gateConfig
}

func (c *Container) initIdentityResolver() authService.IdentityResolver {
	logger := c.Logger()
	providers := make([]authService.IdentityProvider, 0, 2)

	if c.config.BaaSJWTSecret != "" {
		providers = append(providers, authService.NewBaaSSessionProvider(authService.BaaSSessionConfig{
			JWTSecret:  []byte(c.config.BaaSJWTSecret),
			Audience:   c.config.BaaSJWTAudience,
			CookieName: c.config.BaaSSessionCookie,
			Leeway:     jwtLeeway,
		}, logger))
	} else {
		logger.Warn("BAAS_JWT_SECRET is not set; BaaS sessions will not be accepted")
	}

	if c.config.TokenSessionSecret != "" {
		providers = append(providers, authService.NewTokenSessionProvider(
			c.TokenService(),
			c.config.TokenSessionCookie,
			logger,
		))
	} else {
		logger.Warn("TOKEN_SESSION_SECRET is not set; session tokens will not be accepted")
	}

	return authService.NewResolver(logger, providers...)
}
