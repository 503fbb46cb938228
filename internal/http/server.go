// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/tenantvault/internal/auth/http"
	authService "github.com/allisson/tenantvault/internal/auth/service"
	"github.com/allisson/tenantvault/internal/config"
	"github.com/allisson/tenantvault/internal/metrics"
	vaultHTTP "github.com/allisson/tenantvault/internal/vault/http"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
	workspaceHTTP "github.com/allisson/tenantvault/internal/workspace/http"
)

// ReadinessCheck reports whether the vault backend is reachable.
type ReadinessCheck func(ctx context.Context) error

// Routes holds the handlers and collaborators mounted by SetupRouter.
type Routes struct {
	Resolver          authService.IdentityResolver
	CredentialChecker vaultUsecase.CredentialChecker
	GateConfig        authHTTP.GateConfig

	Credentials     *vaultHTTP.CredentialsHandler
	TempCredentials *vaultHTTP.TempCredentialsHandler
	Workspace       *workspaceHTTP.WorkspaceHandler
}

// Server represents the HTTP server
type Server struct {
	ready  ReadinessCheck
	router *gin.Engine
	logger *slog.Logger
	server *http.Server
}

// NewServer creates a new HTTP server. A nil ready check reports the vault as unavailable.
func NewServer(ready ReadinessCheck, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		ready:  ready,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine. Identity is resolved and the gate applied to every
// request; the /v1 API additionally requires a tenant and is rate limited per tenant.
// ctx bounds the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	routes Routes,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(authHTTP.IdentityMiddleware(routes.Resolver, s.logger))
	router.Use(authHTTP.GateMiddleware(routes.GateConfig, routes.CredentialChecker, s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if routes.TempCredentials != nil {
		router.GET("/auth/callback", routes.TempCredentials.CallbackHandler)

		capture := []gin.HandlerFunc{}
		if cfg.RateLimitIPEnabled {
			capture = append(capture, authHTTP.IPRateLimitMiddleware(
				ctx,
				cfg.RateLimitIPRequestsPerSec,
				cfg.RateLimitIPBurst,
				s.logger,
			))
		}
		capture = append(capture, routes.TempCredentials.CaptureHandler)
		router.POST("/v1/temp-credentials", capture...)
	}

	v1 := router.Group("/v1")
	v1.Use(authHTTP.RequireTenant(s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.TenantRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	if routes.Credentials != nil {
		v1.GET("/credentials", routes.Credentials.GetCredentialsHandler)
		v1.POST("/credentials", routes.Credentials.SaveCredentialsHandler)
		v1.DELETE("/credentials", routes.Credentials.DeleteCredentialsHandler)
		v1.GET("/connection-status", routes.Credentials.ConnectionStatusHandler)
		v1.POST("/connection", routes.Credentials.SaveConnectionHandler)
		v1.DELETE("/connection", routes.Credentials.DeleteConnectionHandler)
	}

	if routes.Workspace != nil {
		v1.GET("/projects", routes.Workspace.ListProjectsHandler)
		v1.POST("/projects", routes.Workspace.CreateProjectHandler)
		v1.GET("/tasks", routes.Workspace.ListTasksHandler)
		v1.POST("/tasks", routes.Workspace.CreateTaskHandler)
		v1.GET("/team", routes.Workspace.ListTeamHandler)
		v1.POST("/team", routes.Workspace.CreateTeamMemberHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the vault backend can be reached.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.ready == nil || s.ready(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"vault": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"vault": "ok"},
	})
}
