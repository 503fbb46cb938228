package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/httputil"
	vaultUsecase "github.com/allisson/tenantvault/internal/vault/usecase"
)

// GateConfig describes the routes the request gate treats specially. Entries in the
// path lists match the path itself and everything below it.
type GateConfig struct {
	LoginPath string
	SetupPath string
	APIPrefix string

	// ExemptPaths bypass the gate entirely, identity or not.
	ExemptPaths      []string
	StaticExtensions []string

	// PublicPaths are served to unresolved requests.
	PublicPaths []string

	// SetupPaths are served to resolved tenants that have not stored credentials yet.
	SetupPaths []string
}

// DefaultGateConfig returns the gate configuration for the default route layout.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		LoginPath:        "/login",
		SetupPath:        "/settings/database",
		APIPrefix:        "/v1/",
		ExemptPaths:      []string{"/auth/callback", "/api/auth", "/_next", "/static", "/favicon.ico"},
		StaticExtensions: []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".css", ".js"},
		PublicPaths: []string{
			"/login",
			"/register",
			"/forgot-password",
			"/v1/temp-credentials",
			"/health",
			"/ready",
		},
		SetupPaths: []string{
			"/v1/credentials",
			"/v1/connection",
			"/v1/connection-status",
			"/v1/temp-credentials",
		},
	}
}

// GateMiddleware routes every request by identity and setup state:
//
//   - exempt paths and static assets pass untouched
//   - public paths pass for everyone
//   - unresolved API requests get 401; unresolved pages redirect to LoginPath
//   - the setup surface passes for resolved tenants
//   - tenants without stored credentials get 409 on the API and a redirect to SetupPath elsewhere
//
// MUST be used after IdentityMiddleware. Only the existence of credentials is checked;
// nothing is decrypted here.
func GateMiddleware(
	config GateConfig,
	checker vaultUsecase.CredentialChecker,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if config.isExempt(path) || matchesAny(path, config.PublicPaths) {
			c.Next()
			return
		}

		tenant, ok := GetTenant(c.Request.Context())
		if !ok {
			if config.isAPI(path) {
				httputil.HandleErrorGin(c, authDomain.ErrUnauthenticated, logger)
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, config.LoginPath)
			c.Abort()
			return
		}

		if path == config.SetupPath || matchesAny(path, config.SetupPaths) {
			c.Next()
			return
		}

		configured, err := checker.HasCredentials(c.Request.Context(), tenant)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}
		if configured {
			c.Next()
			return
		}

		logger.Debug("tenant has no credentials",
			slog.String("tenant", tenant.Redacted()),
			slog.String("path", path),
		)

		if config.isAPI(path) {
			c.JSON(http.StatusConflict, httputil.ErrorResponse{
				Error:    "credentials_not_configured",
				Message:  "Connect a database or BaaS project before using this endpoint",
				SetupURL: config.SetupPath,
			})
			c.Abort()
			return
		}
		c.Redirect(http.StatusFound, config.SetupPath)
		c.Abort()
	}
}

func (g GateConfig) isAPI(path string) bool {
	return strings.HasPrefix(path, g.APIPrefix)
}

func (g GateConfig) isExempt(path string) bool {
	if matchesAny(path, g.ExemptPaths) {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range g.StaticExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// matchesAny reports whether path equals one of prefixes or lies below one of them.
func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimSuffix(prefix, "/")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
