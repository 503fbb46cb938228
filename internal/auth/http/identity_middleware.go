package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/tenantvault/internal/auth/service"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	"github.com/allisson/tenantvault/internal/httputil"
)

// IdentityMiddleware resolves the request's tenant once and stores it in the request
// context. Unresolved requests continue without an identity; GateMiddleware and
// RequireTenant decide what happens to them.
func IdentityMiddleware(resolver authService.IdentityResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.Resolve(c.Request)
		if err != nil {
			logger.Debug("request not authenticated", slog.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// RequireTenant aborts with 401 when no tenant was resolved for the request.
//
// MUST be used after IdentityMiddleware.
func RequireTenant(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetTenant(c.Request.Context()); !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}
