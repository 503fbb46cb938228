package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware allows a separately hosted dashboard to call the tenant API.
// It returns nil when CORS is disabled or no usable origin is configured.
//
// Identity travels in session cookies, so every response allows credentials and the
// wildcard origin is never accepted.
func createCORSMiddleware(enabled bool, origins []string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	allowed := credentialedOrigins(origins, logger)
	if len(allowed) == 0 {
		logger.Warn("CORS enabled but no usable origins configured; CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", allowed))

	return cors.New(cors.Config{
		AllowOrigins: allowed,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowHeaders: []string{
			"Authorization",
			"Content-Type",
			"X-Request-Id",
		},
		ExposeHeaders: []string{
			"X-Request-Id",
			"Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// credentialedOrigins drops the wildcard origin, which browsers reject for credentialed requests.
func credentialedOrigins(origins []string, logger *slog.Logger) []string {
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			logger.Warn("ignoring wildcard CORS origin; session cookies require explicit origins")
			continue
		}
		allowed = append(allowed, origin)
	}
	return allowed
}
