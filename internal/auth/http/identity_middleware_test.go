package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

func TestIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(resolver stubResolver) *gin.Engine {
		router := gin.New()
		router.Use(IdentityMiddleware(resolver, createTestLogger()))
		router.GET("/whoami", func(c *gin.Context) {
			tenant, ok := GetTenant(c.Request.Context())
			if !ok {
				c.String(http.StatusOK, "anonymous")
				return
			}
			c.String(http.StatusOK, tenant.String())
		})
		return router
	}

	t.Run("Success_StoresIdentity", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(resolvedAs(testTenant)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testTenant.String(), w.Body.String())
	})

	t.Run("Success_UnresolvedContinues", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(stubResolver{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestRequireTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		resolver       stubResolver
		expectedStatus int
	}{
		{"resolved", resolvedAs(authDomain.NewTokenTenantID("dev@example.com", "")), http.StatusOK},
		{"unresolved", stubResolver{}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(IdentityMiddleware(tt.resolver, createTestLogger()), RequireTenant(createTestLogger()))
			router.GET("/v1/projects", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/projects", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "unauthorized")
			}
		})
	}
}
