package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

func newTenantRateLimitRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(TenantRateLimitMiddleware(ctx, rps, burst, createTestLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serveAs(router *gin.Engine, tenant authDomain.TenantID) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if !tenant.IsZero() {
		req = req.WithContext(WithIdentity(req.Context(), authDomain.Identity{
			TenantID: tenant,
			Source:   authDomain.SourceBaaSSession,
		}))
	}
	router.ServeHTTP(w, req)
	return w
}

func TestTenantRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTenantRateLimitRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serveAs(router, testTenant).Code)
	}
}

func TestTenantRateLimitMiddleware_Returns429WithRetryAfterHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTenantRateLimitRouter(t, 0.5, 1)

	assert.Equal(t, http.StatusOK, serveAs(router, testTenant).Code)

	w := serveAs(router, testTenant)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestTenantRateLimitMiddleware_IndependentLimitsPerTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTenantRateLimitRouter(t, 1.0, 1)

	assert.Equal(t, http.StatusOK, serveAs(router, testTenant).Code)
	assert.Equal(t, http.StatusTooManyRequests, serveAs(router, testTenant).Code)
	assert.Equal(t, http.StatusOK, serveAs(router, "token:other@example.com").Code)
}

func TestTenantRateLimitMiddleware_RequiresTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTenantRateLimitRouter(t, 10.0, 20)

	assert.Equal(t, http.StatusUnauthorized, serveAs(router, "").Code)
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(IPRateLimitMiddleware(ctx, 1.0, 2, createTestLogger()))
	router.POST("/v1/temp-credentials", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	serveFrom := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/temp-credentials", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, serveFrom("192.0.2.1:1234"))
	assert.Equal(t, http.StatusNoContent, serveFrom("192.0.2.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, serveFrom("192.0.2.1:1234"))
	assert.Equal(t, http.StatusNoContent, serveFrom("198.51.100.7:4321"))
}

func TestRateLimiterStore_Sweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := newRateLimiterStore[string](ctx, 1, 1)

	store.getLimiter("stale")
	val, _ := store.limiters.Load("stale")
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()
	store.getLimiter("fresh")

	store.sweep(time.Now().Add(-time.Hour))

	_, staleFound := store.limiters.Load("stale")
	_, freshFound := store.limiters.Load("fresh")
	assert.False(t, staleFound)
	assert.True(t, freshFound)

	cancel()
	goleak.VerifyNone(t, goleak.IgnoreCurrent())
}
