package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleThreshold   = time.Hour
)

// rateLimiterStore holds per-key rate limiters with automatic cleanup.
type rateLimiterStore[K comparable] struct {
	limiters sync.Map // map[K]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newRateLimiterStore[K comparable](ctx context.Context, rps float64, burst int) *rateLimiterStore[K] {
	store := &rateLimiterStore[K]{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, limiterCleanupInterval, limiterIdleThreshold)

	return store
}

// TenantRateLimitMiddleware enforces per-tenant rate limiting on resolved requests.
//
// MUST be used after RequireTenant. Uses token bucket algorithm via golang.org/x/time/rate;
// each tenant gets an independent limiter. The cleanup goroutine stops when ctx is done.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func TenantRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore[authDomain.TenantID](ctx, rps, burst)

	return func(c *gin.Context) {
		tenant, ok := GetTenant(c.Request.Context())
		if !ok {
			// RequireTenant should have caught this
			logger.Error("rate limit middleware: no tenant in context")
			httputil.HandleErrorGin(c, authDomain.ErrUnauthenticated, logger)
			c.Abort()
			return
		}

		if retryAfter, allowed := allow(store.getLimiter(tenant)); !allowed {
			logger.Debug("rate limit exceeded",
				slog.String("tenant", tenant.Redacted()),
				slog.Int("retry_after", retryAfter))

			abortTooManyRequests(c, retryAfter, "Too many requests. Please retry after the specified delay.")
			return
		}

		c.Next()
	}
}

// IPRateLimitMiddleware enforces per-IP rate limiting on unauthenticated endpoints.
//
// Uses c.ClientIP(), which honours X-Forwarded-For and X-Real-IP from trusted proxies.
// The cleanup goroutine stops when ctx is done.
func IPRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore[string](ctx, rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if retryAfter, allowed := allow(store.getLimiter(clientIP)); !allowed {
			logger.Debug("ip rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			abortTooManyRequests(c, retryAfter, "Too many requests from this IP. Please retry after the specified delay.")
			return
		}

		c.Next()
	}
}

// allow consumes a token, or reports how many seconds until one is available.
func allow(limiter *rate.Limiter) (int, bool) {
	if limiter.Allow() {
		return 0, true
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds())
	reservation.Cancel()
	return retryAfter, false
}

func abortTooManyRequests(c *gin.Context, retryAfter int, message string) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
		Error:   "rate_limit_exceeded",
		Message: message,
	})
	c.Abort()
}

// getLimiter retrieves or creates the rate limiter for key.
func (s *rateLimiterStore[K]) getLimiter(key K) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}

	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale removes rate limiters that haven't been accessed within idle.
func (s *rateLimiterStore[K]) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(time.Now().Add(-idle))
		}
	}
}

func (s *rateLimiterStore[K]) sweep(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		shouldDelete := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if shouldDelete {
			s.limiters.Delete(key)
		}
		return true
	})
}
