package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tablon-app/tablon-backend/errors"
	"github.com/tablon-app/tablon-backend/types"
)

// RateLimiterInterface defines the contract for rate limiting operations.
type RateLimiterInterface interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

// FixedWindowLimiter is an in-process fixed-window rate limiter: a per-key
// counter that resets every window. The process owns all its state, so no
// external store is involved.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewFixedWindowLimiter creates an empty limiter.
func NewFixedWindowLimiter() *FixedWindowLimiter {
	return &FixedWindowLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

var _ RateLimiterInterface = (*FixedWindowLimiter)(nil)

// CheckLimit counts a request against the key's current window. It returns
// whether the request is admitted and, when it is not, how long until the
// window resets.
func (l *FixedWindowLimiter) CheckLimit(_ context.Context, key string, limit int, windowDur time.Duration) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[key]
	if w == nil || now.Sub(w.start) >= windowDur {
		w = &window{start: now}
		l.windows[key] = w
	}

	w.count++
	if w.count > limit {
		return false, w.start.Add(windowDur).Sub(now), nil
	}
	return true, 0, nil
}

// EndpointRateLimiter creates a middleware enforcing a fixed-window limit on
// a single endpoint. The limiter scope is the client IP.
func EndpointRateLimiter(rateLimiter RateLimiterInterface, requests int, windowDur time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + ":" + c.FullPath() + ":" + c.ClientIP()

		allowed, retryAfter, err := rateLimiter.CheckLimit(c.Request.Context(), key, requests, windowDur)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
				OK:    false,
				Error: apperrors.CodeInternalError,
			})
			return
		}

		if !allowed {
			setRateLimitHeaders(c, requests, 0, retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				OK:         false,
				Error:      apperrors.CodeRateLimited,
				RetryAfter: int(retryAfter.Seconds()),
			})
			return
		}

		setRateLimitHeaders(c, requests, requests-1, 0)
		c.Next()
	}
}

// setRateLimitHeaders sets the standard rate limit headers
func setRateLimitHeaders(c *gin.Context, limit int, remaining int, retryAfter time.Duration) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

	if retryAfter > 0 {
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(retryAfter).Unix(), 10))
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	}
}
