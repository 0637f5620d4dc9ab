package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablon-app/tablon-backend/logger"
	"github.com/tablon-app/tablon-backend/types"
)

func init() {
	logger.IsTest = true
}

func TestFixedWindowLimiterAdmitsUpToLimit(t *testing.T) {
	l := NewFixedWindowLimiter()
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		allowed, _, err := l.CheckLimit(ctx, "ip:1.2.3.4", 30, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be admitted", i+1)
	}

	allowed, retryAfter, err := l.CheckLimit(ctx, "ip:1.2.3.4", 30, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "31st request within the window must be rejected")
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestFixedWindowLimiterResetsAfterWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	l := NewFixedWindowLimiter()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 31; i++ {
		_, _, err := l.CheckLimit(ctx, "ip:1.2.3.4", 30, time.Minute)
		require.NoError(t, err)
	}

	// Advance past the window boundary; the counter starts over.
	now = now.Add(61 * time.Second)
	allowed, _, err := l.CheckLimit(ctx, "ip:1.2.3.4", 30, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestFixedWindowLimiterScopesAreIndependent(t *testing.T) {
	l := NewFixedWindowLimiter()
	ctx := context.Background()

	for i := 0; i < 31; i++ {
		_, _, err := l.CheckLimit(ctx, "ip:1.2.3.4", 30, time.Minute)
		require.NoError(t, err)
	}

	// A different client is unaffected by the exhausted scope.
	allowed, _, err := l.CheckLimit(ctx, "ip:5.6.7.8", 30, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestFixedWindowLimiterRetryAfterCountsDown(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	l := NewFixedWindowLimiter()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, _, err := l.CheckLimit(ctx, "k", 30, time.Minute)
		require.NoError(t, err)
	}

	now = now.Add(45 * time.Second)
	allowed, retryAfter, err := l.CheckLimit(ctx, "k", 30, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 15*time.Second, retryAfter)
}

func TestEndpointRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/comments", EndpointRateLimiter(NewFixedWindowLimiter(), 3, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	doPost := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		w := doPost()
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doPost()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "RATE_LIMITED", resp.Error)
	assert.GreaterOrEqual(t, resp.RetryAfter, 0)
}

func TestEndpointRateLimiterKeysByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/comments", EndpointRateLimiter(NewFixedWindowLimiter(), 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	doPost := func(addr string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, doPost("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost("10.0.0.1:9999").Code)
	assert.Equal(t, http.StatusCreated, doPost("10.0.0.2:1234").Code)
}
