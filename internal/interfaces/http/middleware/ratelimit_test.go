package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/supportdesk/supportdesk/internal/infrastructure/ratelimit"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

type stubLimiter struct {
	allowed   bool
	err       error
	remaining int64
	keys      []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ ratelimit.RateLimitConfig) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func (s *stubLimiter) GetRemaining(_ context.Context, _ string, _ ratelimit.RateLimitConfig) (int64, error) {
	return s.remaining, s.err
}

func TestRateLimiter_Limit(t *testing.T) {
	cfg := ratelimit.RateLimitConfig{Requests: 5, Window: time.Minute}

	tests := []struct {
		name           string
		limiter        *stubLimiter
		wantCode       int
		wantRetryAfter string
		wantRemaining  string
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true, remaining: 4}, wantCode: http.StatusOK, wantRemaining: "4"},
		{name: "throttled", limiter: &stubLimiter{allowed: false}, wantCode: http.StatusTooManyRequests, wantRetryAfter: "60"},
		{name: "backend error fails open", limiter: &stubLimiter{err: fmt.Errorf("redis down")}, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.limiter, "login", cfg, logger.NewDiscardLogger())
			r := gin.New()
			r.POST("/session/login", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodPost, "/session/login", nil)
			req.RemoteAddr = "203.0.113.7:5555"
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantRetryAfter, w.Header().Get("Retry-After"))
			assert.Equal(t, tt.wantRemaining, w.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, []string{"login:203.0.113.7"}, tt.limiter.keys)
		})
	}
}
