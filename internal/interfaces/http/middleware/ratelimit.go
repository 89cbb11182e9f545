package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supportdesk/supportdesk/internal/infrastructure/ratelimit"
	"github.com/supportdesk/supportdesk/internal/shared/errors"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
	"github.com/supportdesk/supportdesk/internal/shared/utils"
)

// Limiter is the subset of ratelimit.RateLimiter the middleware needs.
type Limiter interface {
	Allow(ctx context.Context, key string, config ratelimit.RateLimitConfig) (bool, error)
	GetRemaining(ctx context.Context, key string, config ratelimit.RateLimitConfig) (int64, error)
}

// RateLimiter throttles a route per client IP.
type RateLimiter struct {
	limiter Limiter
	config  ratelimit.RateLimitConfig
	scope   string
	logger  logger.Interface
}

// NewRateLimiter limits requests under scope, e.g. "login", to config per IP.
func NewRateLimiter(limiter Limiter, scope string, config ratelimit.RateLimitConfig, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		config:  config,
		scope:   scope,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP.
// A failing backend lets the request through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.config.Window.Seconds())))
			utils.AbortWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later"))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Requests))
		if remaining, err := rl.limiter.GetRemaining(c.Request.Context(), key, rl.config); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}

		c.Next()
	}
}
