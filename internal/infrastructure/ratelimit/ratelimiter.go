package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig caps requests per key inside a sliding window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits the limit.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// GetRemaining reports how many requests key may still make in the window.
	GetRemaining(ctx context.Context, key string, config RateLimitConfig) (int64, error)
}
