package store

import (
	"context"
	"fmt"
	"time"
)

// DefaultCounterTimeout bounds a single counter update when none is given.
const DefaultCounterTimeout = 5 * time.Second

// RateLimitCounter adapts Store to the ratelimit.Counter interface so a
// FixedWindow limiter can share its counts through the database.
type RateLimitCounter struct {
	store   Store
	timeout time.Duration
}

// NewRateLimitCounter creates a counter backed by the rate_limit_windows
// table. Each Incr gives up after timeout and reports ErrUnavailable.
func NewRateLimitCounter(store Store, timeout time.Duration) *RateLimitCounter {
	if timeout <= 0 {
		timeout = DefaultCounterTimeout
	}
	return &RateLimitCounter{store: store, timeout: timeout}
}

// Incr implements ratelimit.Counter.
func (c *RateLimitCounter) Incr(ctx context.Context, key string, windowStart time.Time, ttl time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	n, err := c.store.RateLimits().IncrWindow(ctx, key, windowStart, windowStart.Add(ttl))
	if err != nil && ctx.Err() != nil {
		return 0, fmt.Errorf("%w: rate limit counter: %w", ErrUnavailable, ctx.Err())
	}
	return n, err
}
