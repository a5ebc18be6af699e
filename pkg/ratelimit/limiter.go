// Package ratelimit gates callers by key. Every Limiter answers immediately;
// none of them queue or sleep.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrRateLimited is returned by Decision.Err when the caller is over budget.
var ErrRateLimited = errors.New("ratelimit: rate limited")

// Config describes a budget of Requests per Window. Burst is only used by
// the token bucket; it defaults to Requests.
type Config struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (c Config) burst() int {
	if c.Burst > 0 {
		return c.Burst
	}
	return c.Requests
}

func (c Config) valid() error {
	if c.Requests <= 0 || c.Window <= 0 {
		return errors.New("ratelimit: requests and window must be positive")
	}
	return nil
}

// Decision is the outcome of one Admit call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Err returns ErrRateLimited for a rejected decision and nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return ErrRateLimited
}

// Limiter decides whether a caller identified by key may proceed now.
//
// An error means the limiter could not count the call (its backing counter
// is unreachable); callers must not treat that as an allow.
type Limiter interface {
	Admit(ctx context.Context, key string) (Decision, error)
}
