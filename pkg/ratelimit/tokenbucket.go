package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket is an in-process Limiter keyed by caller. Each key gets its
// own bucket holding Burst tokens, refilled at Requests per Window.
type TokenBucket struct {
	cfg      Config
	limit    rate.Limit
	limiters sync.Map // map[string]*rate.Limiter

	mu          sync.Mutex
	lastCleanup time.Time
	now         func() time.Time
}

// NewTokenBucket creates a TokenBucket for cfg.
func NewTokenBucket(cfg Config) (*TokenBucket, error) {
	if err := cfg.valid(); err != nil {
		return nil, err
	}
	return &TokenBucket{
		cfg:         cfg,
		limit:       rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		lastCleanup: time.Now(),
		now:         time.Now,
	}, nil
}

// Admit takes one token from key's bucket if one is available.
func (tb *TokenBucket) Admit(_ context.Context, key string) (Decision, error) {
	now := tb.now()

	var (
		l       *rate.Limiter
		allowed bool
	)
	for {
		l = tb.getLimiter(key, now)
		allowed = l.AllowN(now, 1)
		// Cleanup may have dropped l between the load and the take. The
		// token then came from an orphan, so charge the live bucket instead.
		if cur, ok := tb.limiters.Load(key); ok && cur == l {
			break
		}
	}

	d := Decision{Limit: tb.cfg.burst()}

	if !allowed {
		// Time until the bucket holds one whole token again
		deficit := 1 - l.TokensAt(now)
		d.RetryAfter = time.Duration(deficit / float64(tb.limit) * float64(time.Second))
		return d, nil
	}

	d.Allowed = true
	d.Remaining = max(int(l.TokensAt(now)), 0)
	return d, nil
}

func (tb *TokenBucket) getLimiter(key string, now time.Time) *rate.Limiter {
	// Fast path: limiter already exists
	if l, ok := tb.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	l := rate.NewLimiter(tb.limit, tb.cfg.burst())
	actual, _ := tb.limiters.LoadOrStore(key, l)

	tb.maybeCleanup(now)
	return actual.(*rate.Limiter)
}

// maybeCleanup drops buckets that have refilled completely. An idle bucket
// is indistinguishable from a fresh one, so removing it changes nothing.
// A bucket is only removed while it is still the one stored for its key; a
// take that lands between the fullness check and the delete can still
// admit one extra call per pass.
func (tb *TokenBucket) maybeCleanup(now time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if now.Sub(tb.lastCleanup) < 5*time.Minute {
		return
	}
	tb.lastCleanup = now

	tb.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).TokensAt(now) >= float64(tb.cfg.burst()) {
			tb.limiters.CompareAndDelete(key, value)
		}
		return true
	})
}
