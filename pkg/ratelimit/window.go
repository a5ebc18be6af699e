package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Counter is a shared hit counter. Incr must add one to the count for
// (key, windowStart) and return the new total in a single atomic step, so
// concurrent callers never observe the same total.
type Counter interface {
	Incr(ctx context.Context, key string, windowStart time.Time, ttl time.Duration) (int64, error)
}

// FixedWindow is a Limiter that allows Requests calls per key in each
// Window-aligned interval, counted in a shared Counter.
type FixedWindow struct {
	cfg     Config
	counter Counter
	prefix  string
	now     func() time.Time
}

// FixedWindowOption configures a FixedWindow.
type FixedWindowOption func(*FixedWindow)

// WithPrefix namespaces keys so several limiters can share one counter.
func WithPrefix(prefix string) FixedWindowOption {
	return func(f *FixedWindow) { f.prefix = prefix }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) FixedWindowOption {
	return func(f *FixedWindow) { f.now = now }
}

// NewFixedWindow creates a FixedWindow backed by counter.
func NewFixedWindow(cfg Config, counter Counter, opts ...FixedWindowOption) (*FixedWindow, error) {
	if err := cfg.valid(); err != nil {
		return nil, err
	}
	if counter == nil {
		return nil, fmt.Errorf("ratelimit: nil counter")
	}
	f := &FixedWindow{cfg: cfg, counter: counter, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Admit counts one call against the current window for key.
func (f *FixedWindow) Admit(ctx context.Context, key string) (Decision, error) {
	now := f.now().UTC()
	start := now.Truncate(f.cfg.Window)
	end := start.Add(f.cfg.Window)

	if f.prefix != "" {
		key = f.prefix + ":" + key
	}

	// Keep the counter around for one extra window to tolerate clock skew
	// between instances sharing it.
	hits, err := f.counter.Incr(ctx, key, start, 2*f.cfg.Window)
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: counter: %w", err)
	}

	d := Decision{Limit: f.cfg.Requests}
	if hits > int64(f.cfg.Requests) {
		d.RetryAfter = end.Sub(now)
		return d, nil
	}

	d.Allowed = true
	d.Remaining = f.cfg.Requests - int(hits)
	return d, nil
}
