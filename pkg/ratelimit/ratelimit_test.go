package ratelimit_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/ratelimit"
	"github.com/stretchr/testify/require"
)

// memCounter is a mutex-guarded Counter for exercising FixedWindow.
type memCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func newMemCounter() *memCounter {
	return &memCounter{hits: make(map[string]int64)}
}

func (c *memCounter) Incr(_ context.Context, key string, start time.Time, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	k := key + "@" + start.String()
	c.hits[k]++
	return c.hits[k], nil
}

func TestConfigValidation(t *testing.T) {
	_, err := ratelimit.NewTokenBucket(ratelimit.Config{Requests: 0, Window: time.Second})
	require.Error(t, err)

	_, err = ratelimit.NewFixedWindow(ratelimit.Config{Requests: 1, Window: 0}, newMemCounter())
	require.Error(t, err)

	_, err = ratelimit.NewFixedWindow(ratelimit.Config{Requests: 1, Window: time.Second}, nil)
	require.Error(t, err)
}

func TestTokenBucketRejectsOverCapacity(t *testing.T) {
	tb, err := ratelimit.NewTokenBucket(ratelimit.Config{Requests: 5, Window: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()

	for i := range 5 {
		d, err := tb.Admit(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, d.Allowed, "call %d should be allowed", i)
		require.NoError(t, d.Err())
	}

	for range 10 {
		d, err := tb.Admit(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.False(t, d.Allowed)
		require.ErrorIs(t, d.Err(), ratelimit.ErrRateLimited)
		require.Positive(t, d.RetryAfter)
	}

	// Other keys have their own bucket
	d, err := tb.Admit(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestTokenBucketConcurrentAdmits(t *testing.T) {
	tb, err := ratelimit.NewTokenBucket(ratelimit.Config{Requests: 10, Window: time.Hour})
	require.NoError(t, err)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := tb.Admit(context.Background(), "shared")
			if err == nil && d.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 10, allowed.Load())
}

func TestFixedWindowRollsOver(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	fw, err := ratelimit.NewFixedWindow(
		ratelimit.Config{Requests: 3, Window: time.Minute},
		newMemCounter(),
		ratelimit.WithClock(clock),
		ratelimit.WithPrefix("register"),
	)
	require.NoError(t, err)
	ctx := context.Background()

	for i := range 3 {
		d, err := fw.Admit(ctx, "caller")
		require.NoError(t, err)
		require.True(t, d.Allowed)
		require.Equal(t, 2-i, d.Remaining)
	}

	now = now.Add(20 * time.Second)
	d, err := fw.Admit(ctx, "caller")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Equal(t, 40*time.Second, d.RetryAfter)

	now = now.Add(40 * time.Second)
	d, err = fw.Admit(ctx, "caller")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestFixedWindowCounterFailureIsNotAnAllow(t *testing.T) {
	c := newMemCounter()
	c.err = errors.New("connection refused")

	fw, err := ratelimit.NewFixedWindow(ratelimit.Config{Requests: 3, Window: time.Minute}, c)
	require.NoError(t, err)

	d, err := fw.Admit(context.Background(), "caller")
	require.Error(t, err)
	require.False(t, d.Allowed)
}

func TestFixedWindowConcurrentAdmits(t *testing.T) {
	fw, err := ratelimit.NewFixedWindow(ratelimit.Config{Requests: 25, Window: time.Hour}, newMemCounter())
	require.NoError(t, err)

	var allowed, rejected atomic.Int64
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := fw.Admit(context.Background(), "shared")
			require.NoError(t, err)
			if d.Allowed {
				allowed.Add(1)
			} else {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 25, allowed.Load())
	require.EqualValues(t, 175, rejected.Load())
}
