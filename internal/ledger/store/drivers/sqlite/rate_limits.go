package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite/gen"
)

type rateLimitsRepo struct {
	q *gen.Queries
}

func (r *rateLimitsRepo) IncrWindow(ctx context.Context, key string, windowStart, expiresAt time.Time) (int64, error) {
	hits, err := r.q.IncrRateLimitWindow(ctx, gen.IncrRateLimitWindowParams{
		CallerKey:   key,
		WindowStart: toNanos(windowStart),
		ExpiresAt:   toNanos(expiresAt),
	})
	return hits, mapErr(err)
}

func (r *rateLimitsRepo) DeleteExpiredWindows(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.q.DeleteExpiredRateLimitWindows(ctx, toNanos(now))
	return n, mapErr(err)
}
