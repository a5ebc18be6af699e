package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type rateLimitsRepo struct {
	pool *pgxpool.Pool
}

func (r *rateLimitsRepo) IncrWindow(ctx context.Context, key string, windowStart, expiresAt time.Time) (int64, error) {
	var hits int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO rate_limit_windows (caller_key, window_start, hits, expires_at)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (caller_key, window_start) DO UPDATE SET hits = rate_limit_windows.hits + 1
		RETURNING hits`,
		key, windowStart.UTC(), expiresAt.UTC(),
	).Scan(&hits)
	return hits, mapErr(err)
}

func (r *rateLimitsRepo) DeleteExpiredWindows(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rate_limit_windows WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}
