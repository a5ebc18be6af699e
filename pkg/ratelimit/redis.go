package ratelimit

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter is a Counter shared across instances through Redis.
type RedisCounter struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedisCounter returns a counter storing keys under prefix.
func NewRedisCounter(rdb redis.Cmdable, prefix string) *RedisCounter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisCounter{rdb: rdb, prefix: strings.Trim(prefix, ":")}
}

// Incr runs INCR and EXPIRE NX in one MULTI/EXEC so the key can never be
// left without a TTL.
func (c *RedisCounter) Incr(ctx context.Context, key string, windowStart time.Time, ttl time.Duration) (int64, error) {
	k := c.prefix + ":" + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
