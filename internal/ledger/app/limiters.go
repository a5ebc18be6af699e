package app

import (
	"fmt"

	httpapi "github.com/aussiebroadwan/tabledger/internal/ledger/http"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/ratelimit"
	"github.com/redis/go-redis/v9"
)

// BuildLimiters creates one limiter per profile on the configured backend.
// The store and redis backends share their counters across replicas; the
// memory backend does not.
func BuildLimiters(cfg Config, st store.Store, rdb redis.Cmdable) (httpapi.Limiters, error) {
	var counter ratelimit.Counter
	switch cfg.RateLimitBackend {
	case RateLimitMemory:
	case RateLimitStore:
		counter = store.NewRateLimitCounter(st, cfg.StoreTimeout)
	case RateLimitRedis:
		if rdb == nil {
			return httpapi.Limiters{}, fmt.Errorf("redis rate limit backend needs a redis client")
		}
		counter = ratelimit.NewRedisCounter(rdb, "tabledger:ratelimit")
	default:
		return httpapi.Limiters{}, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimitBackend)
	}

	build := func(name string, profile httpx.RateLimitConfig) (ratelimit.Limiter, error) {
		if counter == nil {
			return ratelimit.NewTokenBucket(profile.Limiter())
		}
		return ratelimit.NewFixedWindow(profile.Limiter(), counter, ratelimit.WithPrefix(name))
	}

	var l httpapi.Limiters
	var err error
	if l.Strict, err = build("strict", cfg.StrictLimit); err != nil {
		return l, fmt.Errorf("strict limiter: %w", err)
	}
	if l.Moderate, err = build("moderate", cfg.ModerateLimit); err != nil {
		return l, fmt.Errorf("moderate limiter: %w", err)
	}
	if l.Lenient, err = build("lenient", cfg.LenientLimit); err != nil {
		return l, fmt.Errorf("lenient limiter: %w", err)
	}
	return l, nil
}
