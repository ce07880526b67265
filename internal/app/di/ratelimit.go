// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront_backend/internal/platform/config"
	"storefront_backend/internal/platform/ratelimit"
)

// NewRateLimitStore creates a rate-limit counter store.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process map.
func NewRateLimitStore(rdb *redis.Client) ratelimit.Store {
	if rdb != nil {
		return ratelimit.NewRedisStore(rdb, "ratelimit")
	}
	return ratelimit.NewMemoryStore()
}

// RateLimitConfig builds the limiter settings shared by the limited route groups.
func RateLimitConfig(cfg *config.Config) ratelimit.Config {
	return ratelimit.Config{
		Limit:   cfg.RateLimitMax,
		Window:  cfg.RateLimitWindow,
		Message: fmt.Sprintf("Too many requests, please try again after %s!", humanize(cfg.RateLimitWindow)),
	}
}

// humanize renders whole minutes as "3 minutes" and anything else with Duration.String.
func humanize(d time.Duration) string {
	m := d.Minutes()
	if m >= 1 && m == math.Trunc(m) {
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", int(m))
	}
	return d.String()
}
