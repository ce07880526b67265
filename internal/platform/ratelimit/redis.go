package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps counters in redis so every replica shares the same window.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a RedisStore. prefix が空の場合は "ratelimit" を使用します。
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

// Allow increments the counter for key; the first hit of a window sets its expiry.
func (s *RedisStore) Allow(ctx context.Context, k string, limit int, window time.Duration) (Result, error) {
	key := s.key(k)

	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return Result{}, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	if n <= int64(limit) {
		return Result{Allowed: true, Count: int(n)}, nil
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return Result{}, fmt.Errorf("pttl %s: %w", key, err)
	}
	if ttl <= 0 {
		// 期限の無いキーは固まってしまうので張り直す
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return Result{}, fmt.Errorf("expire %s: %w", key, err)
		}
		ttl = window
	}
	return Result{Count: int(n), RetryAfter: ttl}, nil
}
