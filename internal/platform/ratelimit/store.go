// Package ratelimit implements a fixed-window request limiter with redis and in-memory counters.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed bool
	// Count は現在のウィンドウ内でのリクエスト数です。
	Count int
	// RetryAfter はウィンドウがリセットされるまでの時間です。Allowed の場合は0。
	RetryAfter time.Duration
}

// Store counts hits per key within a fixed window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}
