package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count     int
	lastReset time.Time
}

// MemoryStore keeps counters in process memory. Counters are not shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryStore は新しいMemoryStoreのインスタンスを生成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window), now: time.Now}
}

// Allow はウィンドウ内の上限に達しているかを確認し、カウントを1つ進めます。
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, interval time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= interval {
		w = &window{lastReset: now}
		s.windows[key] = w
		s.sweep(now, interval)
	}

	w.count++
	if w.count > limit {
		return Result{Count: w.count, RetryAfter: interval - now.Sub(w.lastReset)}, nil
	}
	return Result{Allowed: true, Count: w.count}, nil
}

// sweep drops windows that have already expired. Caller holds mu.
func (s *MemoryStore) sweep(now time.Time, interval time.Duration) {
	for k, w := range s.windows {
		if now.Sub(w.lastReset) >= interval {
			delete(s.windows, k)
		}
	}
}
