// Package ratelimit implements best-effort fixed-window rate limiting for
// abuse mitigation. The limiter is constructed once per process and injected
// into the HTTP layer; it is not a correctness mechanism. The in-memory
// implementation resets on restart, the Redis one shares the window across
// instances.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether one more event is allowed for the key in the
// current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		// Opening a fresh window is the cheap moment to drop every other
		// expired window, keeping the map bounded by active clients.
		for k, v := range l.entries {
			if now.After(v.resetAt) {
				delete(l.entries, k)
			}
		}
		l.entries[key] = memoryEntry{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	e.count++
	l.entries[key] = e
	return e.count <= l.limit, nil
}
