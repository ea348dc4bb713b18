package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	current := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Hour)
	l.now = func() time.Time { return current }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		assert.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	assert.NoError(t, err)
	assert.False(t, ok, "fourth request in the window must be limited")

	// other keys are independent
	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok)

	// window expiry resets the counter
	current = current.Add(time.Hour + time.Second)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
}

func TestMemoryLimiter_EvictsExpiredEntries(t *testing.T) {
	current := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(10, time.Hour)
	l.now = func() time.Time { return current }

	ctx := context.Background()
	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		_, err := l.Allow(ctx, ip)
		assert.NoError(t, err)
	}
	assert.Len(t, l.entries, 3)

	// once every window has lapsed, the next request sweeps the dead ones
	current = current.Add(2 * time.Hour)
	ok, err := l.Allow(ctx, "10.0.0.9")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, l.entries, 1)
}
