package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a minimum spacing between consecutive geocode lookups,
// measured from the start of one lookup to the start of the next. The
// public Nominatim usage policy caps clients at one request per second, so
// lookups are issued strictly serially with this gap between them.
type Limiter struct {
	mu          sync.Mutex
	lastStart   time.Time
	minInterval time.Duration
}

// New creates a limiter that enforces minInterval between consecutive
// lookup starts. A non-positive interval disables waiting.
func New(minInterval time.Duration) *Limiter {
	return &Limiter{minInterval: minInterval}
}

// Wait blocks until enough time has passed since the previous lookup
// started, then records the new start time. Returns an error only if the
// context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.minInterval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()

	if l.lastStart.IsZero() {
		// First lookup — no wait needed.
		l.lastStart = now
		l.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(l.lastStart)
	if elapsed >= l.minInterval {
		// Enough time has passed — proceed immediately.
		l.lastStart = now
		l.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := l.minInterval - elapsed
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait: %w", ctx.Err())
	case <-time.After(remaining):
	}

	l.mu.Lock()
	l.lastStart = time.Now()
	l.mu.Unlock()

	return nil
}
