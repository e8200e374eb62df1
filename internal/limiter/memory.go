package limiter

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	fails        int
	blockedUntil time.Time
	updatedAt    time.Time
}

// Memory is an in-process limiter with a sliding failure window and lockout.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]*entry
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time
}

// NewMemory constructs an in-memory limiter. Failures older than window
// restart the count; reaching maxFails blocks the key for blockFor.
func NewMemory(window time.Duration, maxFails int, blockFor time.Duration) *Memory {
	return NewMemoryWithClock(window, maxFails, blockFor, time.Now)
}

// NewMemoryWithClock is NewMemory with an injectable clock.
func NewMemoryWithClock(window time.Duration, maxFails int, blockFor time.Duration, now func() time.Time) *Memory {
	if maxFails <= 0 {
		maxFails = 5
	}
	return &Memory{
		entries:  make(map[string]*entry),
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		now:      now,
	}
}

// keys are case-insensitive so "A@x.io" and "a@x.io" share a counter.
func normKey(k string) string { return strings.ToLower(strings.TrimSpace(k)) }

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *Memory) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[normKey(key)]
	if !ok {
		return true, 0, nil
	}
	now := l.now()
	if e.blockedUntil.After(now) {
		return false, e.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success resets counters for key.
func (l *Memory) Success(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	delete(l.entries, normKey(key))
	l.mu.Unlock()
	return nil
}

// Failure records a failed attempt; may set a block until a future time.
func (l *Memory) Failure(ctx context.Context, key string) (bool, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	k := normKey(key)
	e, ok := l.entries[k]
	switch {
	case !ok:
		e = &entry{fails: 1}
		l.entries[k] = e
	case now.Sub(e.updatedAt) > l.window:
		e.fails = 1
	default:
		e.fails++
	}
	e.updatedAt = now

	if e.fails >= l.maxFails {
		e.blockedUntil = now.Add(l.blockFor)
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
