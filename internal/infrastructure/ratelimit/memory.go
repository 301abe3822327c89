package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps per-key windows in process memory. Intended for
// single-replica deployments; semantics match RedisLimiter exactly.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	points  int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(points int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*memoryWindow),
		points:  points,
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, clientKey string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.windows) > maxTrackedKeys {
		l.purgeExpired(now)
	}

	w, ok := l.windows[clientKey]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(l.window)}
		l.windows[clientKey] = w
	}

	w.count++
	if w.count > l.points {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: w.resetAt.Sub(now)}, nil
	}
	return Decision{Allowed: true, Remaining: l.points - w.count}, nil
}

const maxTrackedKeys = 16384

// purgeExpired drops closed windows so one-off client keys cannot grow the
// map without bound. Caller holds the lock.
func (l *MemoryLimiter) purgeExpired(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
