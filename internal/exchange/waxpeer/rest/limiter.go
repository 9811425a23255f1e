package rest

import (
	"sync"
	"time"
)

// windowLimiter admits at most limit calls in any sliding window.
type windowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	hits   []time.Time
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	return &windowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make([]time.Time, 0, limit),
	}
}

func (l *windowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	expired := 0
	for expired < len(l.hits) && !l.hits[expired].After(cutoff) {
		expired++
	}
	if expired > 0 {
		l.hits = append(l.hits[:0], l.hits[expired:]...)
	}

	if len(l.hits) >= l.limit {
		return false
	}
	l.hits = append(l.hits, now)
	return true
}
