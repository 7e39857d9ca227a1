package server

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window counter keyed by caller identity (org id
// or client IP). Windows reset lazily on the next Allow call, and stale
// entries are pruned opportunistically so the map does not grow without
// bound on churny clients.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	windows map[string]*callerWindow
}

type callerWindow struct {
	startedAt time.Time
	hits      int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*callerWindow),
	}
}

// Allow reports whether the caller identified by key may proceed. An
// empty key is always rejected rather than sharing one global bucket.
func (r *rateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.windows[key]
	if current == nil || now.Sub(current.startedAt) > r.window {
		current = &callerWindow{startedAt: now}
		r.windows[key] = current
		r.pruneLocked(now)
	}
	if current.hits >= r.limit {
		return false
	}
	current.hits++
	return true
}

// pruneLocked drops windows that expired more than one full window ago.
// Called with r.mu held.
func (r *rateLimiter) pruneLocked(now time.Time) {
	for key, w := range r.windows {
		if now.Sub(w.startedAt) > 2*r.window {
			delete(r.windows, key)
		}
	}
}
