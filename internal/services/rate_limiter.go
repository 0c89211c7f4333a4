package services

import (
	"math"
	"sync"
	"time"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter implements fixed-window rate limiting keyed by client
// identity (normally the remote IP). State is process-local and
// in-memory; a single-instance deployment is assumed.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*rateWindow
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a rate limiter allowing maxRequests per
// identity within each fixed window
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*rateWindow),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow records a request for the identity and reports whether it is
// within the limit. When denied, retryAfter is the number of whole
// seconds until the identity's window resets, rounded up.
func (rl *RateLimiter) Allow(identity string) (allowed bool, retryAfter int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, exists := rl.windows[identity]
	if !exists || now.After(w.resetAt) {
		rl.windows[identity] = &rateWindow{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}

	if w.count < rl.maxRequests {
		w.count++
		return true, 0
	}

	return false, int(math.Ceil(w.resetAt.Sub(now).Seconds()))
}

// SweepExpired drops windows whose reset time has passed, bounding
// growth across distinct identities. Safe to call from a background
// job at any cadence.
func (rl *RateLimiter) SweepExpired() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	removed := 0
	for identity, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, identity)
			removed++
		}
	}
	return removed
}

// Stats returns limiter configuration and occupancy for diagnostics
func (rl *RateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"tracked_identities": len(rl.windows),
		"max_requests":       rl.maxRequests,
		"window":             rl.window.String(),
	}
}
