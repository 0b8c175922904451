package repo

import (
	"sync"
	"time"
)

// RateLimit is a sliding-window request budget for the upstream provider.
// It is the only mutable state shared between concurrent board builds.
type RateLimit struct {
	mu       sync.Mutex
	window   time.Duration
	maxReqs  int
	requests []time.Time // timestamps of recent requests, oldest first
	now      func() time.Time
}

// NewRateLimit creates a budget of maxReqs requests per window.
// Example: NewRateLimit(10, time.Hour) allows 10 upstream calls per hour.
func NewRateLimit(maxReqs int, window time.Duration) *RateLimit {
	return &RateLimit{
		window:  window,
		maxReqs: maxReqs,
		now:     time.Now,
	}
}

// prune drops timestamps older than the window.
// Must be called with mu held.
func (r *RateLimit) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	i := 0
	for i < len(r.requests) && r.requests[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		r.requests = r.requests[i:]
	}
}

// Take records a request and returns true if the budget allows one,
// otherwise it returns false and records nothing.
func (r *RateLimit) Take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.prune(now)
	if len(r.requests) >= r.maxReqs {
		return false
	}
	r.requests = append(r.requests, now)
	return true
}

// WaitDuration returns how long until the next request fits the budget.
// Returns 0 if a request can be made immediately.
func (r *RateLimit) WaitDuration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.prune(now)
	if len(r.requests) < r.maxReqs || len(r.requests) == 0 {
		return 0
	}
	// The oldest request in the window determines when the next slot opens.
	return max(r.requests[0].Add(r.window).Sub(now), 0)
}
