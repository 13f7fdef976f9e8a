package arbiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces upstream calls by a minimum delay. The lock is held
// across wait-then-stamp so concurrent callers cannot read the same stale
// timestamp.
type RateLimiter struct {
	mu       sync.Mutex
	last     time.Time
	minDelay time.Duration
	now      func() time.Time
}

func NewRateLimiter(minDelay time.Duration) *RateLimiter {
	return &RateLimiter{minDelay: minDelay, now: time.Now}
}

// Wait blocks until the next call may start and records it as started.
// A cancelled wait records nothing.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.last.IsZero() {
		if d := r.minDelay - r.now().Sub(r.last); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	r.last = r.now()
	return nil
}

// Last returns the start time of the most recent call.
func (r *RateLimiter) Last() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
