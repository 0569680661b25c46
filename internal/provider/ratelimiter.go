package provider

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a provider's local call budget is spent.
var ErrRateLimited = errors.New("rate limited")

// rateLimiter is a token bucket over an upstream quota. It never blocks:
// a caller without a token fails fast so the next tier can serve.
type rateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
	now            func() time.Time
}

// newRateLimiter allows maxTokens calls, refilling one per refillInterval.
func newRateLimiter(maxTokens int, refillInterval time.Duration) *rateLimiter {
	return &rateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
		now:            time.Now,
	}
}

// Allow takes a token if one is available.
func (r *rateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()
	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}

func (r *rateLimiter) refill() {
	elapsed := r.now().Sub(r.lastRefill)
	newTokens := int(elapsed / r.refillInterval)
	if newTokens > 0 {
		r.tokens += newTokens
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(newTokens) * r.refillInterval)
	}
}
