package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is an in-memory key/value store where every entry carries its own
// expiry. An entry whose expiry has passed is treated as absent and removed
// on the next read. There is no size bound.
type TTL[V any] struct {
	mu    sync.Mutex
	items map[string]entry[V]
	now   func() time.Time
}

func NewTTL[V any]() *TTL[V] {
	return &TTL[V]{items: make(map[string]entry[V]), now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (c *TTL[V]) WithClock(now func() time.Time) *TTL[V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Purge drops every expired entry and returns how many were removed.
func (c *TTL[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Len counts stored entries, including expired ones not yet purged.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
