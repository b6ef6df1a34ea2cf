// Package cache provides the in-process TTL store used for generated content
// (articles, word images) that is not worth persisting.
//
// Expiry is lazy: every read first removes all expired entries. There is no
// background eviction, so a cache nobody reads keeps its expired entries.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a concurrency-safe map whose entries expire after a per-entry TTL.
// Concurrent writers to the same key are not arbitrated: last write wins.
type TTL[K comparable, V any] struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	entries map[K]entry[V]
}

// New creates an empty cache. A nil clock means the real clock.
func New[K comparable, V any](clock clockwork.Clock) *TTL[K, V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TTL[K, V]{
		clock:   clock,
		entries: make(map[K]entry[V]),
	}
}

// Get sweeps expired entries, then looks up key.
// ok is false on a miss, which callers treat as "regenerate".
func (c *TTL[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(c.clock.Now())

	e, found := c.entries[key]
	if !found {
		return value, false
	}
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl is ignored.
func (c *TTL[K, V]) Set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, expiresAt: c.clock.Now().Add(ttl)}
}

// SweepExpired removes every expired entry and returns how many were removed.
func (c *TTL[K, V]) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(c.clock.Now())
}

// Len returns the number of stored entries, expired ones included.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// An entry is expired once now reaches expiresAt.
func (c *TTL[K, V]) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
