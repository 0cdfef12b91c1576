// Package cache provides a process-local, in-memory key/value store with
// per-entry expiry. It is a best-effort performance optimization, never a
// source of truth: callers must treat every miss as a signal to recompute
// from the authoritative store.
//
// The cache is explicitly constructed and injected by the composition root.
// In a multi-instance deployment each process holds its own cache, so cached
// values (e.g. unread notification counts) may be stale across instances for
// up to their TTL. This is a known, accepted limitation.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps string keys to values with an absolute expiry instant.
// All methods are safe for concurrent use.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	now     func() time.Time
}

// New creates an empty cache using the wall clock.
func New[V any]() *Cache[V] {
	return NewWithClock[V](time.Now)
}

// NewWithClock creates an empty cache with an injectable clock.
// Used by tests to control expiry deterministically.
func NewWithClock[V any](now func() time.Time) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     now,
	}
}

// Get returns the value for key if it has not expired. An expired entry is
// evicted on access and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed the entry.
		if cur, still := c.entries[key]; still && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		var zero V
		return zero, false
	}

	return e.value, true
}

// Set stores value under key with the given time to live,
// unconditionally overwriting any previous entry.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Delete removes the entry for key regardless of its remaining TTL.
// A subsequent Get is guaranteed to miss.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Sweep removes every expired entry and returns how many were evicted.
// It bounds worst-case memory growth from keys that are never read again;
// the jobs package invokes it on a fixed interval.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
