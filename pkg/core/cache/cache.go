// Package cache provides the single (key, ttl) -> value | recompute contract
// used for benchmark and sentiment lookups. Entries are read-only snapshots:
// a stale key is recomputed and overwritten whole, never mutated in place.
// Recomputation is idempotent, so concurrent recomputes of the same key are
// harmless and the last write wins.
package cache

import (
	"fmt"
	"sync"
	"time"
)

type snapshot struct {
	value   interface{}
	expires time.Time
}

// TTLCache is a small in-process cache with a single expiry policy.
type TTLCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]snapshot
	now     func() time.Time
}

// New returns a TTLCache whose entries expire after ttl.
func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		entries: make(map[string]snapshot),
		now:     time.Now,
	}
}

// GetOrCompute returns the cached value for key, recomputing it when missing
// or stale. Errors from compute are returned without populating the cache.
func (c *TTLCache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expires) {
		return entry.value, nil
	}

	// Compute outside the lock: recomputation is idempotent by contract.
	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = snapshot{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return value, nil
}

// Key builds the canonical cache key for benchmark/sentiment lookups.
func Key(parts ...string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "|"
		}
		key += p
	}
	return key
}

// Len reports the number of entries, including stale ones.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// String describes the cache for debug logs.
func (c *TTLCache) String() string {
	return fmt.Sprintf("TTLCache{ttl=%s, entries=%d}", c.ttl, c.Len())
}
