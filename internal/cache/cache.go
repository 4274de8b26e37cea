// Package cache provides a thread-safe, size-bounded cache with per-entry
// expiration.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is an LRU cache whose entries expire after a fixed TTL.
type Cache[K comparable, V any] struct {
	lru    *expirable.LRU[K, V]
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats contains cache statistics.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// New creates a cache holding at most size entries, each living for ttl.
// A size below 1 returns nil; a nil *Cache is a valid cache that never hits.
func New[K comparable, V any](size int, ttl time.Duration) *Cache[K, V] {
	if size < 1 {
		return nil
	}
	return &Cache[K, V]{lru: expirable.NewLRU[K, V](size, nil, ttl)}
}

// Get retrieves a value. Expired entries are misses.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value, evicting the least recently used entry when full.
func (c *Cache[K, V]) Set(key K, value V) {
	if c == nil {
		return
	}
	c.lru.Add(key, value)
}

// Invalidate removes every entry.
func (c *Cache[K, V]) Invalidate() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Stats returns hit and miss counts.
func (c *Cache[K, V]) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}
