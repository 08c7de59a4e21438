// Package cache provides an in-memory response cache keyed by a content
// fingerprint. Entries live for the process lifetime; there is no TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

const fingerprintLen = 20

// Fingerprint returns a stable identifier for a serialized request payload.
// Collision resistance is not required, stability under repeated
// serialization is.
func Fingerprint(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Cache maps request fingerprints to previously obtained completion text.
// It is safe for concurrent use by multiple requests.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]string
	maxEntries int
}

// New returns a cache bounded to maxEntries. A bound of 0 means unbounded,
// which is acceptable only for short-lived interactive processes.
func New(maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]string),
		maxEntries: maxEntries,
	}
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.entries[key]
	return val, ok
}

// Put stores a response under key. When the cache is bounded and full, an
// arbitrary entry is evicted to make room.
func (c *Cache) Put(key, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = response
}

// Len reports the number of cached responses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
