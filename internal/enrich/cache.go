package enrich

import (
	"sync"
	"time"
)

// LookupCache remembers metadata lookups for a limited time so repeated
// scans of the same shelf do not hammer the search API. Empty results are
// cached like any other; failed lookups are never stored.
type LookupCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	meta    Metadata
	expires time.Time
}

// NewLookupCache creates a cache whose entries expire after ttl.
func NewLookupCache(ttl time.Duration) *LookupCache {
	return &LookupCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached metadata for key, if present and not expired.
func (c *LookupCache) Get(key string) (Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Metadata{}, false
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, key)
		return Metadata{}, false
	}
	return entry.meta, true
}

// Put stores metadata under key.
func (c *LookupCache) Put(key string, meta Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		meta:    meta,
		expires: time.Now().Add(c.ttl),
	}
}

// Len reports the number of stored entries, including expired ones that
// have not been touched since expiring.
func (c *LookupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
