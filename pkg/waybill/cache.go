package waybill

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheEntry is one cached payload with its expiry policy. An entry is valid
// iff now - StoredAt <= TTL; readers treat anything else as absent.
type CacheEntry struct {
	Data     []byte        `json:"data"`
	StoredAt time.Time     `json:"storedAt"`
	TTL      time.Duration `json:"ttl"`
}

// Expired reports whether the entry is past its TTL at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.StoredAt) > e.TTL
}

// Cache is one storage tier. Implementations self-evict expired entries on
// read and must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool

	// Cleanup evicts every expired entry. Idempotent and safe to call at any
	// time; intended for periodic invocation by an external scheduler.
	Cleanup()
}

// MemoryCache is the process-lifetime tier, bounded by an LRU so a long
// session cannot grow it without limit.
type MemoryCache struct {
	entries *lru.Cache[string, *CacheEntry]
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}

	// Error is only possible for a non-positive size, which is guarded above.
	entries, _ := lru.New[string, *CacheEntry](maxSize)

	return &MemoryCache{entries: entries}
}

// Get returns the entry for key, evicting and reporting ErrCacheEntryExpired
// if it is past its TTL.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if entry.Expired(time.Now()) {
		c.entries.Remove(key)

		return nil, ErrCacheEntryExpired
	}

	return entry, nil
}

// Set stores an entry under key.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.entries.Add(key, entry)

	return nil
}

// Delete removes the entry for key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.entries.Purge()

	return nil
}

// Has reports whether a fresh entry exists for key without promoting it in
// the LRU order.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	entry, ok := c.entries.Peek(key)
	if !ok {
		return false
	}

	return !entry.Expired(time.Now())
}

// Cleanup evicts all expired entries.
func (c *MemoryCache) Cleanup() {
	now := time.Now()

	for _, key := range c.entries.Keys() {
		if entry, ok := c.entries.Peek(key); ok && entry.Expired(now) {
			c.entries.Remove(key)
		}
	}
}
