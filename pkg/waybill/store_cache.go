package waybill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/internal/storage"
)

// StoreCache is the persistent tier: entries survive process restarts in the
// key-value store until evicted or swept. Every key it writes carries the
// cache namespace prefix, so Clear never disturbs unrelated persisted state
// such as credentials.
type StoreCache struct {
	store storage.Store
}

// NewStoreCache creates a persistent cache tier over the given store.
func NewStoreCache(store storage.Store) *StoreCache {
	return &StoreCache{store: store}
}

func (c *StoreCache) storeKey(key string) string {
	return constants.CacheKeyPrefix + key
}

// Get returns the entry for key, evicting it if expired or undecodable.
func (c *StoreCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	raw, ok := c.store.Get(c.storeKey(key))
	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	var entry CacheEntry

	err := json.Unmarshal([]byte(raw), &entry)
	if err != nil {
		_ = c.store.Remove(c.storeKey(key))

		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		_ = c.store.Remove(c.storeKey(key))

		return nil, ErrCacheEntryExpired
	}

	return &entry, nil
}

// Set stores an entry under key.
func (c *StoreCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	err = c.store.Set(c.storeKey(key), string(raw))
	if err != nil {
		return fmt.Errorf("persisting cache entry: %w", err)
	}

	return nil
}

// Delete removes the entry for key.
func (c *StoreCache) Delete(ctx context.Context, key string) error {
	err := c.store.Remove(c.storeKey(key))
	if err != nil {
		return fmt.Errorf("removing cache entry: %w", err)
	}

	return nil
}

// Clear removes every namespaced entry, leaving other persisted keys alone.
func (c *StoreCache) Clear(ctx context.Context) error {
	for _, key := range c.store.Keys() {
		if strings.HasPrefix(key, constants.CacheKeyPrefix) {
			err := c.store.Remove(key)
			if err != nil {
				return fmt.Errorf("clearing cache entry %q: %w", key, err)
			}
		}
	}

	return nil
}

// Has reports whether a fresh entry exists for key.
func (c *StoreCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Cleanup evicts all expired namespaced entries.
func (c *StoreCache) Cleanup() {
	now := time.Now()

	for _, key := range c.store.Keys() {
		if !strings.HasPrefix(key, constants.CacheKeyPrefix) {
			continue
		}

		raw, ok := c.store.Get(key)
		if !ok {
			continue
		}

		var entry CacheEntry

		err := json.Unmarshal([]byte(raw), &entry)
		if err != nil || entry.Expired(now) {
			_ = c.store.Remove(key)
		}
	}
}
