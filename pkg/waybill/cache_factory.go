package waybill

import (
	"context"
	"fmt"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/internal/storage"
)

// CacheBackend selects the persistent tier implementation.
type CacheBackend string

const (
	// CacheBackendStore persists entries in the local key-value store.
	CacheBackendStore CacheBackend = "store"

	// CacheBackendNATS persists entries in a shared NATS JetStream KV bucket.
	CacheBackendNATS CacheBackend = "nats"

	// CacheBackendNone disables the persistent tier.
	CacheBackendNone CacheBackend = "none"
)

// CacheConfig configures both tiers.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool

	// MemorySize bounds the memory tier; defaults to a sensible size.
	MemorySize int

	// Backend selects the persistent tier; defaults to CacheBackendStore.
	Backend CacheBackend

	// NATS configures the NATS backend; required for CacheBackendNATS.
	NATS *NATSKVConfig
}

// DefaultCacheConfig returns the default two-tier configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		MemorySize: constants.DefaultCacheSize,
		Backend:    CacheBackendStore,
	}
}

// NewCacheManagerFromConfig builds the cache manager for a client. store
// backs the CacheBackendStore persistent tier.
func NewCacheManagerFromConfig(config *CacheConfig, store storage.Store) (*CacheManager, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	if config.Disabled {
		return NewCacheManager(NewNoOpCache(), NewNoOpCache()), nil
	}

	size := config.MemorySize
	if size <= 0 {
		size = constants.DefaultCacheSize
	}

	memory := NewMemoryCache(size)

	var (
		persistent Cache
		err        error
	)

	switch config.Backend {
	case CacheBackendStore, "":
		persistent = NewStoreCache(store)

	case CacheBackendNATS:
		persistent, err = NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, fmt.Errorf("building NATS cache backend: %w", err)
		}

	case CacheBackendNone:
		persistent = NewNoOpCache()

	default:
		return nil, fmt.Errorf("unsupported cache backend %q", config.Backend)
	}

	return NewCacheManager(memory, persistent), nil
}

// NoOpCache is a disabled cache tier.
type NoOpCache struct{}

// NewNoOpCache creates a cache tier that stores nothing.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always reports false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// Cleanup does nothing.
func (c *NoOpCache) Cleanup() {}
