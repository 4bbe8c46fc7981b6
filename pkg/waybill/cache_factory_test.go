package waybill

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/internal/storage"
)

func TestDefaultCacheConfig(t *testing.T) {
	t.Parallel()

	config := DefaultCacheConfig()
	assert.False(t, config.Disabled)
	assert.Equal(t, constants.DefaultCacheSize, config.MemorySize)
	assert.Equal(t, CacheBackendStore, config.Backend)
}

func TestNewCacheManagerFromConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemStore()

	t.Run("nil config uses defaults", func(t *testing.T) {
		manager, err := NewCacheManagerFromConfig(nil, store)
		require.NoError(t, err)

		params := url.Values{}
		require.NoError(t, manager.Set(ctx, "/p", params, []byte("x"), nil))

		_, ok := manager.Get(ctx, "/p", params)
		assert.True(t, ok)
	})

	t.Run("store backend persists through the store", func(t *testing.T) {
		backing := storage.NewMemStore()
		manager, err := NewCacheManagerFromConfig(&CacheConfig{Backend: CacheBackendStore}, backing)
		require.NoError(t, err)

		params := url.Values{}
		require.NoError(t, manager.Set(ctx, "/p", params, []byte("x"), nil))
		assert.NotEmpty(t, backing.Keys())
	})

	t.Run("disabled stores nothing", func(t *testing.T) {
		manager, err := NewCacheManagerFromConfig(&CacheConfig{Disabled: true}, store)
		require.NoError(t, err)

		params := url.Values{}
		require.NoError(t, manager.Set(ctx, "/p", params, []byte("x"), nil))

		_, ok := manager.Get(ctx, "/p", params)
		assert.False(t, ok)
	})

	t.Run("none backend keeps only the memory tier", func(t *testing.T) {
		backing := storage.NewMemStore()
		manager, err := NewCacheManagerFromConfig(&CacheConfig{Backend: CacheBackendNone}, backing)
		require.NoError(t, err)

		params := url.Values{}
		require.NoError(t, manager.Set(ctx, "/p", params, []byte("x"), nil))

		_, ok := manager.Get(ctx, "/p", params)
		assert.True(t, ok)
		assert.Empty(t, backing.Keys())
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, err := NewCacheManagerFromConfig(&CacheConfig{Backend: "bolt"}, store)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported cache backend "bolt"`)
	})

	t.Run("nats backend requires configuration", func(t *testing.T) {
		_, err := NewCacheManagerFromConfig(&CacheConfig{Backend: CacheBackendNATS}, store)
		require.Error(t, err)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewNoOpCache()

	require.NoError(t, cache.Set(ctx, "k", freshEntry("x")))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "k"))

	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Clear(ctx))
	cache.Cleanup()
}
