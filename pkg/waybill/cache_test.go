package waybill

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshEntry(data string) *CacheEntry {
	return &CacheEntry{
		Data:     []byte(data),
		StoredAt: time.Now(),
		TTL:      time.Minute,
	}
}

func staleEntry(data string) *CacheEntry {
	return &CacheEntry{
		Data:     []byte(data),
		StoredAt: time.Now().Add(-time.Hour),
		TTL:      time.Minute,
	}
}

func TestCacheEntry_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	entry := &CacheEntry{StoredAt: now, TTL: time.Minute}

	assert.False(t, entry.Expired(now))
	assert.False(t, entry.Expired(now.Add(time.Minute)))
	assert.True(t, entry.Expired(now.Add(time.Minute+time.Nanosecond)))
}

func TestMemoryCache_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache(16)

	_, err := cache.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrCacheKeyNotFound)

	require.NoError(t, cache.Set(ctx, "k", freshEntry("payload")))

	entry, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), entry.Data)
	assert.True(t, cache.Has(ctx, "k"))
}

func TestMemoryCache_ExpiredEntryEvictedOnRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache(16)

	require.NoError(t, cache.Set(ctx, "k", staleEntry("payload")))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheEntryExpired)

	// The expired read evicted the entry, so the next read is a plain miss.
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheKeyNotFound)
	assert.False(t, cache.Has(ctx, "k"))
}

func TestMemoryCache_BoundedByLRU(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache(2)

	require.NoError(t, cache.Set(ctx, "a", freshEntry("a")))
	require.NoError(t, cache.Set(ctx, "b", freshEntry("b")))
	require.NoError(t, cache.Set(ctx, "c", freshEntry("c")))

	_, err := cache.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheKeyNotFound)
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache(16)

	require.NoError(t, cache.Set(ctx, "a", freshEntry("a")))
	require.NoError(t, cache.Set(ctx, "b", freshEntry("b")))

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "b"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache(16)

	require.NoError(t, cache.Set(ctx, "fresh", freshEntry("fresh")))

	for i := 0; i < 4; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("stale-%d", i), staleEntry("old")))
	}

	cache.Cleanup()

	assert.True(t, cache.Has(ctx, "fresh"))

	for i := 0; i < 4; i++ {
		_, err := cache.Get(ctx, fmt.Sprintf("stale-%d", i))
		assert.ErrorIs(t, err, ErrCacheKeyNotFound)
	}
}
