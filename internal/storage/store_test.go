package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	t.Parallel()

	store := NewMemStore()

	_, ok := store.Get("absent")
	assert.False(t, ok)

	require.NoError(t, store.Set("b", "2"))
	require.NoError(t, store.Set("a", "1"))

	value, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", value)

	assert.Equal(t, []string{"a", "b"}, store.Keys())

	require.NoError(t, store.Remove("a"))
	_, ok = store.Get("a")
	assert.False(t, ok)
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.yml")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("access_token", "tok-1"))
	require.NoError(t, store.Set("refresh_token", "ref-1"))

	value, ok := store.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "tok-1", value)

	assert.Equal(t, []string{"access_token", "refresh_token"}, store.Keys())
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "store.yml")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	value, ok := reopened.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestFileStore_RemovePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.yml")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Remove("k"))

	// Removing an absent key is a no-op.
	require.NoError(t, store.Remove("k"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok := reopened.Get("k")
	assert.False(t, ok)
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "never-written.yml")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())

	// No file gets created until the first write.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_RejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.yml")
	require.NoError(t, os.WriteFile(path, []byte("\tnot yaml"), 0o600))

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing store file")
}
