package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/internal/storage"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

func TestTokenStore_Credentials(t *testing.T) {
	t.Parallel()

	store := NewTokenStore(storage.NewMemStore())

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
	assert.False(t, store.IsLoggedIn())

	require.NoError(t, store.SetCredentials(waybill.Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	assert.Equal(t, "access-1", store.AccessToken())
	assert.Equal(t, "refresh-1", store.RefreshToken())
	assert.True(t, store.IsLoggedIn())
}

func TestTokenStore_UserInfo(t *testing.T) {
	t.Parallel()

	store := NewTokenStore(storage.NewMemStore())

	_, ok := store.UserInfo()
	assert.False(t, ok)

	require.NoError(t, store.SetUserInfo(&waybill.UserInfo{
		UserID:   7,
		Nickname: "driver",
	}))

	info, ok := store.UserInfo()
	require.True(t, ok)
	assert.Equal(t, int64(7), info.UserID)
	assert.Equal(t, "driver", info.Nickname)
}

func TestTokenStore_OpenID(t *testing.T) {
	t.Parallel()

	store := NewTokenStore(storage.NewMemStore())

	assert.Empty(t, store.OpenID())

	require.NoError(t, store.SetOpenID("open-1"))
	assert.Equal(t, "open-1", store.OpenID())
}

func TestTokenStore_Clear(t *testing.T) {
	t.Parallel()

	backing := storage.NewMemStore()
	store := NewTokenStore(backing)

	require.NoError(t, store.SetCredentials(waybill.Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	require.NoError(t, store.SetUserInfo(&waybill.UserInfo{UserID: 7}))
	require.NoError(t, store.SetOpenID("open-1"))

	// Cached payloads in the same store must survive a logout.
	require.NoError(t, backing.Set(constants.CacheKeyPrefix+"abc", "payload"))

	store.Clear()

	assert.False(t, store.IsLoggedIn())
	assert.Empty(t, store.RefreshToken())
	assert.Empty(t, store.OpenID())

	_, ok := store.UserInfo()
	assert.False(t, ok)

	_, ok = backing.Get(constants.CacheKeyPrefix + "abc")
	assert.True(t, ok)
}

func TestTokenStore_CorruptUserInfo(t *testing.T) {
	t.Parallel()

	backing := storage.NewMemStore()
	store := NewTokenStore(backing)

	require.NoError(t, backing.Set(constants.UserInfoKey, "not json"))

	_, ok := store.UserInfo()
	assert.False(t, ok)
}
