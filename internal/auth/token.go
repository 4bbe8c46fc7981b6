// Package auth implements the session layer: credential persistence and the
// login, registration, refresh, and logout exchanges.
package auth

import (
	"encoding/json"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/internal/storage"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// TokenStore persists the credential pair and the user profile through the
// key-value store. Safe for concurrent use; the underlying store handles its
// own locking, TokenStore only groups the related keys.
type TokenStore struct {
	store storage.Store
}

// NewTokenStore creates a token store over the given backing store.
func NewTokenStore(store storage.Store) *TokenStore {
	return &TokenStore{store: store}
}

// AccessToken returns the stored access token, or "" when logged out.
func (s *TokenStore) AccessToken() string {
	token, _ := s.store.Get(constants.AccessTokenKey)

	return token
}

// RefreshToken returns the stored refresh token, or "".
func (s *TokenStore) RefreshToken() string {
	token, _ := s.store.Get(constants.RefreshTokenKey)

	return token
}

// SetCredentials persists the token pair.
func (s *TokenStore) SetCredentials(creds waybill.Credentials) error {
	err := s.store.Set(constants.AccessTokenKey, creds.AccessToken)
	if err != nil {
		return err
	}

	return s.store.Set(constants.RefreshTokenKey, creds.RefreshToken)
}

// OpenID returns the open identifier stashed by the last login attempt, or
// "". It outlives the process so a registration follow-up can run from a
// fresh client.
func (s *TokenStore) OpenID() string {
	openID, _ := s.store.Get(constants.OpenIDKey)

	return openID
}

// SetOpenID persists the open identifier for the registration follow-up.
func (s *TokenStore) SetOpenID(openID string) error {
	return s.store.Set(constants.OpenIDKey, openID)
}

// UserInfo returns the stored user profile, if any.
func (s *TokenStore) UserInfo() (*waybill.UserInfo, bool) {
	raw, ok := s.store.Get(constants.UserInfoKey)
	if !ok || raw == "" {
		return nil, false
	}

	var info waybill.UserInfo

	err := json.Unmarshal([]byte(raw), &info)
	if err != nil {
		return nil, false
	}

	return &info, true
}

// SetUserInfo persists the user profile.
func (s *TokenStore) SetUserInfo(info *waybill.UserInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}

	return s.store.Set(constants.UserInfoKey, string(raw))
}

// Clear removes credentials, the user profile, and the open identifier.
// Cached payloads are not touched; their keys live in a separate namespace.
func (s *TokenStore) Clear() {
	_ = s.store.Remove(constants.AccessTokenKey)
	_ = s.store.Remove(constants.RefreshTokenKey)
	_ = s.store.Remove(constants.UserInfoKey)
	_ = s.store.Remove(constants.OpenIDKey)
}

// IsLoggedIn reports whether an access token is present. Token validity is
// the server's call; a stale token surfaces as a 401 and goes through the
// refresh protocol.
func (s *TokenStore) IsLoggedIn() bool {
	return s.AccessToken() != ""
}
