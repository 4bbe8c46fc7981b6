package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// Doer is the slice of the request pipeline the coordinator dispatches
// through. Auth exchanges are themselves unauthenticated, so none of them
// re-enter the refresh protocol.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) ([]byte, error)
}

// authResponse is the payload shared by the login and registration
// endpoints. userId == 0 means the account does not exist yet and only the
// open identifier came back.
type authResponse struct {
	OpenID       string            `json:"openId"`
	UserID       int64             `json:"userId"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	UserInfo     *waybill.UserInfo `json:"userInfo"`
}

// Coordinator owns the session lifecycle. It implements transport.Refresher
// and is installed on the pipeline after construction.
type Coordinator struct {
	pipeline Doer
	tokens   *TokenStore
	logger   waybill.Logger

	// refreshing admits a single refresh at a time; concurrent callers get
	// false without waiting.
	refreshing atomic.Bool
}

// NewCoordinator creates the session coordinator.
func NewCoordinator(pipeline Doer, tokens *TokenStore, logger waybill.Logger) *Coordinator {
	return &Coordinator{
		pipeline: pipeline,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login exchanges a platform login code for a session. A known account comes
// back with credentials, which are persisted; an unknown one only yields the
// open identifier, which is stashed for the registration follow-up.
func (c *Coordinator) Login(ctx context.Context, loginCode string, profile waybill.Profile) (*waybill.LoginResult, error) {
	if loginCode == "" {
		return nil, waybill.ErrLoginCodeRequired
	}

	data, err := c.pipeline.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   "/client/auth/wxLogin",
		Body: map[string]string{
			"code":     loginCode,
			"nickname": profile.Nickname,
			"avatar":   profile.Avatar,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp authResponse

	err = json.Unmarshal(data, &resp)
	if err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	if resp.OpenID != "" {
		err = c.tokens.SetOpenID(resp.OpenID)
		if err != nil {
			return nil, fmt.Errorf("persisting open identifier: %w", err)
		}
	}

	return c.settle(&resp)
}

// RegisterWithPhoneCode completes a login that needed phone verification,
// using the open identifier stashed by the preceding Login call. The
// identifier is read from the store, so the login may have happened in an
// earlier process.
func (c *Coordinator) RegisterWithPhoneCode(ctx context.Context, phoneCode string, profile waybill.Profile) (*waybill.LoginResult, error) {
	openID := c.tokens.OpenID()
	if openID == "" {
		return nil, waybill.ErrNoOpenIdentifier
	}

	if phoneCode == "" {
		return nil, waybill.ErrPhoneCodeRequired
	}

	data, err := c.pipeline.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   "/client/auth/wxRegisterByCode",
		Body: map[string]string{
			"openid":   openID,
			"code":     phoneCode,
			"nickname": profile.Nickname,
			"avatar":   profile.Avatar,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp authResponse

	err = json.Unmarshal(data, &resp)
	if err != nil {
		return nil, fmt.Errorf("decoding registration response: %w", err)
	}

	if resp.OpenID == "" {
		resp.OpenID = openID
	}

	return c.settle(&resp)
}

// settle persists credentials when an identity came back and maps the
// response onto a LoginResult.
func (c *Coordinator) settle(resp *authResponse) (*waybill.LoginResult, error) {
	if resp.UserID == 0 {
		return &waybill.LoginResult{
			Status: waybill.StatusNeedsPhoneVerification,
			OpenID: resp.OpenID,
		}, nil
	}

	err := c.tokens.SetCredentials(waybill.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting credentials: %w", err)
	}

	user := resp.UserInfo
	if user == nil {
		user = &waybill.UserInfo{UserID: resp.UserID}
	}

	err = c.tokens.SetUserInfo(user)
	if err != nil {
		return nil, fmt.Errorf("persisting user info: %w", err)
	}

	return &waybill.LoginResult{
		Status: waybill.StatusAuthenticated,
		OpenID: resp.OpenID,
		User:   user,
	}, nil
}

// Refresh renews the token pair with the stored refresh token. A concurrent
// caller gets false immediately; so does any failure. Only a successful
// exchange mutates stored state.
func (c *Coordinator) Refresh(ctx context.Context) bool {
	if !c.refreshing.CompareAndSwap(false, true) {
		return false
	}
	defer c.refreshing.Store(false)

	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		return false
	}

	data, err := c.pipeline.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   "/client/auth/refresh-token",
		Body: map[string]string{
			"refreshToken": refreshToken,
		},
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("token refresh failed", map[string]interface{}{
				"error": err.Error(),
			})
		}

		return false
	}

	var creds waybill.Credentials

	err = json.Unmarshal(data, &creds)
	if err != nil || creds.AccessToken == "" {
		return false
	}

	err = c.tokens.SetCredentials(creds)

	return err == nil
}

// Logout ends the server session best-effort and always clears local state.
func (c *Coordinator) Logout(ctx context.Context) error {
	_, err := c.pipeline.Do(ctx, &transport.Request{
		Method:       http.MethodPost,
		Path:         "/client/auth/logout",
		RequiresAuth: true,
	})
	if err != nil && c.logger != nil {
		c.logger.Debug("logout request failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.tokens.Clear()

	return nil
}

// IsLoggedIn reports whether credentials are stored.
func (c *Coordinator) IsLoggedIn() bool {
	return c.tokens.IsLoggedIn()
}

// CurrentUser returns the stored user profile, if any.
func (c *Coordinator) CurrentUser() (*waybill.UserInfo, bool) {
	return c.tokens.UserInfo()
}

// OpenID returns the open identifier stashed by the last login attempt.
func (c *Coordinator) OpenID() string {
	return c.tokens.OpenID()
}
