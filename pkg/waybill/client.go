package waybill

import (
	"context"
	"time"
)

// WaybillsClient provides access to waybill query and tracking endpoints.
type WaybillsClient interface {
	// Search queries a waybill number across all carriers. Requires login.
	Search(ctx context.Context, waybillCode string) ([]Waybill, error)
	// SearchByCompany queries a waybill number at one carrier.
	SearchByCompany(ctx context.Context, waybillCode string, companyID int64) (*Waybill, error)
	// GetInfo returns waybill details. Responses are cached.
	GetInfo(ctx context.Context, waybillCode string, companyID int64) (*Waybill, error)
	// GetTrackInfo returns the tracking timeline. Responses are cached.
	GetTrackInfo(ctx context.Context, waybillCode string, companyID int64) ([]TrackNode, error)
	// Reach asks the carrier for the latest waybill state, bypassing caches.
	Reach(ctx context.Context, waybillCode string, companyID int64) (*Waybill, error)
	// MarkRecentSearch records the waybill in the user's recent searches.
	MarkRecentSearch(ctx context.Context, waybillCode string, companyID int64) (bool, error)
	// RecentSearchPage pages through the user's recent searches.
	RecentSearchPage(ctx context.Context, pageNo, pageSize int) (*Page[Waybill], error)
	// SendOrderPage pages through waybills the user sent.
	SendOrderPage(ctx context.Context, pageNo, pageSize int) (*Page[Waybill], error)
	// CollectOrderPage pages through waybills addressed to the user.
	CollectOrderPage(ctx context.Context, pageNo, pageSize int) (*Page[Waybill], error)
	// SubscribePage pages through the user's subscribed waybills.
	SubscribePage(ctx context.Context, pageNo, pageSize int) (*Page[Waybill], error)
	// Subscribe subscribes to or unsubscribes from waybill updates.
	Subscribe(ctx context.Context, waybillCode string, companyID int64, subscribe bool) (bool, error)
}

// CompaniesClient provides access to carrier company endpoints.
type CompaniesClient interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
	InnerList(ctx context.Context) ([]Company, error)
}

// RoutesClient provides access to freight route endpoints.
type RoutesClient interface {
	Page(ctx context.Context, params RoutePageParams) (*Page[RouteInfo], error)
}

// NoticesClient provides access to notice and announcement endpoints.
type NoticesClient interface {
	// Page lists platform notices.
	Page(ctx context.Context, params NoticePageParams) (*Page[Notice], error)
	// CompanyPage lists notices published by a carrier.
	CompanyPage(ctx context.Context, params NoticePageParams) (*Page[Notice], error)
	// Get returns one notice. Requires login.
	Get(ctx context.Context, id int64) (*Notice, error)
}

// BannersClient provides access to banner and ad endpoints.
type BannersClient interface {
	// HomeBanners returns the app home carousel.
	HomeBanners(ctx context.Context) ([]Banner, error)
	// CompanyBanners returns a carrier's banner carousel.
	CompanyBanners(ctx context.Context, companyID int64) ([]Banner, error)
	// AdList returns the home footer ads.
	AdList(ctx context.Context, companyID int64) ([]AdInfo, error)
}

// MessagesClient provides access to in-app notification messages.
type MessagesClient interface {
	MyPage(ctx context.Context, pageNo, pageSize int) (*Page[NotifyMessage], error)
	Get(ctx context.Context, id int64) (*NotifyMessage, error)
	MarkRead(ctx context.Context, ids []int64) (bool, error)
}

// DictClient provides access to dictionary data endpoints.
type DictClient interface {
	GetByValue(ctx context.Context, dictType, value string) (*DictData, error)
}

// AuthClient provides access to session operations.
type AuthClient interface {
	// Login exchanges a platform login code for a session. When the account
	// is unknown the result asks for phone verification instead.
	Login(ctx context.Context, loginCode string, profile Profile) (*LoginResult, error)
	// RegisterWithPhoneCode completes a login that required phone verification.
	RegisterWithPhoneCode(ctx context.Context, phoneCode string, profile Profile) (*LoginResult, error)
	// Refresh renews the access token. Reports false when another refresh is
	// already in flight or renewal failed.
	Refresh(ctx context.Context) bool
	// Logout ends the server session and clears stored credentials.
	Logout(ctx context.Context) error
	// IsLoggedIn reports whether an access token is stored.
	IsLoggedIn() bool
	// CurrentUser returns the stored user profile, if any.
	CurrentUser() (*UserInfo, bool)
}

// Client is the full API surface.
type Client interface {
	Waybills() WaybillsClient
	Companies() CompaniesClient
	Routes() RoutesClient
	Notices() NoticesClient
	Banners() BannersClient
	Messages() MessagesClient
	Dict() DictClient
	Auth() AuthClient

	// Cache exposes the cache manager for admin operations.
	Cache() *CacheManager
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config configures a client built by pkg/waybillclient.
type Config struct {
	// BaseURL is the API origin, e.g. "https://api.example.com/app-api".
	// Required. A trailing slash is trimmed.
	BaseURL string

	// TenantID is sent on every request in the tenant header. Defaults to
	// the platform tenant.
	TenantID string

	// Timeout is the per-attempt request timeout. Defaults to 10s.
	Timeout time.Duration

	// RetryCount is the number of transport-level retries after the first
	// attempt. Defaults to 2. Received HTTP statuses are never retried.
	RetryCount int

	// RetryWaitMin and RetryWaitMax bound the retry backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// StorePath is the file backing credentials and the persistent cache
	// tier. Empty means in-memory only.
	StorePath string

	// Cache configures the cache tiers; nil picks the defaults.
	Cache *CacheConfig

	// Headers are extra headers sent on every request.
	Headers map[string]string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger receives structured client logs. Nil disables logging.
	Logger Logger

	// Notifier receives user-facing failure notifications. Nil disables
	// notifications.
	Notifier Notifier

	// Debug enables request/response logging through Logger.
	Debug bool
}
