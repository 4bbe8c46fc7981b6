package constants

import "time"

// File and directory permissions.
const (
	// StoreDirPerm is the permission for the local store directory.
	StoreDirPerm = 0750

	// StoreFilePerm is the permission for the local store file.
	StoreFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultRequestTimeout is the per-attempt timeout for API requests.
	DefaultRequestTimeout = 10 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 5 * time.Second
)

// Retry limits.
const (
	// DefaultRetryCount is the number of redispatches after a transport failure.
	DefaultRetryCount = 2

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 200 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 2 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheTTL applies to cacheable endpoints without a table entry.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheSize bounds the memory cache tier.
	DefaultCacheSize = 512

	// CacheKeyPrefix namespaces cache entries in the persistent store so bulk
	// eviction never touches credential keys.
	CacheKeyPrefix = "wbcache:"
)

// Per-endpoint cache lifetimes.
const (
	CompanyCacheTTL = 60 * time.Minute
	RouteCacheTTL   = 30 * time.Minute
	BannerCacheTTL  = 30 * time.Minute
	NoticeCacheTTL  = 10 * time.Minute
	WaybillCacheTTL = 5 * time.Minute
)

// Tenant header.
const (
	// TenantHeaderName carries the tenant identifier on every request.
	TenantHeaderName = "tenant-id"

	// DefaultTenantID is used when no tenant is configured.
	DefaultTenantID = "1"
)

// Persistent store keys owned by the token store.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	UserInfoKey     = "user_info"
	OpenIDKey       = "open_id"
)

// Pagination defaults.
const (
	DefaultPageNo   = 1
	DefaultPageSize = 10
)
