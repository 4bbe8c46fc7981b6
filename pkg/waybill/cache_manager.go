package waybill

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/freightflow/waybill-client/internal/constants"
)

// endpointTTLs maps path fragments to cache lifetimes. Resolution picks the
// longest fragment contained in the request path, so a more specific route
// always wins over a broader one.
var endpointTTLs = map[string]time.Duration{
	"/com/company-banner/list":         constants.BannerCacheTTL,
	"/system/banner/list":              constants.BannerCacheTTL,
	"/com/ad-info/innerCompanyAdList":  constants.BannerCacheTTL,
	"/system/notice/page":              constants.NoticeCacheTTL,
	"/com/company-notice/page":         constants.NoticeCacheTTL,
	"/com/company/get-by-id":           constants.CompanyCacheTTL,
	"/com/company/innerCompanyList":    constants.CompanyCacheTTL,
	"/com/route-info/page":             constants.RouteCacheTTL,
	"/com/waybill/getWaybillInfo":      constants.WaybillCacheTTL,
	"/com/waybill/getWaybillTrackInfo": constants.WaybillCacheTTL,
}

// EndpointTTL resolves the configured cache lifetime for a request path,
// falling back to the global default.
func EndpointTTL(path string) time.Duration {
	var (
		bestLen int
		bestTTL = constants.DefaultCacheTTL
	)

	for fragment, ttl := range endpointTTLs {
		if strings.Contains(path, fragment) && len(fragment) > bestLen {
			bestLen = len(fragment)
			bestTTL = ttl
		}
	}

	return bestTTL
}

// DeriveCacheKey produces the deterministic key for a request identity.
// url.Values.Encode sorts by key, so permutations of the same parameters map
// to the same entry. The hex digest keeps keys safe for every backend,
// including NATS KV's restricted key charset.
func DeriveCacheKey(path string, params url.Values) string {
	sum := sha256.Sum256([]byte(path + "?" + params.Encode()))

	return hex.EncodeToString(sum[:])
}

// CacheStats counts cache manager traffic.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// GetHitRate returns hits / (hits + misses), or 0 with no traffic.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// SetOptions tunes a single cache write.
type SetOptions struct {
	// TTLOverride replaces the endpoint-derived lifetime when positive.
	TTLOverride time.Duration

	// MemoryOnly skips the persistent tier.
	MemoryOnly bool
}

// CacheManager coordinates the two tiers: memory is checked first, the
// persistent tier second, and a persistent hit repopulates memory. Each tier
// owns its own storage; nothing else writes to them directly.
type CacheManager struct {
	memory     Cache
	persistent Cache

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewCacheManager creates a manager over the given tiers. Either tier may be
// nil, which disables it.
func NewCacheManager(memory, persistent Cache) *CacheManager {
	if memory == nil {
		memory = NewNoOpCache()
	}

	if persistent == nil {
		persistent = NewNoOpCache()
	}

	return &CacheManager{memory: memory, persistent: persistent}
}

// Get returns the cached payload for the request identity, or ok=false on a
// miss. A hit in the persistent tier is promoted into the memory tier so
// subsequent reads stay local.
func (m *CacheManager) Get(ctx context.Context, path string, params url.Values) ([]byte, bool) {
	key := DeriveCacheKey(path, params)

	entry, err := m.memory.Get(ctx, key)
	if err == nil {
		m.hits.Add(1)

		return entry.Data, true
	}

	entry, err = m.persistent.Get(ctx, key)
	if err != nil {
		m.misses.Add(1)

		return nil, false
	}

	_ = m.memory.Set(ctx, key, entry)
	m.hits.Add(1)

	return entry.Data, true
}

// Set writes the payload through both tiers (persistent unless MemoryOnly).
// TTL resolution order: explicit override, endpoint table, global default.
func (m *CacheManager) Set(ctx context.Context, path string, params url.Values, data []byte, opts *SetOptions) error {
	if opts == nil {
		opts = &SetOptions{}
	}

	ttl := opts.TTLOverride
	if ttl <= 0 {
		ttl = EndpointTTL(path)
	}

	entry := &CacheEntry{
		Data:     data,
		StoredAt: time.Now(),
		TTL:      ttl,
	}

	key := DeriveCacheKey(path, params)
	m.sets.Add(1)

	err := m.memory.Set(ctx, key, entry)
	if err != nil {
		return err
	}

	if opts.MemoryOnly {
		return nil
	}

	return m.persistent.Set(ctx, key, entry)
}

// Remove evicts the request identity from both tiers.
func (m *CacheManager) Remove(ctx context.Context, path string, params url.Values) error {
	key := DeriveCacheKey(path, params)

	err := m.memory.Delete(ctx, key)
	if err != nil {
		return err
	}

	return m.persistent.Delete(ctx, key)
}

// Clear evicts every entry in both tiers. The persistent tier only touches
// namespaced keys, so credentials and other persisted state survive.
func (m *CacheManager) Clear(ctx context.Context) error {
	err := m.memory.Clear(ctx)
	if err != nil {
		return err
	}

	return m.persistent.Clear(ctx)
}

// SweepExpired evicts expired entries from both tiers. Idempotent.
func (m *CacheManager) SweepExpired() {
	m.memory.Cleanup()
	m.persistent.Cleanup()
}

// GetStats returns a snapshot of traffic counters.
func (m *CacheManager) GetStats() CacheStats {
	return CacheStats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
	}
}
