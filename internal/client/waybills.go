package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// WaybillsClient implements waybill.WaybillsClient.
type WaybillsClient struct {
	pipeline *transport.Client
}

// NewWaybillsClient creates a waybills client.
func NewWaybillsClient(pipeline *transport.Client) *WaybillsClient {
	return &WaybillsClient{pipeline: pipeline}
}

// Search queries a waybill number across all carriers.
func (c *WaybillsClient) Search(ctx context.Context, waybillCode string) ([]waybill.Waybill, error) {
	query := url.Values{}
	query.Set("waybillCode", waybillCode)

	return fetch[[]waybill.Waybill](ctx, c.pipeline, &transport.Request{
		Path:         "/com/waybill/search",
		Query:        query,
		RequiresAuth: true,
	})
}

// SearchByCompany queries a waybill number at one carrier.
func (c *WaybillsClient) SearchByCompany(ctx context.Context, waybillCode string, companyID int64) (*waybill.Waybill, error) {
	return fetch[*waybill.Waybill](ctx, c.pipeline, &transport.Request{
		Path:  "/com/waybill/searchByCompanyId",
		Query: waybillQuery(waybillCode, companyID),
	})
}

// GetInfo returns waybill details, served from cache when fresh.
func (c *WaybillsClient) GetInfo(ctx context.Context, waybillCode string, companyID int64) (*waybill.Waybill, error) {
	return fetch[*waybill.Waybill](ctx, c.pipeline, &transport.Request{
		Path:     "/com/waybill/getWaybillInfo",
		Query:    waybillQuery(waybillCode, companyID),
		UseCache: true,
	})
}

// GetTrackInfo returns the tracking timeline, served from cache when fresh.
func (c *WaybillsClient) GetTrackInfo(ctx context.Context, waybillCode string, companyID int64) ([]waybill.TrackNode, error) {
	return fetch[[]waybill.TrackNode](ctx, c.pipeline, &transport.Request{
		Path:     "/com/waybill/getWaybillTrackInfo",
		Query:    waybillQuery(waybillCode, companyID),
		UseCache: true,
	})
}

// Reach asks the carrier for the latest waybill state, bypassing caches.
func (c *WaybillsClient) Reach(ctx context.Context, waybillCode string, companyID int64) (*waybill.Waybill, error) {
	return fetch[*waybill.Waybill](ctx, c.pipeline, &transport.Request{
		Path:  "/com/waybill/reachWaybillInfo",
		Query: waybillQuery(waybillCode, companyID),
	})
}

// MarkRecentSearch records the waybill in the user's recent searches.
func (c *WaybillsClient) MarkRecentSearch(ctx context.Context, waybillCode string, companyID int64) (bool, error) {
	return fetch[bool](ctx, c.pipeline, &transport.Request{
		Path:         "/com/waybill/markRecentSearch",
		Query:        waybillQuery(waybillCode, companyID),
		RequiresAuth: true,
	})
}

// RecentSearchPage pages through the user's recent searches.
func (c *WaybillsClient) RecentSearchPage(ctx context.Context, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
	return c.page(ctx, "/com/waybill/recentSearchPage", pageNo, pageSize)
}

// SendOrderPage pages through waybills the user sent.
func (c *WaybillsClient) SendOrderPage(ctx context.Context, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
	return c.page(ctx, "/com/waybill/sendOrderPage", pageNo, pageSize)
}

// CollectOrderPage pages through waybills addressed to the user.
func (c *WaybillsClient) CollectOrderPage(ctx context.Context, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
	return c.page(ctx, "/com/waybill/collectOrderPage", pageNo, pageSize)
}

// SubscribePage pages through the user's subscribed waybills.
func (c *WaybillsClient) SubscribePage(ctx context.Context, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
	return c.page(ctx, "/com/waybill/subscribePage", pageNo, pageSize)
}

// Subscribe subscribes to or unsubscribes from waybill updates.
func (c *WaybillsClient) Subscribe(ctx context.Context, waybillCode string, companyID int64, subscribe bool) (bool, error) {
	query := waybillQuery(waybillCode, companyID)
	query.Set("isSubscribe", strconv.FormatBool(subscribe))

	return fetch[bool](ctx, c.pipeline, &transport.Request{
		Path:         "/com/waybill/subscribe",
		Query:        query,
		RequiresAuth: true,
	})
}

func (c *WaybillsClient) page(ctx context.Context, path string, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
	return fetch[*waybill.Page[waybill.Waybill]](ctx, c.pipeline, &transport.Request{
		Path:         path,
		Query:        pageQuery(pageNo, pageSize),
		RequiresAuth: true,
	})
}

func waybillQuery(waybillCode string, companyID int64) url.Values {
	query := url.Values{}
	query.Set("waybillCode", waybillCode)
	query.Set("companyId", formatID(companyID))

	return query
}
