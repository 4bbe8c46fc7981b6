package client

import (
	"context"
	"net/url"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// BannersClient implements waybill.BannersClient.
type BannersClient struct {
	pipeline *transport.Client
}

// NewBannersClient creates a banners client.
func NewBannersClient(pipeline *transport.Client) *BannersClient {
	return &BannersClient{pipeline: pipeline}
}

// HomeBanners returns the app home carousel.
func (c *BannersClient) HomeBanners(ctx context.Context) ([]waybill.Banner, error) {
	query := pageQuery(0, 0)
	query.Set("type", "APP")

	return fetch[[]waybill.Banner](ctx, c.pipeline, &transport.Request{
		Path:     "/system/banner/list",
		Query:    query,
		UseCache: true,
	})
}

// CompanyBanners returns a carrier's banner carousel.
func (c *BannersClient) CompanyBanners(ctx context.Context, companyID int64) ([]waybill.Banner, error) {
	query := url.Values{}
	if companyID > 0 {
		query.Set("companyId", formatID(companyID))
	}

	return fetch[[]waybill.Banner](ctx, c.pipeline, &transport.Request{
		Path:     "/com/company-banner/list",
		Query:    query,
		UseCache: true,
	})
}

// AdList returns the home footer ads.
func (c *BannersClient) AdList(ctx context.Context, companyID int64) ([]waybill.AdInfo, error) {
	query := url.Values{}
	if companyID > 0 {
		query.Set("companyId", formatID(companyID))
	}

	return fetch[[]waybill.AdInfo](ctx, c.pipeline, &transport.Request{
		Path:     "/com/ad-info/innerCompanyAdList",
		Query:    query,
		UseCache: true,
	})
}
