package client

import (
	"context"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// RoutesClient implements waybill.RoutesClient.
type RoutesClient struct {
	pipeline *transport.Client
}

// NewRoutesClient creates a routes client.
func NewRoutesClient(pipeline *transport.Client) *RoutesClient {
	return &RoutesClient{pipeline: pipeline}
}

// Page lists freight routes. Responses are cached for half an hour.
func (c *RoutesClient) Page(ctx context.Context, params waybill.RoutePageParams) (*waybill.Page[waybill.RouteInfo], error) {
	query := pageQuery(params.PageNo, params.PageSize)

	if params.CompanyID > 0 {
		query.Set("companyId", formatID(params.CompanyID))
	}

	if params.StartPoint != "" {
		query.Set("startPoint", params.StartPoint)
	}

	if params.EndPoint != "" {
		query.Set("endPoint", params.EndPoint)
	}

	return fetch[*waybill.Page[waybill.RouteInfo]](ctx, c.pipeline, &transport.Request{
		Path:     "/com/route-info/page",
		Query:    query,
		UseCache: true,
	})
}
