package client

import (
	"context"
	"net/url"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// CompaniesClient implements waybill.CompaniesClient.
type CompaniesClient struct {
	pipeline *transport.Client
}

// NewCompaniesClient creates a companies client.
func NewCompaniesClient(pipeline *transport.Client) *CompaniesClient {
	return &CompaniesClient{pipeline: pipeline}
}

// GetByID returns one carrier. Responses are cached for an hour.
func (c *CompaniesClient) GetByID(ctx context.Context, id int64) (*waybill.Company, error) {
	query := url.Values{}
	query.Set("id", formatID(id))

	return fetch[*waybill.Company](ctx, c.pipeline, &transport.Request{
		Path:         "/com/company/get-by-id",
		Query:        query,
		RequiresAuth: true,
		UseCache:     true,
	})
}

// InnerList returns the carriers connected to the tracking network.
func (c *CompaniesClient) InnerList(ctx context.Context) ([]waybill.Company, error) {
	return fetch[[]waybill.Company](ctx, c.pipeline, &transport.Request{
		Path:     "/com/company/innerCompanyList",
		UseCache: true,
	})
}
