package client

import (
	"context"
	"net/url"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// DictClient implements waybill.DictClient.
type DictClient struct {
	pipeline *transport.Client
}

// NewDictClient creates a dictionary client.
func NewDictClient(pipeline *transport.Client) *DictClient {
	return &DictClient{pipeline: pipeline}
}

// GetByValue resolves one dictionary entry.
func (c *DictClient) GetByValue(ctx context.Context, dictType, value string) (*waybill.DictData, error) {
	query := url.Values{}
	query.Set("dictType", dictType)
	query.Set("value", value)

	return fetch[*waybill.DictData](ctx, c.pipeline, &transport.Request{
		Path:     "/system/dict-data/get-by-value",
		Query:    query,
		UseCache: true,
	})
}
