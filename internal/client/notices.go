package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// NoticesClient implements waybill.NoticesClient.
type NoticesClient struct {
	pipeline *transport.Client
}

// NewNoticesClient creates a notices client.
func NewNoticesClient(pipeline *transport.Client) *NoticesClient {
	return &NoticesClient{pipeline: pipeline}
}

// Page lists platform notices. Responses are cached for ten minutes.
func (c *NoticesClient) Page(ctx context.Context, params waybill.NoticePageParams) (*waybill.Page[waybill.Notice], error) {
	return fetch[*waybill.Page[waybill.Notice]](ctx, c.pipeline, &transport.Request{
		Path:     "/system/notice/page",
		Query:    noticeQuery(params),
		UseCache: true,
	})
}

// CompanyPage lists notices published by a carrier.
func (c *NoticesClient) CompanyPage(ctx context.Context, params waybill.NoticePageParams) (*waybill.Page[waybill.Notice], error) {
	return fetch[*waybill.Page[waybill.Notice]](ctx, c.pipeline, &transport.Request{
		Path:     "/com/company-notice/page",
		Query:    noticeQuery(params),
		UseCache: true,
	})
}

// Get returns one notice.
func (c *NoticesClient) Get(ctx context.Context, id int64) (*waybill.Notice, error) {
	query := url.Values{}
	query.Set("id", formatID(id))

	return fetch[*waybill.Notice](ctx, c.pipeline, &transport.Request{
		Path:         "/com/company-notice/get",
		Query:        query,
		RequiresAuth: true,
	})
}

func noticeQuery(params waybill.NoticePageParams) url.Values {
	query := pageQuery(params.PageNo, params.PageSize)

	if params.CompanyID > 0 {
		query.Set("companyId", formatID(params.CompanyID))
	}

	if params.Status > 0 {
		query.Set("status", strconv.Itoa(params.Status))
	}

	return query
}
