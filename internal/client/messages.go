package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// MessagesClient implements waybill.MessagesClient.
type MessagesClient struct {
	pipeline *transport.Client
}

// NewMessagesClient creates a messages client.
func NewMessagesClient(pipeline *transport.Client) *MessagesClient {
	return &MessagesClient{pipeline: pipeline}
}

// MyPage pages through the current user's in-app messages.
func (c *MessagesClient) MyPage(ctx context.Context, pageNo, pageSize int) (*waybill.Page[waybill.NotifyMessage], error) {
	return fetch[*waybill.Page[waybill.NotifyMessage]](ctx, c.pipeline, &transport.Request{
		Path:         "/system/notify-message/my-page",
		Query:        pageQuery(pageNo, pageSize),
		RequiresAuth: true,
	})
}

// Get returns one message.
func (c *MessagesClient) Get(ctx context.Context, id int64) (*waybill.NotifyMessage, error) {
	query := url.Values{}
	query.Set("id", formatID(id))

	return fetch[*waybill.NotifyMessage](ctx, c.pipeline, &transport.Request{
		Path:         "/system/notify-message/get",
		Query:        query,
		RequiresAuth: true,
	})
}

// MarkRead marks the given messages as read.
func (c *MessagesClient) MarkRead(ctx context.Context, ids []int64) (bool, error) {
	return fetch[bool](ctx, c.pipeline, &transport.Request{
		Method:       http.MethodPut,
		Path:         "/system/notify-message/update-read",
		Body:         map[string][]int64{"ids": ids},
		RequiresAuth: true,
	})
}
