// Package client implements the resource-oriented API surface over the
// request pipeline.
package client

import (
	"github.com/freightflow/waybill-client/internal/auth"
	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// Client implements waybill.Client.
type Client struct {
	pipeline    *transport.Client
	coordinator *auth.Coordinator
	cache       *waybill.CacheManager

	waybills  *WaybillsClient
	companies *CompaniesClient
	routes    *RoutesClient
	notices   *NoticesClient
	banners   *BannersClient
	messages  *MessagesClient
	dict      *DictClient
}

// New wires the resource clients over a pipeline and session coordinator.
func New(pipeline *transport.Client, coordinator *auth.Coordinator, cache *waybill.CacheManager) *Client {
	return &Client{
		pipeline:    pipeline,
		coordinator: coordinator,
		cache:       cache,
		waybills:    NewWaybillsClient(pipeline),
		companies:   NewCompaniesClient(pipeline),
		routes:      NewRoutesClient(pipeline),
		notices:     NewNoticesClient(pipeline),
		banners:     NewBannersClient(pipeline),
		messages:    NewMessagesClient(pipeline),
		dict:        NewDictClient(pipeline),
	}
}

// Waybills returns the waybills client.
func (c *Client) Waybills() waybill.WaybillsClient { return c.waybills }

// Companies returns the companies client.
func (c *Client) Companies() waybill.CompaniesClient { return c.companies }

// Routes returns the routes client.
func (c *Client) Routes() waybill.RoutesClient { return c.routes }

// Notices returns the notices client.
func (c *Client) Notices() waybill.NoticesClient { return c.notices }

// Banners returns the banners client.
func (c *Client) Banners() waybill.BannersClient { return c.banners }

// Messages returns the messages client.
func (c *Client) Messages() waybill.MessagesClient { return c.messages }

// Dict returns the dictionary client.
func (c *Client) Dict() waybill.DictClient { return c.dict }

// Auth returns the session client.
func (c *Client) Auth() waybill.AuthClient { return c.coordinator }

// Cache exposes the cache manager for admin operations.
func (c *Client) Cache() *waybill.CacheManager { return c.cache }
