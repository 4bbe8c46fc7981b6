// Package waybillclient provides the entry point for constructing a client
// that implements the waybill.Client interface.
package waybillclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/freightflow/waybill-client/internal/auth"
	"github.com/freightflow/waybill-client/internal/client"
	"github.com/freightflow/waybill-client/internal/storage"
	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// New creates a client from the given configuration.
func New(ctx context.Context, config *waybill.Config) (waybill.Client, error) {
	if config == nil {
		return nil, waybill.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, waybill.ErrBaseURLRequired
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")

	store, err := buildStore(config)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenStore(store)

	cache, err := waybill.NewCacheManagerFromConfig(config.Cache, store)
	if err != nil {
		return nil, fmt.Errorf("building cache: %w", err)
	}

	pipeline := transport.New(&transport.Config{
		BaseURL:      baseURL,
		TenantID:     config.TenantID,
		Timeout:      config.Timeout,
		RetryCount:   config.RetryCount,
		RetryWaitMin: config.RetryWaitMin,
		RetryWaitMax: config.RetryWaitMax,
		Headers:      config.Headers,
		UserAgent:    config.UserAgent,
		Logger:       config.Logger,
		Notifier:     config.Notifier,
		Debug:        config.Debug,
	}, tokens, cache)

	coordinator := auth.NewCoordinator(pipeline, tokens, config.Logger)
	pipeline.SetRefresher(coordinator)

	return client.New(pipeline, coordinator, cache), nil
}

// NewWithBaseURL creates a client with default settings for the given API
// origin.
func NewWithBaseURL(ctx context.Context, baseURL string) (waybill.Client, error) {
	return New(ctx, &waybill.Config{BaseURL: baseURL})
}

func buildStore(config *waybill.Config) (storage.Store, error) {
	if config.StorePath == "" {
		return storage.NewMemStore(), nil
	}

	store, err := storage.NewFileStore(config.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", config.StorePath, err)
	}

	return store, nil
}
