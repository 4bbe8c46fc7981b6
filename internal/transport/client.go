// Package transport implements the request pipeline: header construction,
// bounded-retry dispatch, response classification, cache integration, and the
// single-flight token refresh protocol.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/singleflight"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// CredentialStore is the slice of the token store the pipeline needs: the
// current access token for header construction, and Clear for the failed
// refresh path.
type CredentialStore interface {
	AccessToken() string
	Clear()
}

// Refresher renews the session after a 401. Refresh reports whether a fresh
// token is now stored. Implemented by the auth coordinator; injected after
// construction because the coordinator itself dispatches through the
// pipeline.
type Refresher interface {
	Refresh(ctx context.Context) bool
}

// Config holds the pipeline settings.
type Config struct {
	BaseURL      string
	TenantID     string
	Timeout      time.Duration
	RetryCount   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Headers      map[string]string
	UserAgent    string
	Logger       waybill.Logger
	Notifier     waybill.Notifier
	Debug        bool
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}

	// Headers are merged over the pipeline defaults.
	Headers map[string]string

	// RequiresAuth attaches the bearer token and arms the refresh protocol.
	// Requests without it fail silently on business errors.
	RequiresAuth bool

	// UseCache enables the cache for GET requests.
	UseCache bool

	// CacheOnly returns waybill.ErrCacheMiss instead of dispatching when the
	// cache has no entry.
	CacheOnly bool

	// CacheTTL overrides the endpoint-derived lifetime when positive.
	CacheTTL time.Duration
}

type callResult struct {
	data []byte
	err  error
}

// pendingCall is a request parked while a token refresh is in flight.
type pendingCall struct {
	ctx  context.Context
	req  *Request
	done chan callResult
}

// Client dispatches API requests. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	chain      *waybill.InterceptorChain
	authorize  waybill.RequestInterceptor
	cache      *waybill.CacheManager
	creds      CredentialStore
	notifier   waybill.Notifier
	logger     waybill.Logger
	userAgent  string
	metrics    *waybill.MetricsCollector

	// flight coalesces concurrent cache-miss GETs for the same key.
	flight singleflight.Group

	mu         sync.Mutex
	refresher  Refresher
	refreshing bool
	pending    []*pendingCall
}

// New creates a pipeline client. creds may not be nil; cache may be.
func New(config *Config, creds CredentialStore, cache *waybill.CacheManager) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	retryCount := config.RetryCount
	if retryCount < 0 {
		retryCount = constants.DefaultRetryCount
	}

	waitMin := config.RetryWaitMin
	if waitMin <= 0 {
		waitMin = constants.DefaultRetryWaitMin
	}

	waitMax := config.RetryWaitMax
	if waitMax <= 0 {
		waitMax = constants.DefaultRetryWaitMax
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = retryCount
	httpClient.RetryWaitMin = waitMin
	httpClient.RetryWaitMax = waitMax
	httpClient.HTTPClient.Timeout = timeout
	httpClient.Logger = nil
	// Retry only transport-level failures. A received status, whatever it
	// is, settles the dispatch.
	httpClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		return err != nil, nil
	}

	if config.Debug && config.Logger != nil {
		httpClient.Logger = leveledLogger{logger: config.Logger}
	}

	tenantID := config.TenantID
	if tenantID == "" {
		tenantID = constants.DefaultTenantID
	}

	metrics := waybill.NewMetricsCollector()

	chain := waybill.NewInterceptorChain()
	chain.AddRequestInterceptor(waybill.TenantInterceptor(constants.TenantHeaderName, tenantID))

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(waybill.HeaderInterceptor(config.Headers))
	}

	chain.AddRequestInterceptor(waybill.MetricsRequestInterceptor(metrics))
	chain.AddResponseInterceptor(waybill.MetricsResponseInterceptor(metrics))

	if config.Debug && config.Logger != nil {
		chain.AddRequestInterceptor(waybill.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(waybill.LoggingResponseInterceptor(config.Logger))
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: httpClient,
		chain:      chain,
		cache:      cache,
		creds:      creds,
		notifier:   config.Notifier,
		logger:     config.Logger,
		userAgent:  config.UserAgent,
		metrics:    metrics,
	}
	client.authorize = waybill.AuthenticationInterceptor(func(ctx context.Context) string {
		return creds.AccessToken()
	})

	return client
}

// SetRefresher installs the session refresher. Until one is set, 401
// responses on authenticated requests fail as expired sessions.
func (c *Client) SetRefresher(refresher Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refresher = refresher
}

// Metrics exposes per-endpoint call statistics.
func (c *Client) Metrics() *waybill.MetricsCollector {
	return c.metrics
}

// Do runs a request through the pipeline and returns the raw business
// payload. Every failure is a *waybill.APIError or one of the cache
// sentinels.
func (c *Client) Do(ctx context.Context, req *Request) ([]byte, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	if !c.cacheEligible(req) {
		return c.execute(ctx, req, true)
	}

	if data, ok := c.cache.Get(ctx, req.Path, req.Query); ok {
		return data, nil
	}

	if req.CacheOnly {
		return nil, waybill.ErrCacheMiss
	}

	// Identical concurrent misses share one dispatch.
	key := waybill.DeriveCacheKey(req.Path, req.Query)

	value, err, _ := c.flight.Do(key, func() (interface{}, error) {
		return c.execute(ctx, req, true)
	})
	if err != nil {
		return nil, err
	}

	data, _ := value.([]byte)

	return data, nil
}

func (c *Client) cacheEligible(req *Request) bool {
	return c.cache != nil && req.UseCache && req.Method == http.MethodGet
}

// execute performs one dispatch. allowRefresh arms the 401 refresh protocol;
// redispatches after a refresh run with it disarmed so a request passes
// through the protocol at most once.
func (c *Client) execute(ctx context.Context, req *Request, allowRefresh bool) ([]byte, error) {
	wreq := &waybill.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
	}

	wreq.Headers.Set("Content-Type", "application/json")
	wreq.Headers.Set("Accept", "application/json")

	if c.userAgent != "" {
		wreq.Headers.Set("User-Agent", c.userAgent)
	}

	err := c.chain.ExecuteRequestInterceptors(ctx, wreq)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", req.Path, err)
	}

	for key, value := range req.Headers {
		wreq.Headers.Set(key, value)
	}

	if req.RequiresAuth {
		err = c.authorize(ctx, wreq)
		if err != nil {
			return nil, fmt.Errorf("authorizing request for %s: %w", req.Path, err)
		}
	}

	var bodyBytes []byte

	if req.Body != nil {
		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body for %s: %w", req.Path, err)
		}

		wreq.Body = bodyBytes
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.buildURL(req), bodyReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", req.Path, err)
	}

	httpReq.Header = wreq.Headers

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		apiErr := classifyTransportError(err)
		c.notify(apiErr.Message, waybill.NotifyToast)
		c.finishResponse(ctx, wreq, &waybill.Response{Error: apiErr})

		return nil, apiErr
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		apiErr := classifyTransportError(err)
		c.notify(apiErr.Message, waybill.NotifyToast)
		c.finishResponse(ctx, wreq, &waybill.Response{StatusCode: httpResp.StatusCode, Error: apiErr})

		return nil, apiErr
	}

	data, err := c.classifyStatus(ctx, req, allowRefresh, httpResp.StatusCode, body)
	c.finishResponse(ctx, wreq, &waybill.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Error:      err,
	})

	return data, err
}

func (c *Client) buildURL(req *Request) string {
	full := c.baseURL + req.Path

	if len(req.Query) > 0 {
		full += "?" + req.Query.Encode()
	}

	return full
}

// bodyReader keeps a nil body out of retryablehttp's body handling.
func bodyReader(body []byte) io.ReadSeeker {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}

func (c *Client) classifyStatus(ctx context.Context, req *Request, allowRefresh bool, status int, body []byte) ([]byte, error) {
	switch status {
	case http.StatusOK:
		return c.handleEnvelope(ctx, req, body)

	case http.StatusUnauthorized:
		if req.RequiresAuth && allowRefresh {
			return c.handleUnauthorized(ctx, req)
		}

		apiErr := waybill.NewHTTPError(status, waybill.MsgGenericFailure)
		c.notify(apiErr.Message, waybill.NotifyToast)

		return nil, apiErr

	case http.StatusForbidden:
		apiErr := waybill.NewHTTPError(status, waybill.MsgForbidden)
		c.notify(apiErr.Message, waybill.NotifyToast)

		return nil, apiErr

	case http.StatusNotFound:
		apiErr := waybill.NewHTTPError(status, waybill.MsgNotFound)
		c.notify(apiErr.Message, waybill.NotifyToast)

		return nil, apiErr

	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		apiErr := waybill.NewHTTPError(status, waybill.MsgServerBusy)
		c.notify(apiErr.Message, waybill.NotifyToast)

		return nil, apiErr

	default:
		apiErr := waybill.NewHTTPError(status, waybill.MsgGenericFailure)
		c.notify(apiErr.Message, waybill.NotifyToast)

		return nil, apiErr
	}
}

// envelope is the uniform business payload wrapper. Some deployments emit
// "message", others "msg".
type envelope struct {
	Code    *int            `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Msg     string          `json:"msg"`
}

func (e *envelope) serverMessage() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Msg
}

func (c *Client) handleEnvelope(ctx context.Context, req *Request, body []byte) ([]byte, error) {
	var env envelope

	err := json.Unmarshal(body, &env)
	if err != nil || env.Code == nil {
		// A 200 whose body carries no envelope marker is a malformed
		// business payload, not a success.
		return nil, c.businessFailure(req, 0, env.serverMessage())
	}

	code := *env.Code
	if code == 0 || code == http.StatusOK {
		if c.cacheEligible(req) {
			cacheErr := c.cache.Set(ctx, req.Path, req.Query, env.Data, &waybill.SetOptions{TTLOverride: req.CacheTTL})
			if cacheErr != nil && c.logger != nil {
				c.logger.Warn("cache write failed", map[string]interface{}{
					"path":  req.Path,
					"error": cacheErr.Error(),
				})
			}
		}

		return env.Data, nil
	}

	return nil, c.businessFailure(req, code, env.serverMessage())
}

// businessFailure maps a business-level failure onto an APIError. Anonymous
// endpoints fail silently; the caller decides what to show.
func (c *Client) businessFailure(req *Request, code int, serverMessage string) *waybill.APIError {
	if c.logger != nil {
		c.logger.Error("business error", map[string]interface{}{
			"path":    req.Path,
			"code":    code,
			"message": serverMessage,
		})
	}

	if !req.RequiresAuth {
		message := serverMessage
		if message == "" {
			message = waybill.MsgGenericFailure
		}

		return waybill.NewBusinessError(code, message)
	}

	message := waybill.BusinessErrorMessage(code, serverMessage, true)
	c.notify(message, waybill.NotifyToast)

	return waybill.NewBusinessError(code, message)
}

// handleUnauthorized runs the token refresh protocol. At most one refresh is
// in flight; requests that 401 while it runs park in a FIFO queue and are
// settled when the refresh concludes.
func (c *Client) handleUnauthorized(ctx context.Context, req *Request) ([]byte, error) {
	c.mu.Lock()

	if c.refreshing {
		call := &pendingCall{ctx: ctx, req: req, done: make(chan callResult, 1)}
		c.pending = append(c.pending, call)
		c.mu.Unlock()

		select {
		case res := <-call.done:
			return res.data, res.err
		case <-ctx.Done():
			apiErr := classifyTransportError(ctx.Err())

			return nil, apiErr
		}
	}

	refresher := c.refresher
	c.refreshing = true
	c.mu.Unlock()

	refreshed := refresher != nil && refresher.Refresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	queued := c.pending
	c.pending = nil
	c.mu.Unlock()

	if !refreshed {
		// A refresh cut short by the triggering caller's cancellation says
		// nothing about the session. Keep the credentials and send parked
		// callers back through the protocol under their own contexts.
		if ctx.Err() != nil {
			for _, call := range queued {
				queuedData, queuedErr := c.execute(call.ctx, call.req, true)
				call.done <- callResult{data: queuedData, err: queuedErr}
			}

			return nil, classifyTransportError(ctx.Err())
		}

		c.creds.Clear()
		c.notify(waybill.MsgSessionExpired, waybill.NotifyModal)

		for _, call := range queued {
			call.done <- callResult{err: waybill.NewSessionExpiredError()}
		}

		return nil, waybill.NewSessionExpiredError()
	}

	// Redispatch the request that triggered the refresh, then drain the
	// queue in arrival order. Each settles independently.
	data, err := c.execute(ctx, req, false)

	for _, call := range queued {
		queuedData, queuedErr := c.execute(call.ctx, call.req, false)
		call.done <- callResult{data: queuedData, err: queuedErr}
	}

	return data, err
}

func (c *Client) finishResponse(ctx context.Context, wreq *waybill.Request, wresp *waybill.Response) {
	err := c.chain.ExecuteResponseInterceptors(ctx, wreq, wresp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"path":  wreq.Path,
			"error": err.Error(),
		})
	}
}

func (c *Client) notify(message string, kind waybill.NotifyKind) {
	if c.notifier != nil {
		c.notifier.Notify(message, kind)
	}
}

// leveledLogger adapts waybill.Logger to retryablehttp's logging contract.
type leveledLogger struct {
	logger waybill.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, logFields(keysAndValues))
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, logFields(keysAndValues))
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, logFields(keysAndValues))
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, logFields(keysAndValues))
}

func logFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
