package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightflow/waybill-client/internal/transport"
	"github.com/freightflow/waybill-client/pkg/waybill"
)

// apiRecorder is an httptest harness that records the last request and
// replies with a scripted enveloped payload per path.
type apiRecorder struct {
	mu        sync.Mutex
	method    string
	path      string
	query     map[string]string
	auth      string
	body      []byte
	responses map[string]interface{}

	server *httptest.Server
}

func newAPIRecorder(t *testing.T) *apiRecorder {
	t.Helper()

	rec := &apiRecorder{responses: make(map[string]interface{})}
	rec.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()

		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = make(map[string]string)

		for key, values := range r.URL.Query() {
			rec.query[key] = values[0]
		}

		rec.auth = r.Header.Get("Authorization")
		rec.body, _ = io.ReadAll(r.Body)

		payload := rec.responses[r.URL.Path]
		rec.mu.Unlock()

		envelope, err := json.Marshal(map[string]interface{}{"code": 0, "data": payload})
		require.NoError(t, err)

		_, _ = w.Write(envelope)
	}))
	t.Cleanup(rec.server.Close)

	return rec
}

func (r *apiRecorder) respond(path string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.responses[path] = payload
}

type staticCreds struct {
	token string
}

func (c *staticCreds) AccessToken() string { return c.token }

func (c *staticCreds) Clear() { c.token = "" }

func newTestPipeline(rec *apiRecorder, token string) *transport.Client {
	return transport.New(&transport.Config{
		BaseURL:      rec.server.URL,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
	}, &staticCreds{token: token}, nil)
}

func TestWaybillsClient_Search(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/waybill/search", []map[string]interface{}{
		{"id": 1, "waybillCode": "WB-100", "companyId": 5, "status": 2},
	})

	waybills := NewWaybillsClient(newTestPipeline(rec, "tok"))

	results, err := waybills.Search(context.Background(), "WB-100")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "WB-100", results[0].WaybillCode)
	assert.Equal(t, int64(5), results[0].CompanyID)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/com/waybill/search", rec.path)
	assert.Equal(t, "WB-100", rec.query["waybillCode"])
	assert.Equal(t, "Bearer tok", rec.auth)
}

func TestWaybillsClient_GetInfoAndTrack(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/waybill/getWaybillInfo", map[string]interface{}{
		"id": 3, "waybillCode": "WB-3", "companyId": 7, "status": 1,
	})
	rec.respond("/com/waybill/getWaybillTrackInfo", []map[string]interface{}{
		{"id": 1, "waybillCode": "WB-3", "status": 1, "location": "Depot A", "trackTime": 1700000000},
		{"id": 2, "waybillCode": "WB-3", "status": 2, "location": "Depot B", "trackTime": 1700003600},
	})

	waybills := NewWaybillsClient(newTestPipeline(rec, ""))

	info, err := waybills.GetInfo(context.Background(), "WB-3", 7)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "WB-3", info.WaybillCode)
	assert.Equal(t, "7", rec.query["companyId"])
	assert.Empty(t, rec.auth)

	nodes, err := waybills.GetTrackInfo(context.Background(), "WB-3", 7)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Depot B", nodes[1].Location)
}

func TestWaybillsClient_Subscribe(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/waybill/subscribe", true)

	waybills := NewWaybillsClient(newTestPipeline(rec, "tok"))

	ok, err := waybills.Subscribe(context.Background(), "WB-9", 2, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", rec.query["isSubscribe"])
	assert.Equal(t, "Bearer tok", rec.auth)

	ok, err = waybills.Subscribe(context.Background(), "WB-9", 2, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", rec.query["isSubscribe"])
}

func TestWaybillsClient_Pages(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)

	paths := map[string]func(ctx context.Context, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error){}
	waybills := NewWaybillsClient(newTestPipeline(rec, "tok"))

	paths["/com/waybill/recentSearchPage"] = waybills.RecentSearchPage
	paths["/com/waybill/sendOrderPage"] = waybills.SendOrderPage
	paths["/com/waybill/collectOrderPage"] = waybills.CollectOrderPage
	paths["/com/waybill/subscribePage"] = waybills.SubscribePage

	for path, call := range paths {
		rec.respond(path, map[string]interface{}{
			"list":  []map[string]interface{}{{"id": 1, "waybillCode": "WB-1", "companyId": 1, "status": 0}},
			"total": 1,
		})

		page, err := call(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.List, 1)

		assert.Equal(t, path, rec.path)
		assert.Equal(t, "1", rec.query["pageNo"])
		assert.Equal(t, "10", rec.query["pageSize"])
		assert.Equal(t, "Bearer tok", rec.auth)
	}
}

func TestCompaniesClient(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/company/get-by-id", map[string]interface{}{"id": 4, "name": "Acme Freight", "status": 1})
	rec.respond("/com/company/innerCompanyList", []map[string]interface{}{
		{"id": 4, "name": "Acme Freight", "status": 1},
		{"id": 5, "name": "Borealis Cargo", "status": 1},
	})

	companies := NewCompaniesClient(newTestPipeline(rec, "tok"))

	company, err := companies.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", company.Name)
	assert.Equal(t, "4", rec.query["id"])
	assert.Equal(t, "Bearer tok", rec.auth)

	list, err := companies.InnerList(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Empty(t, rec.auth)
}

func TestRoutesClient_Page(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/route-info/page", map[string]interface{}{
		"list":  []map[string]interface{}{{"id": 1, "companyId": 4, "startPoint": "Rotterdam", "endPoint": "Duisburg"}},
		"total": 1,
	})

	routes := NewRoutesClient(newTestPipeline(rec, ""))

	page, err := routes.Page(context.Background(), waybill.RoutePageParams{
		CompanyID:  4,
		StartPoint: "Rotterdam",
		PageNo:     2,
		PageSize:   20,
	})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Duisburg", page.List[0].EndPoint)

	assert.Equal(t, "4", rec.query["companyId"])
	assert.Equal(t, "Rotterdam", rec.query["startPoint"])
	assert.Equal(t, "2", rec.query["pageNo"])
	assert.Equal(t, "20", rec.query["pageSize"])

	_, hasEnd := rec.query["endPoint"]
	assert.False(t, hasEnd)
}

func TestNoticesClient(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/system/notice/page", map[string]interface{}{
		"list":  []map[string]interface{}{{"id": 1, "title": "Maintenance window", "status": 1}},
		"total": 1,
	})
	rec.respond("/com/company-notice/page", map[string]interface{}{
		"list":  []map[string]interface{}{{"id": 2, "companyId": 4, "title": "Holiday schedule", "status": 1}},
		"total": 1,
	})
	rec.respond("/com/company-notice/get", map[string]interface{}{"id": 2, "title": "Holiday schedule", "status": 1})

	notices := NewNoticesClient(newTestPipeline(rec, "tok"))

	page, err := notices.Page(context.Background(), waybill.NoticePageParams{Status: 1})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance window", page.List[0].Title)
	assert.Equal(t, "1", rec.query["status"])
	assert.Empty(t, rec.auth)

	companyPage, err := notices.CompanyPage(context.Background(), waybill.NoticePageParams{CompanyID: 4})
	require.NoError(t, err)
	assert.Equal(t, "Holiday schedule", companyPage.List[0].Title)
	assert.Equal(t, "4", rec.query["companyId"])

	notice, err := notices.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), notice.ID)
	assert.Equal(t, "Bearer tok", rec.auth)
}

func TestBannersClient(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/system/banner/list", []map[string]interface{}{{"id": 1, "picUrl": "https://cdn/x.png"}})
	rec.respond("/com/company-banner/list", []map[string]interface{}{{"id": 2, "picUrl": "https://cdn/y.png"}})
	rec.respond("/com/ad-info/innerCompanyAdList", []map[string]interface{}{{"id": 3, "picUrl": "https://cdn/z.png"}})

	banners := NewBannersClient(newTestPipeline(rec, ""))

	home, err := banners.HomeBanners(context.Background())
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, "APP", rec.query["type"])

	company, err := banners.CompanyBanners(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, company, 1)
	assert.Equal(t, "4", rec.query["companyId"])

	ads, err := banners.AdList(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, ads, 1)

	_, hasCompany := rec.query["companyId"]
	assert.False(t, hasCompany)
}

func TestMessagesClient(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/system/notify-message/my-page", map[string]interface{}{
		"list":  []map[string]interface{}{{"id": 1, "content": "Your parcel arrived", "readStatus": false}},
		"total": 1,
	})
	rec.respond("/system/notify-message/get", map[string]interface{}{"id": 1, "content": "Your parcel arrived", "readStatus": true})
	rec.respond("/system/notify-message/update-read", true)

	messages := NewMessagesClient(newTestPipeline(rec, "tok"))

	page, err := messages.MyPage(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, page.List[0].Read)
	assert.Equal(t, "Bearer tok", rec.auth)

	message, err := messages.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, message.Read)

	ok, err := messages.MarkRead(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.JSONEq(t, `{"ids":[1,2]}`, string(rec.body))
}

func TestDictClient_GetByValue(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/system/dict-data/get-by-value", map[string]interface{}{
		"id": 1, "dictType": "waybill_status", "label": "In transit", "value": "2",
	})

	dict := NewDictClient(newTestPipeline(rec, ""))

	entry, err := dict.GetByValue(context.Background(), "waybill_status", "2")
	require.NoError(t, err)
	assert.Equal(t, "In transit", entry.Label)
	assert.Equal(t, "waybill_status", rec.query["dictType"])
	assert.Equal(t, "2", rec.query["value"])
}

func TestFetch_NullPayload(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/waybill/searchByCompanyId", nil)

	waybills := NewWaybillsClient(newTestPipeline(rec, ""))

	result, err := waybills.SearchByCompany(context.Background(), "WB-1", 2)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFetch_DecodeError(t *testing.T) {
	t.Parallel()

	rec := newAPIRecorder(t)
	rec.respond("/com/waybill/search", map[string]interface{}{"not": "a list"})

	waybills := NewWaybillsClient(newTestPipeline(rec, "tok"))

	_, err := waybills.Search(context.Background(), "WB-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response from /com/waybill/search")
}
