package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jekabolt/salesboard/internal/dashboard"
	"github.com/jekabolt/salesboard/internal/dependency/mocks"
	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/jekabolt/salesboard/internal/kpi"
	"github.com/jekabolt/salesboard/internal/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKey = "s3cret"

var november = entity.Month{Year: 2025, Month: time.November}

type testServer struct {
	s  *Server
	h  http.Handler
	wh *mocks.Warehouse
	tg *mocks.Targets
	db *fakeDB
}

type fakeDB struct{ err error }

func (f *fakeDB) Ping(context.Context) error { return f.err }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	wh := mocks.NewWarehouse(t)
	tg := mocks.NewTargets(t)
	m := metrics.NewManager()

	dc := dashboard.DefaultConfig()
	dc.Timezone = "UTC"
	svc, err := dashboard.New(&dc, wh, tg, m)
	require.NoError(t, err)

	db := &fakeDB{}
	s := New(
		&Config{AllowedOrigins: []string{"https://board.example.com"}},
		&AdminConfig{Key: testKey, RateLimitWindow: time.Minute, RateLimitMax: 3},
		svc, wh, tg, db, m,
	)
	t.Cleanup(s.limiter.Stop)
	return &testServer{s: s, h: s.Router(), wh: wh, tg: tg, db: db}
}

func (ts *testServer) do(method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	for k, v := range hdr {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.h.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (ts *testServer) expectRefresh() {
	ts.wh.EXPECT().MonthToDate(mock.Anything, mock.Anything).
		Return(&entity.MonthToDate{Total: dec(1000), East: dec(600), West: dec(400)}, nil).Once()
	ts.wh.EXPECT().RepTable(mock.Anything, mock.Anything).Return([]entity.RepAggregate{
		{Rep: "A", Sales: dec(400), SalesCount: 2},
		{Rep: "B", Sales: dec(600), SalesCount: 3},
	}, nil).Once()
	ts.wh.EXPECT().Highlights(mock.Anything, mock.Anything, mock.Anything).Return(&entity.Highlights{}, nil).Once()
	ts.wh.EXPECT().SalesLog(mock.Anything, mock.Anything).Return([]kpi.RawRow{
		{"order_total_net": 600, "source": "East", "salesperson": "B", "customer": "Acme"},
		{"order_total_net": 400, "source": "west", "salesperson": "A", "customer": "Bolt"},
	}, nil).Once()
	ts.tg.EXPECT().ListTargets(mock.Anything, mock.Anything).Return(nil, nil).Once()
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestStatus_StorageDown(t *testing.T) {
	ts := newTestServer(t)
	ts.db.err = errors.New("dial tcp 10.0.0.7:3306: connect: connection refused")

	w := ts.do(http.MethodGet, "/status", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "target storage unreachable")
	assert.NotContains(t, body, "10.0.0.7")

	ts.db.err = nil
	w = ts.do(http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboard_NotLoaded(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decode(t, w)["error"], "not loaded")
	assert.False(t, ts.s.dash.LastViewed().IsZero())
}

func TestDashboard_RefreshThenServe(t *testing.T) {
	ts := newTestServer(t)
	ts.expectRefresh()

	w := ts.do(http.MethodPost, "/dashboard/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["refresh_id"])
	assert.NotContains(t, body, "last_error")

	w = ts.do(http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	reps, ok := body["reps"].([]any)
	require.True(t, ok)
	require.Len(t, reps, 2)
	assert.Equal(t, "B", reps[0].(map[string]any)["rep"])
	assert.Len(t, body["podium"], 2)
	assert.Len(t, body["cards"], 3)
	assert.NotContains(t, body, "SalesLog")

	w = ts.do(http.MethodGet, "/sales-log?source=EAST&salesperson=All", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].(map[string]any)["customer"])
	assert.Equal(t, []any{"east", "west"}, body["sources"])
	assert.Equal(t, []any{"A", "B"}, body["salespeople"])

	w = ts.do(http.MethodGet, "/sales-log?scope=West", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows = decode(t, w)["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bolt", rows[0].(map[string]any)["customer"])

	w = ts.do(http.MethodGet, "/sales-log?scope=nowhere", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["rows"], 2)
}

func TestDashboard_LastErrorRedacted(t *testing.T) {
	ts := newTestServer(t)
	ts.expectRefresh()
	w := ts.do(http.MethodPost, "/dashboard/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ts.wh.EXPECT().MonthToDate(mock.Anything, mock.Anything).Return(nil, errors.New("bq: project acme-data quota exceeded")).Once()
	ts.wh.EXPECT().RepTable(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	ts.wh.EXPECT().Highlights(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	ts.wh.EXPECT().SalesLog(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	ts.tg.EXPECT().ListTargets(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	w = ts.do(http.MethodPost, "/dashboard/refresh", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = ts.do(http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "upstream query failed", body["last_error"])
	assert.NotEmpty(t, body["error_at"])
	assert.NotContains(t, w.Body.String(), "acme-data")
}

func TestDashboard_RefreshFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.wh.EXPECT().MonthToDate(mock.Anything, mock.Anything).Return(nil, errors.New("bq: quota exceeded")).Once()
	ts.wh.EXPECT().RepTable(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	ts.wh.EXPECT().Highlights(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	ts.wh.EXPECT().SalesLog(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	ts.tg.EXPECT().ListTargets(mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	w := ts.do(http.MethodPost, "/dashboard/refresh", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "upstream query failed", decode(t, w)["error"])

	w = ts.do(http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "dashboard not loaded yet", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "quota")

	w = ts.do(http.MethodGet, "/sales-log", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMonthToDate(t *testing.T) {
	ts := newTestServer(t)
	ts.wh.EXPECT().MonthToDate(mock.Anything, november.First()).
		Return(&entity.MonthToDate{Total: dec(1000), East: dec(600), West: dec(300)}, nil).Once()

	w := ts.do(http.MethodGet, "/kpis/mtd?month=2025-11", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "2025-11", body["month"])
	assert.Equal(t, "1000", body["total_mtd"])
	assert.Equal(t, "300", body["west_mtd"])
}

func TestMonthToDate_BadMonth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/kpis/mtd?month=2025-13", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "YYYY-MM")
}

func TestRepTable(t *testing.T) {
	ts := newTestServer(t)
	ts.wh.EXPECT().RepTable(mock.Anything, november.First()).Return([]entity.RepAggregate{
		{Rep: "A", Sales: dec(500), SalesCount: 1},
		{Rep: "B", Sales: dec(1500), SalesCount: 3},
		{Rep: "C", Sales: dec(1000), SalesCount: 4},
	}, nil).Once()

	w := ts.do(http.MethodGet, "/rep-table?month=2025-11-01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reps := decode(t, w)["reps"].([]any)
	require.Len(t, reps, 3)
	first := reps[0].(map[string]any)
	assert.Equal(t, "B", first["rep"])
	assert.Equal(t, float64(1), first["position"])
	assert.Equal(t, 0.5, first["share"])
	assert.Equal(t, "500", first["aov"])
}

func TestHighlights_FinancialYear(t *testing.T) {
	ts := newTestServer(t)
	fy := civil.Date{Year: 2024, Month: time.July, Day: 1}
	ts.wh.EXPECT().Highlights(mock.Anything, civil.Date{Year: 2025, Month: time.March, Day: 1}, fy).
		Return(&entity.Highlights{LargestSaleMTD: entity.RepAmount{Rep: "B", Amount: dec(700)}}, nil).Once()

	w := ts.do(http.MethodGet, "/kpis/highlights?month=2025-03", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	largest := decode(t, w)["largest_sale_mtd"].(map[string]any)
	assert.Equal(t, "B", largest["rep"])
}

func TestTargets_Empty(t *testing.T) {
	ts := newTestServer(t)
	ts.tg.EXPECT().ListTargets(mock.Anything, november).Return(nil, nil).Once()

	w := ts.do(http.MethodGet, "/targets?month=2025-11", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rows":[]`)
}

func TestUpsert_Unauthorized(t *testing.T) {
	ts := newTestServer(t)
	body := `{"month":"2020-01","items":[{"scope":"org","key":"all","metric":"sales","target":1}]}`

	w := ts.do(http.MethodPost, "/targets/upsert", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/targets/upsert", body, map[string]string{adminKeyHeader: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpsert_OK(t *testing.T) {
	ts := newTestServer(t)
	ts.tg.EXPECT().UpsertTargets(mock.Anything, entity.Month{Year: 2020, Month: time.January}, "admin",
		mock.MatchedBy(func(items []entity.TargetItem) bool {
			return len(items) == 1 &&
				items[0].Scope == entity.TargetScopeOrg &&
				items[0].Metric == entity.MetricSales &&
				items[0].Target.Equal(dec(5000))
		})).Return(nil).Once()

	body := `{"month":"2020-01","items":[{"scope":"ORG","key":"all","metric":"Sales","target":5000}]}`
	w := ts.do(http.MethodPost, "/targets/upsert", body, map[string]string{adminKeyHeader: testKey})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, float64(1), resp["count"])
}

func TestUpsert_Invalid(t *testing.T) {
	ts := newTestServer(t)
	hdr := map[string]string{adminKeyHeader: testKey}

	w := ts.do(http.MethodPost, "/targets/upsert",
		`{"month":"2020-01","items":[{"scope":"org","key":"all","metric":"sales","target":-5}]}`, hdr)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Items.0.target")

	w = ts.do(http.MethodPost, "/targets/upsert", `{"month":`, hdr)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsert_RateLimited(t *testing.T) {
	ts := newTestServer(t)
	hdr := map[string]string{adminKeyHeader: "wrong", "X-Real-IP": "198.51.100.4"}
	body := `{"month":"2020-01","items":[]}`

	for i := range 3 {
		w := ts.do(http.MethodPost, "/targets/upsert", body, hdr)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, strconv.Itoa(2-i), w.Header().Get("X-RateLimit-Remaining"))
	}
	w := ts.do(http.MethodPost, "/targets/upsert", body, hdr)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// other callers keep their budget
	hdr["X-Real-IP"] = "198.51.100.5"
	w = ts.do(http.MethodPost, "/targets/upsert", body, hdr)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)
	preflight := func(origin string) *httptest.ResponseRecorder {
		return ts.do(http.MethodOptions, "/targets/upsert", "", map[string]string{
			"Origin":                        origin,
			"Access-Control-Request-Method": http.MethodPost,
		})
	}

	w := preflight("https://board.example.com")
	assert.Equal(t, "https://board.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.do(http.MethodGet, "/status", "", nil)

	w := ts.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `salesboard_http_requests_total{method="GET",route="/status",status_code="200"} 1`)
}

func TestValidAdminKey(t *testing.T) {
	assert.True(t, validAdminKey("k", "k"))
	assert.False(t, validAdminKey("k", "K"))
	assert.False(t, validAdminKey("", ""))
	assert.False(t, validAdminKey("k", ""))
}
