package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ercot-lmp-viewer/internal/api/models"
	"ercot-lmp-viewer/internal/data"
	"ercot-lmp-viewer/internal/export"
	"ercot-lmp-viewer/internal/model"
	"ercot-lmp-viewer/internal/series"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingService struct{}

func (failingService) BuildSeries(context.Context, series.Query) (*model.ResultTable, error) {
	return nil, errors.New("upstream unavailable")
}

func newTestRouter(svc series.Service) *gin.Engine {
	if svc == nil {
		svc = series.NewBuilder(data.NewSyntheticSource(), nil)
	}
	return NewRouter(Options{
		Service:      svc,
		NodesFile:    "testdata/does-not-exist.json",
		DefaultNode:  "HB_HOUSTON",
		SourceNodes:  []string{"HB_HOUSTON", "RN_TEST_1"},
		MaxRangeDays: 31,
		CORSOrigins:  []string{"*"},
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		}),
	})
}

func do(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp.Error.Code
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(nil)

	w := do(t, r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID header")
	}

	w = do(t, r, "/metrics")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "# metrics") {
		t.Fatalf("metrics status = %d body = %q", w.Code, w.Body.String())
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestGetSeriesBoth(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, "/api/v1/series?node=HB_HOUSTON&market=Both&start_date=2024-01-01&end_date=2024-01-02")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var resp models.SeriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Node != "HB_HOUSTON" || resp.Market != "Both" {
		t.Errorf("node/market = %s/%s", resp.Node, resp.Market)
	}
	if resp.TotalRows != 96 {
		t.Errorf("total rows = %d, want 96", resp.TotalRows)
	}
	if len(resp.Series) != 2 || resp.Series[0].Market != "DAM" || resp.Series[1].Market != "RTM" {
		t.Fatalf("unexpected series layout: %+v", resp.Series)
	}
	for _, s := range resp.Series {
		if len(s.Points) != 48 || s.Summary.Count != 48 {
			t.Errorf("%s: points = %d summary count = %d", s.Market, len(s.Points), s.Summary.Count)
		}
	}
	if !resp.Series[0].Points[0].Timestamp.Equal(resp.Series[1].Points[0].Timestamp) {
		t.Errorf("series do not share an axis")
	}
	if resp.Comparison == nil || resp.Comparison.Count != 48 {
		t.Errorf("comparison = %+v, want 48 hours", resp.Comparison)
	}
	if resp.Timezone == "" {
		t.Errorf("timezone not reported")
	}
}

func TestGetSeriesSingleMarketHasNoComparison(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, "/api/v1/series?node=HB_NORTH&market=dam&start_date=2024-03-01&end_date=2024-03-01")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp models.SeriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Comparison != nil {
		t.Errorf("comparison present for single market")
	}
	if len(resp.Series) != 1 || len(resp.Series[0].Points) != 24 {
		t.Errorf("want one series of 24 points, got %+v", resp.Series)
	}
}

func TestSeriesErrors(t *testing.T) {
	r := newTestRouter(nil)
	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"missing dates", "/api/v1/series?node=HB_HOUSTON&market=DAM", http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad start date", "/api/v1/series?node=HB_HOUSTON&market=DAM&start_date=01/01/2024&end_date=2024-01-02", http.StatusBadRequest, "INVALID_DATE"},
		{"inverted range", "/api/v1/series?node=HB_HOUSTON&market=DAM&start_date=2024-01-02&end_date=2024-01-01", http.StatusBadRequest, "INVALID_RANGE"},
		{"blank node", "/api/v1/series?node=%20&market=DAM&start_date=2024-01-01&end_date=2024-01-01", http.StatusBadRequest, "INVALID_NODE"},
		{"empty market", "/api/v1/series?node=HB_HOUSTON&start_date=2024-01-01&end_date=2024-01-01", http.StatusBadRequest, "EMPTY_SELECTION"},
		{"unknown market", "/api/v1/series?node=HB_HOUSTON&market=XYZ&start_date=2024-01-01&end_date=2024-01-01", http.StatusBadRequest, "EMPTY_SELECTION"},
		{"too large", "/api/v1/series?node=HB_HOUSTON&market=DAM&start_date=2024-01-01&end_date=2024-03-01", http.StatusBadRequest, "RANGE_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.target)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			if code := errorCode(t, w); code != tt.code {
				t.Errorf("code = %s, want %s", code, tt.code)
			}
		})
	}
}

func TestBlankNodeReportedBeforeSelection(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, "/api/v1/series?node=&market=&start_date=2024-01-02&end_date=2024-01-01")
	if code := errorCode(t, w); code != "INVALID_NODE" {
		t.Errorf("code = %s, want INVALID_NODE", code)
	}
}

func TestSourceFailureIsBadGateway(t *testing.T) {
	r := newTestRouter(failingService{})
	w := do(t, r, "/api/v1/series?node=HB_HOUSTON&market=DAM&start_date=2024-01-01&end_date=2024-01-01")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if code := errorCode(t, w); code != "DATA_SOURCE_ERROR" {
		t.Errorf("code = %s", code)
	}
}

func TestExportCSV(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, "/api/v1/series/export?node=HB_WEST&market=DAM,RTM&start_date=2024-01-01&end_date=2024-01-01")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	want := `attachment; filename="HB_WEST_Both_LMP_2024-01-01_to_2024-01-01.csv"`
	if cd := w.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("content disposition = %q, want %q", cd, want)
	}

	rows, err := export.ReadCSV(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 48 {
		t.Errorf("rows = %d, want 48", len(rows))
	}
}

func TestGetChart(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, "/api/v1/series/chart?node=HB_HOUSTON&market=Both&start_date=2024-01-01&end_date=2024-01-02&width=640&height=320")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 320 {
		t.Errorf("image size = %dx%d", b.Dx(), b.Dy())
	}

	w = do(t, r, "/api/v1/series/chart?node=HB_HOUSTON&market=DAM&start_date=2024-01-01&end_date=2024-01-01&width=wide")
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_REQUEST" {
		t.Errorf("bad width: status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestListMarketsAndNodes(t *testing.T) {
	r := newTestRouter(nil)

	w := do(t, r, "/api/v1/markets")
	var markets struct {
		Markets []models.MarketInfo `json:"markets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &markets); err != nil {
		t.Fatalf("decode markets: %v", err)
	}
	if len(markets.Markets) != 3 || markets.Markets[0].ID != "DAM" {
		t.Errorf("markets = %+v", markets.Markets)
	}

	w = do(t, r, "/api/v1/nodes")
	if w.Code != http.StatusOK {
		t.Fatalf("nodes status = %d", w.Code)
	}
	var nodes struct {
		Nodes       []models.NodeInfo `json:"nodes"`
		DefaultNode string            `json:"default_node"`
		Count       int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &nodes); err != nil {
		t.Fatalf("decode nodes: %v", err)
	}
	if nodes.DefaultNode != "HB_HOUSTON" {
		t.Errorf("default node = %q", nodes.DefaultNode)
	}
	if nodes.Count != len(nodes.Nodes) || nodes.Count != len(data.DefaultNodes().Nodes)+1 {
		t.Errorf("count = %d, nodes = %d", nodes.Count, len(nodes.Nodes))
	}
	if last := nodes.Nodes[len(nodes.Nodes)-1]; last.ID != "RN_TEST_1" {
		t.Errorf("source node not appended, last = %+v", last)
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, "/api/v1/nope")
	if w.Code != http.StatusNotFound || errorCode(t, w) != "NOT_FOUND" {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}
