package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-simulator/internal/api/models"
	"pricing-simulator/internal/config"
	"pricing-simulator/internal/data"
)

const retailCSV = "InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n" +
	"1,W1,Widget,40,3/1/2011 10:00,10,1,United Kingdom\n" +
	"2,W1,Widget,60,4/2/2011 10:00,10,1,United Kingdom\n" +
	"3,G1,Gadget,10,3/5/2011 10:00,2,1,United Kingdom\n" +
	"4,G1,Gadget,abc,3/6/2011 10:00,2,1,United Kingdom\n"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, content string, opts ...func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Server.StaticDir = ""
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "online_retail.csv")
	for _, opt := range opts {
		opt(cfg)
	}
	if content != "" {
		require.NoError(t, os.WriteFile(cfg.Dataset.Path, []byte(content), 0o644))
	}
	return NewRouter(cfg, data.NewDatasetCache(data.NewLoader(cfg.Dataset.LoaderOptions())))
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t, retailCSV), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSimulate_Defaults(t *testing.T) {
	w := do(t, newTestRouter(t, retailCSV), http.MethodPost, "/api/v1/simulate", `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	decode(t, w, &resp)
	assert.InDelta(t, 30.0, resp.Params.ProfitMarginPct, 1e-9)
	assert.Equal(t, 0.0, resp.Params.Elasticity)
	assert.Equal(t, "per_transaction", resp.Allocation)

	// At the baseline both scenarios agree.
	assert.InDelta(t, 306.0, resp.Totals.Original, 1e-9)
	assert.InDelta(t, 306.0, resp.Totals.Simulated, 1e-9)
	assert.Equal(t, "R$ 306.00", resp.Totals.OriginalDisplay)
	assert.Empty(t, resp.Products)

	require.Len(t, resp.Monthly, 4)
	assert.Equal(t, models.MonthlyProfit{Month: "2011-03", Scenario: "Original", EstimatedProfit: resp.Monthly[0].EstimatedProfit}, resp.Monthly[0])
	assert.InDelta(t, 306.0, resp.Monthly[0].EstimatedProfit, 1e-9)
	assert.Equal(t, "Simulado", resp.Monthly[1].Scenario)
	assert.Equal(t, "2011-04", resp.Monthly[2].Month)
	assert.InDelta(t, 300.0, resp.Monthly[2].EstimatedProfit, 1e-9)
}

func TestSimulate_WithParams(t *testing.T) {
	body := `{"profit_margin_pct": 50, "elasticity": 0.2, "include_products": true}`
	w := do(t, newTestRouter(t, retailCSV), http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	decode(t, w, &resp)
	assert.InDelta(t, 306.0, resp.Totals.Original, 1e-9)
	assert.InDelta(t, 465.12, resp.Totals.Simulated, 1e-9)
	assert.InDelta(t, 159.12, resp.Totals.Delta, 1e-9)
	assert.Equal(t, "R$ 465.12", resp.Totals.SimulatedDisplay)

	require.Len(t, resp.Products, 4)
	assert.Equal(t, "Gadget", resp.Products[0].Description)
	assert.Equal(t, "Original", resp.Products[0].Scenario)
	assert.Equal(t, "Simulado", resp.Products[3].Scenario)
	assert.InDelta(t, 91.2, resp.Products[3].AdjustedQuantity, 1e-9)

	assert.Equal(t, "Lucro Mensal Estimado por Cenário", resp.Chart.Title)
	assert.Equal(t, "group", resp.Chart.BarMode)
	assert.Equal(t, []string{"2011-03", "2011-04"}, resp.Chart.Months)
	require.Len(t, resp.Chart.Series, 2)
	assert.Equal(t, "Original", resp.Chart.Series[0].Name)
	assert.InDeltaSlice(t, []float64{306, 300}, resp.Chart.Series[0].Values, 1e-9)
	assert.InDeltaSlice(t, []float64{465.12, 456}, resp.Chart.Series[1].Values, 1e-9)
}

func TestSimulate_QuantityShare(t *testing.T) {
	body := `{"allocation": "quantity_share"}`
	w := do(t, newTestRouter(t, retailCSV), http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	decode(t, w, &resp)
	assert.Equal(t, "quantity_share", resp.Allocation)
	require.Len(t, resp.Monthly, 4)
	assert.InDelta(t, 126.0, resp.Monthly[0].EstimatedProfit, 1e-9) // 40% of Widget + all of Gadget
	assert.InDelta(t, 180.0, resp.Monthly[2].EstimatedProfit, 1e-9)
}

func TestSimulate_InvalidRequest(t *testing.T) {
	router := newTestRouter(t, retailCSV)
	tests := []struct {
		name string
		body string
	}{
		{name: "margin above range", body: `{"profit_margin_pct": 150}`},
		{name: "negative margin", body: `{"profit_margin_pct": -5}`},
		{name: "elasticity above range", body: `{"elasticity": 1.5}`},
		{name: "unknown allocation", body: `{"allocation": "weighted"}`},
		{name: "wrong type", body: `{"elasticity": "high"}`},
		{name: "malformed json", body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/api/v1/simulate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
		})
	}
}

func TestSimulate_DatasetMissing(t *testing.T) {
	w := do(t, newTestRouter(t, ""), http.MethodPost, "/api/v1/simulate", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "DATASET_LOAD_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "path")
}

func TestSimulate_DatasetMissingColumn(t *testing.T) {
	csv := "InvoiceNo,Description,Quantity,UnitPrice\n1,Widget,1,1\n"
	w := do(t, newTestRouter(t, csv), http.MethodPost, "/api/v1/simulate", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "InvoiceDate")
}

func TestCompare(t *testing.T) {
	body := `{"variations": [
		{"name": "baseline"},
		{"name": "premium", "profit_margin_pct": 50, "elasticity": 0.2}
	]}`
	w := do(t, newTestRouter(t, retailCSV), http.MethodPost, "/api/v1/simulate/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	decode(t, w, &resp)
	require.Len(t, resp.Comparison, 2)
	assert.Equal(t, "baseline", resp.Comparison[0].Name)
	assert.InDelta(t, 0.0, resp.Comparison[0].Totals.Delta, 1e-9)
	assert.Equal(t, "premium", resp.Comparison[1].Name)
	assert.InDelta(t, 50.0, resp.Comparison[1].Params.ProfitMarginPct, 1e-9)
	assert.InDelta(t, 465.12, resp.Comparison[1].Totals.Simulated, 1e-9)
}

func TestCompare_Invalid(t *testing.T) {
	router := newTestRouter(t, retailCSV)
	for _, body := range []string{
		`{"variations": []}`,
		`{}`,
		`{"variations": [{"profit_margin_pct": 10}]}`,
		`{"variations": [{"name": "x", "elasticity": 3}]}`,
	} {
		w := do(t, router, http.MethodPost, "/api/v1/simulate/compare", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRank(t *testing.T) {
	router := newTestRouter(t, retailCSV)

	w := do(t, router, http.MethodGet, "/api/v1/rank?profit_margin_pct=50&elasticity=0.2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.RankResponse
	decode(t, w, &resp)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "Widget", resp.Rankings[0].Description)
	assert.InDelta(t, 156.0, resp.Rankings[0].Delta, 1e-9)
	assert.Equal(t, "Gadget", resp.Rankings[1].Description)
	assert.InDelta(t, 3.12, resp.Rankings[1].Delta, 1e-9)

	w = do(t, router, http.MethodGet, "/api/v1/rank?profit_margin_pct=50&elasticity=0.2&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = models.RankResponse{}
	decode(t, w, &resp)
	assert.Len(t, resp.Rankings, 1)

	w = do(t, router, http.MethodGet, "/api/v1/rank?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, router, http.MethodGet, "/api/v1/rank?elasticity=2", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParameters(t *testing.T) {
	w := do(t, newTestRouter(t, retailCSV), http.MethodGet, "/api/v1/parameters", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Parameters  []models.ParameterInfo `json:"parameters"`
		Allocation  string                 `json:"allocation"`
		Allocations []string               `json:"allocations"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Parameters, 2)
	assert.Equal(t, "profit_margin_pct", resp.Parameters[0].Name)
	assert.Equal(t, "Margem de Lucro (%)", resp.Parameters[0].Label)
	assert.Equal(t, 100.0, resp.Parameters[0].Max)
	assert.Equal(t, 5.0, resp.Parameters[0].Step)
	assert.Equal(t, 30.0, resp.Parameters[0].Default)
	assert.Equal(t, "elasticity", resp.Parameters[1].Name)
	assert.Equal(t, 0.01, resp.Parameters[1].Step)
	assert.Equal(t, "per_transaction", resp.Allocation)
	assert.Equal(t, []string{"per_transaction", "quantity_share"}, resp.Allocations)
}

func TestDataset(t *testing.T) {
	w := do(t, newTestRouter(t, retailCSV), http.MethodGet, "/api/v1/dataset", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.DatasetInfo
	decode(t, w, &resp)
	assert.Equal(t, 4, resp.Rows)
	assert.Equal(t, 3, resp.Transactions)
	assert.Equal(t, 2, resp.Products)
	assert.Equal(t, 1, resp.Dropped.NonNumeric)
	assert.Equal(t, 1, resp.Dropped.Total)
	assert.Equal(t, "2011-03", resp.FirstMonth)
	assert.Equal(t, "2011-04", resp.LastMonth)
	assert.Len(t, resp.Hash, 64)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, retailCSV)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/simulate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, retailCSV)
	do(t, router, http.MethodPost, "/api/v1/simulate", `{}`)

	w := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "pricing_http_requests_total"))
	assert.True(t, strings.Contains(body, "pricing_simulation_runs_total"))
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, retailCSV)

	w := do(t, router, http.MethodGet, "/health", "")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, retailCSV, func(c *config.Config) {
		c.Server.RateLimit = 0.001
		c.Server.RateBurst = 1
	})

	w := do(t, router, http.MethodGet, "/api/v1/parameters", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/parameters", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp models.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)

	// Outside /api/v1 is not limited.
	w = do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
