package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketAnalyzer/internal/fetcher"
	"MarketAnalyzer/internal/metrics"
	"MarketAnalyzer/internal/model"
	"MarketAnalyzer/internal/service"
	"MarketAnalyzer/internal/store"
)

func testSeries(n int) []model.SeriesPoint {
	now := time.Now().UTC()
	pts := make([]model.SeriesPoint, n)
	for i := 0; i < n; i++ {
		pts[i] = model.SeriesPoint{
			Date:  now.AddDate(0, 0, -(n - 1 - i)).Format("2006-01-02"),
			Value: 100 + float64(i),
		}
	}
	return pts
}

func newTestServer(t *testing.T, f fetcher.Fetcher) *Server {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	m := metrics.New()
	svc := service.New(st, f, m, service.Options{})
	return NewServer(svc, m)
}

func TestHandlePrices_OK(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Prices: &model.PricePayload{
			Symbols: []string{"SPY", "TIP"},
			Series: map[string][]model.SeriesPoint{
				"SPY": testSeries(25),
				"TIP": testSeries(25),
			},
		},
	}
	srv := newTestServer(t, mock)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prices?tickers=SPY,TIP&period=11mo&interval=1d", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body model.PricePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"SPY", "TIP"}, body.Symbols)
	assert.Len(t, body.Series["SPY"], 25)
}

func TestHandlePrices_DefaultsApplied(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Prices: &model.PricePayload{
			Symbols: []string{"SPY", "TIP"},
			Series: map[string][]model.SeriesPoint{
				"SPY": testSeries(5),
				"TIP": testSeries(5),
			},
		},
	}
	srv := newTestServer(t, mock)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prices", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.PricePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Default ticker set is SPY,TIP.
	assert.Contains(t, body.Series, "SPY")
	assert.Contains(t, body.Series, "TIP")
}

func TestHandlePrices_FetchFailure(t *testing.T) {
	srv := newTestServer(t, &fetcher.MockFetcher{Err: errors.New("no data for ticker FOO")})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prices?tickers=FOO", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	assert.Contains(t, body.Message, "no data for ticker FOO")
}

func TestHandleDividendYield_OK(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Yield: &model.YieldPayload{Symbol: "SPY", Series: testSeries(12)},
	}
	srv := newTestServer(t, mock)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dividend-yield?period=11mo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.YieldPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SPY", body.Symbol)
	assert.Len(t, body.Series, 12)
}

func TestHandleRisk_OK(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Prices: &model.PricePayload{
			Symbols: []string{"SPY", "TIP"},
			Series: map[string][]model.SeriesPoint{
				"SPY": testSeries(40),
				"TIP": testSeries(40),
			},
		},
		Yield: &model.YieldPayload{Symbol: "SPY", Series: testSeries(12)},
	}
	srv := newTestServer(t, mock)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/risk", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var report model.RiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, model.MomentumUp, report.SPYMomentum)
	assert.False(t, report.RiskA)
	// testSeries values are far above the yield threshold.
	assert.False(t, report.RiskB)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &fetcher.MockFetcher{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePrices_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fetcher.MockFetcher{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/prices", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
