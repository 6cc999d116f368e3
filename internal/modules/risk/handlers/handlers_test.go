package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	metrics portfolio.RiskMetrics
}

func (s stubProvider) GetRiskMetrics() portfolio.RiskMetrics {
	return s.metrics
}

func serve(t *testing.T, provider MetricsProvider) map[string]float64 {
	t.Helper()
	router := chi.NewRouter()
	NewHandler(provider, zerolog.Nop()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/risk-metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleGetRiskMetrics_EmptyPortfolio(t *testing.T) {
	body := serve(t, stubProvider{})

	expected := map[string]float64{
		"volatility":         0,
		"sharpe_ratio":       0,
		"max_gain":           0,
		"max_loss":           0,
		"avg_return":         0,
		"positive_positions": 0,
		"negative_positions": 0,
	}
	assert.Equal(t, expected, body)
}

func TestHandleGetRiskMetrics_FromService(t *testing.T) {
	service := portfolio.NewPortfolioService(portfolio.NewStore(), portfolio.Calculator{}, nil, nil, zerolog.Nop())
	_, err := service.AddPosition(portfolio.PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)
	_, err = service.AddPosition(portfolio.PositionInput{Ticker: "MSFT", Shares: 5, PurchasePrice: 200, CurrentPrice: 180})
	require.NoError(t, err)

	body := serve(t, service)

	assert.Equal(t, 50.0, body["max_gain"])
	assert.Equal(t, -10.0, body["max_loss"])
	assert.Equal(t, 20.0, body["avg_return"])
	assert.Equal(t, 42.43, body["volatility"])
	assert.Equal(t, 0.47, body["sharpe_ratio"])
	assert.Equal(t, 1.0, body["positive_positions"])
	assert.Equal(t, 1.0, body["negative_positions"])
}

func TestHandleGetRiskMetrics_UnencodableMetrics(t *testing.T) {
	router := chi.NewRouter()
	NewHandler(stubProvider{metrics: portfolio.RiskMetrics{Volatility: math.Inf(1)}}, zerolog.Nop()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/risk-metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, json.Valid(rec.Body.Bytes()), rec.Body.String())
}
