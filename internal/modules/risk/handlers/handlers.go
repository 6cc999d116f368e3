// Package handlers provides HTTP handlers for portfolio risk metrics.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/rs/zerolog"
)

// MetricsProvider computes risk metrics over the current portfolio
type MetricsProvider interface {
	GetRiskMetrics() portfolio.RiskMetrics
}

// Handler handles risk metrics HTTP requests
type Handler struct {
	provider MetricsProvider
	log      zerolog.Logger
}

// NewHandler creates a new risk metrics handler
func NewHandler(provider MetricsProvider, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		log:      log.With().Str("handler", "risk").Logger(),
	}
}

// HandleGetRiskMetrics handles GET /api/risk-metrics
func (h *Handler) HandleGetRiskMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.provider.GetRiskMetrics())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		status = http.StatusInternalServerError
		body = []byte(`{"success":false,"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log.Debug().Err(err).Msg("Failed to write JSON response")
	}
}
