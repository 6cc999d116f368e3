// Package handlers provides HTTP handlers for synthetic price history.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/aristath/folio/internal/modules/historical"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles historical data HTTP requests
type Handler struct {
	generator   *historical.Generator
	defaultDays int
	log         zerolog.Logger
}

// NewHandler creates a new historical data handler
func NewHandler(generator *historical.Generator, defaultDays int, log zerolog.Logger) *Handler {
	return &Handler{
		generator:   generator,
		defaultDays: defaultDays,
		log:         log.With().Str("handler", "historical").Logger(),
	}
}

// HandleGetHistory handles GET /api/historical/{ticker}?days=N&sma=M
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "ticker")))

	// A days value that is not an integer falls back to the default
	days := h.defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	series := h.generator.Generate(ticker, days)

	if raw := r.URL.Query().Get("sma"); raw != "" {
		if period, err := strconv.Atoi(raw); err == nil && period > 0 {
			series = series.WithSMA(period)
		}
	}

	h.log.Debug().Str("ticker", ticker).Int("days", len(series.Dates)).Msg("Generated price history")
	h.writeJSON(w, http.StatusOK, series)
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
