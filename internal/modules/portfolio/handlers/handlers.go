// Package handlers provides HTTP handlers for portfolio management.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies; an export of thousands of positions fits comfortably
const maxBodyBytes = 4 << 20

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.PortfolioService
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.PortfolioService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetPortfolio returns every stored position with the portfolio summary
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	positions, summary := h.service.GetPortfolio()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"portfolio": positions,
		"summary":   summary,
	})
}

// HandleAddPosition validates the body, computes the position and appends it
func (h *Handler) HandleAddPosition(w http.ResponseWriter, r *http.Request) {
	input, err := h.readInput(w, r)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	pos, err := h.service.AddPosition(input)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"position": pos,
	})
}

// HandleUpdatePosition replaces the first position matching the path ticker
func (h *Handler) HandleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	input, err := h.readInput(w, r)
	if err != nil {
		// An unknown ticker is reported before a malformed body
		if !h.service.HasPosition(ticker) {
			err = &domain.NotFoundError{Ticker: ticker}
		}
		h.writeFailure(w, err)
		return
	}

	pos, err := h.service.UpdatePosition(ticker, input)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"position": pos,
	})
}

// HandleDeletePosition removes every position matching the path ticker
func (h *Handler) HandleDeletePosition(w http.ResponseWriter, r *http.Request) {
	h.service.DeletePosition(chi.URLParam(r, "ticker"))
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// HandleClearPortfolio removes all positions
func (h *Handler) HandleClearPortfolio(w http.ResponseWriter, r *http.Request) {
	h.service.ClearPortfolio()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// HandleLoadSample replaces the portfolio with generated demo positions
func (h *Handler) HandleLoadSample(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.LoadSample()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load sample portfolio")
		h.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"portfolio": positions,
		"summary":   portfolio.Summarize(positions),
	})
}

// HandleExport returns the raw inputs of every position as json or msgpack
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = portfolio.FormatJSON
	}

	data, contentType, err := portfolio.EncodeDocument(portfolio.NewExportDocument(h.service.Export()), format)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio.%s", format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to write export")
	}
}

// HandleImport replaces the portfolio with a previously exported document
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeFailure(w, &domain.ValidationError{Message: "could not read request body"})
		return
	}

	format := portfolio.FormatForContentType(r.Header.Get("Content-Type"))
	doc, err := portfolio.DecodeDocument(body, format)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	positions, err := h.service.Import(doc.Positions, format)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"portfolio": positions,
		"summary":   portfolio.Summarize(positions),
	})
}

func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (portfolio.PositionInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return portfolio.PositionInput{}, &domain.ValidationError{Message: "could not read request body"}
	}
	return portfolio.ParseInput(body)
}

// writeFailure maps an error onto the {success: false, error} envelope
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if domain.IsNotFound(err) {
		status = http.StatusNotFound
	} else if !domain.IsValidation(err) {
		h.log.Warn().Err(err).Msg("Unclassified portfolio error")
	}

	h.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
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
