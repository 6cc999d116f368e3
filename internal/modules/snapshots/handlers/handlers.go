// Package handlers provides HTTP handlers for portfolio snapshots.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aristath/folio/internal/modules/snapshots"
	"github.com/rs/zerolog"
)

// Handler handles snapshot HTTP requests
type Handler struct {
	recorder *snapshots.Recorder
	log      zerolog.Logger
}

// NewHandler creates a new snapshot handler
func NewHandler(recorder *snapshots.Recorder, log zerolog.Logger) *Handler {
	return &Handler{
		recorder: recorder,
		log:      log.With().Str("handler", "snapshots").Logger(),
	}
}

// HandleList handles GET /api/snapshots?limit=N
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": h.recorder.List(limit),
	})
}

// HandleLatest handles GET /api/snapshots/latest
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.recorder.Latest()
	if !ok {
		h.writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "No snapshots recorded yet",
		})
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// HandleRecord handles POST /api/snapshots, taking a snapshot immediately
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	snap := h.recorder.Record()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"snapshot": snap,
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
