package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all historical data routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/historical/{ticker}", h.HandleGetHistory)
}
