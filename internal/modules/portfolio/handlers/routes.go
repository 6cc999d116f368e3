package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", h.HandleGetPortfolio)
		r.Post("/add", h.HandleAddPosition)
		r.Put("/update/{ticker}", h.HandleUpdatePosition)
		r.Delete("/delete/{ticker}", h.HandleDeletePosition)
		r.Post("/clear", h.HandleClearPortfolio)

		// Dashboard helpers
		r.Post("/sample", h.HandleLoadSample)
		r.Get("/export", h.HandleExport)
		r.Post("/import", h.HandleImport)
	})
}
