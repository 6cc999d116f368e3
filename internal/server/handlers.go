package server

import (
	"encoding/json"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/folio/pkg/embedded"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"service": "folio",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// setupDashboardRoutes serves the embedded dashboard and its assets
func (s *Server) setupDashboardRoutes(r chi.Router) {
	frontendFS, err := fs.Sub(embedded.Files, "frontend/dist")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create frontend filesystem from embedded files")
		return
	}

	assetsFS, err := fs.Sub(frontendFS, "assets")
	if err != nil {
		s.log.Warn().Err(err).Msg("Frontend assets directory not found in embedded files")
	} else {
		fileServer := http.FileServer(http.FS(assetsFS))
		r.Handle("/assets/*", http.StripPrefix("/assets/", assetsHandler(fileServer)))
	}

	dashboard := s.dashboardHandler(frontendFS)
	r.Get("/", dashboard)

	// Unknown non-API paths fall back to the dashboard
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/assets/") {
			http.NotFound(w, r)
			return
		}
		dashboard(w, r)
	})
}

// dashboardHandler serves index.html from the embedded filesystem
func (s *Server) dashboardHandler(frontendFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexFile, err := frontendFS.Open("index.html")
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to open embedded index.html")
			http.Error(w, "Frontend not available", http.StatusInternalServerError)
			return
		}
		defer indexFile.Close()

		data, err := io.ReadAll(indexFile)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to read embedded index.html")
			http.Error(w, "Frontend not available", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(data); err != nil {
			s.log.Error().Err(err).Msg("Failed to write index.html response")
		}
	}
}

// assetsHandler wraps the file server to set correct MIME types
func assetsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ext := filepath.Ext(r.URL.Path)

		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			switch ext {
			case ".js":
				contentType = "application/javascript"
			case ".css":
				contentType = "text/css"
			case ".svg":
				contentType = "image/svg+xml"
			default:
				contentType = "application/octet-stream"
			}
		}
		w.Header().Set("Content-Type", contentType)

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
