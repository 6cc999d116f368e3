// Package server provides the HTTP server and routing for folio.
package server

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/di"
	historicalhandlers "github.com/aristath/folio/internal/modules/historical/handlers"
	portfoliohandlers "github.com/aristath/folio/internal/modules/portfolio/handlers"
	riskhandlers "github.com/aristath/folio/internal/modules/risk/handlers"
	snapshothandlers "github.com/aristath/folio/internal/modules/snapshots/handlers"
)

// Version is reported by the health and status endpoints
const Version = "1.0.0"

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Container *di.Container // DI container with all services
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	container      *di.Container
	systemHandlers *SystemHandlers

	// Cancelled on shutdown so open event streams return
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	// Register common MIME types to ensure correct Content-Type headers
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		container: cfg.Container,
		systemHandlers: NewSystemHandlers(
			cfg.Container.PortfolioService,
			cfg.Container.Scheduler,
			cfg.Log,
		),
	}

	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the event streams stay open indefinitely
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return s.baseCtx },
	}

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// requestMiddleware applies to everything except the long-lived event streams
func (s *Server) requestMiddleware(r chi.Router) {
	r.Use(middleware.Timeout(60 * time.Second))

	// Compress responses
	if !s.cfg.DevMode {
		r.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Live event feeds
		r.Get("/events/stream", NewEventsStreamHandler(s.container.EventBus, s.log).ServeHTTP)
		r.Get("/events/ws", NewEventsWebSocketHandler(s.container.EventBus, s.cfg, s.log).ServeHTTP)

		r.Group(func(r chi.Router) {
			s.requestMiddleware(r)

			portfoliohandlers.NewHandler(s.container.PortfolioService, s.log).RegisterRoutes(r)
			riskhandlers.NewHandler(s.container.PortfolioService, s.log).RegisterRoutes(r)
			historicalhandlers.NewHandler(s.container.HistoryGenerator, s.cfg.HistoryDefaultDays, s.log).RegisterRoutes(r)
			snapshothandlers.NewHandler(s.container.SnapshotRecorder, s.log).RegisterRoutes(r)

			r.Route("/system", func(r chi.Router) {
				r.Get("/status", s.systemHandlers.HandleSystemStatus)
			})
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success": false,
				"error":   "Not found",
			})
		})
	})

	s.router.Group(func(r chi.Router) {
		s.requestMiddleware(r)

		r.Get("/health", s.handleHealth)
		s.setupDashboardRoutes(r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	s.cancelBase()
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
