// Package web provides the read-only HTTP browse server for a loaded price table.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/pricelist/internal/config"
	"github.com/JonMunkholm/pricelist/internal/core"
	mw "github.com/JonMunkholm/pricelist/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves one immutable Table. The table is never reloaded, so handlers
// share it without locking.
type Server struct {
	table     *core.Table
	cfg       config.ServerConfig
	snapshots *snapshotLimiter
	router    *chi.Mux
	server    *http.Server
}

// NewServer creates a Server for table using cfg timeouts.
func NewServer(table *core.Table, cfg config.ServerConfig) *Server {
	s := &Server{
		table:     table,
		cfg:       cfg,
		snapshots: newSnapshotLimiter(cfg.MaxSnapshots, cfg.SnapshotWait),
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/files", s.handleFiles)
		r.Get("/snapshot", s.handleSnapshot)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, errNotFound, http.StatusNotFound)
	})
}

// Start begins listening for HTTP requests on the configured address. It
// blocks until the server stops and returns http.ErrServerClosed after
// Shutdown, including a Shutdown that happened before Start.
func (s *Server) Start() error {
	slog.Info("browse server listening",
		"addr", s.server.Addr,
		"records", s.table.Len(),
		"run_id", s.table.RunID().String(),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// uptime reports how long ago the table was loaded, rounded to seconds.
func (s *Server) uptime() time.Duration {
	return time.Since(s.table.LoadedAt()).Round(time.Second)
}
