// Package web provides the JSON HTTP API over the tabular data engine.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/config"
	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/web/middleware"
)

// Server is the HTTP server for the tabular engine API.
type Server struct {
	service *engine.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *engine.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Tenant databases
		r.Post("/databases", s.handleCreateDatabase)
		r.Get("/databases", s.handleListDatabases)

		// Tables
		r.Get("/databases/{databaseID}/tables", s.handleListTables)
		r.Post("/databases/{databaseID}/tables", s.handleCreateTable)
		r.Post("/databases/{databaseID}/invoice-table", s.handleEnsureInvoiceTable)
		r.Get("/tables/{tableID}", s.handleGetTable)
		r.Delete("/tables/{tableID}", s.handleDeleteTable)

		// Columns
		r.Get("/tables/{tableID}/columns", s.handleListColumns)
		r.Post("/tables/{tableID}/columns", s.handleAddColumn)
		r.Get("/columns/{columnID}", s.handleGetColumn)
		r.Delete("/columns/{columnID}", s.handleDeleteColumn)
		r.Post("/columns/{columnID}/type", s.handleChangeColumnType)
		r.Get("/columns/{columnID}/unique-check", s.handleUniqueCheck)

		// Rows and cells
		r.Post("/tables/{tableID}/rows", s.handleCreateRow)
		r.Get("/tables/{tableID}/rows", s.handleListRows)
		r.Get("/tables/{tableID}/rows/{rowID}", s.handleGetRow)
		r.Delete("/tables/{tableID}/rows/{rowID}", s.handleDeleteRow)
		r.Put("/cells/{cellID}", s.handleUpdateCell)

		// Type conversion preview
		r.Post("/conversions/preview", s.handlePreviewConversion)
		r.Get("/conversions/safe", s.handleConversionSafety)

		// Invoice numbering
		r.Post("/numbering/issue", s.handleIssueNumber)
		r.Post("/numbering/peek", s.handlePeekNumber)
		r.Get("/numbering/stats", s.handleNumberingStats)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
