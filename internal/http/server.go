// Package http exposes hosted unique lists over a REST surface.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"uniquelist/internal/config"
	"uniquelist/pkg/metrics"
)

const (
	contentTypeJSON        = "application/json"
	defaultAddr            = ":8080"
	defaultShutdownTimeout = time.Second * 5
)

// Server hosts named collections behind a chi router.
type Server struct {
	registry   *registry
	collector  metrics.Collector
	defaults   config.ToleranceConfig
	httpServer *http.Server
	addr       string
	shutdown   time.Duration
}

// NewServer creates a server applying cfg's tolerance defaults to
// collections created without explicit ones.
func NewServer(cfg config.Config, collector metrics.Collector) *Server {
	addr := cfg.Server.Addr
	if addr == "" {
		addr = defaultAddr
	}
	shutdown := cfg.Server.ShutdownTimeout
	if shutdown == 0 {
		shutdown = defaultShutdownTimeout
	}
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &Server{
		registry:  newRegistry(),
		collector: collector,
		defaults:  cfg.Tolerances,
		addr:      addr,
		shutdown:  shutdown,
	}
}

// Start starts the server.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.createRouter(),
		ReadHeaderTimeout: time.Second,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("HTTP server started", "addr", s.addr)
	return nil
}

// Stop stops the server.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

// createRouter builds chi router
func (s *Server) createRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api/lists", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/items", s.handlePush)
			r.Post("/contains", s.handleContains)
			r.Post("/erase", s.handleErase)
			r.Post("/erase-flagged", s.handleEraseFlagged)
		})
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Error encoding response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewOKResponse())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewDataResponse(s.collector.Snapshot()))
}
