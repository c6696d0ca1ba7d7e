// Package server exposes the curve interconversion engine over HTTP.
//
// The surface mirrors a small lab service: POST /convert returns the
// synthesized curves on the standard volume grid, POST /properties the
// bulk characterization, POST /batch runs many conversions in one call
// and POST /export-csv streams the conversion table as a download.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/petrolab/distillation-converter/internal/config"
)

// Server is the HTTP front end of the conversion engine.
type Server struct {
	cfg     config.ServerConfig
	logger  logr.Logger
	metrics *metrics
	router  chi.Router
	http    *http.Server
}

// New builds a Server from the given configuration.
func New(cfg config.ServerConfig, logger logr.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Post("/convert", s.handleConvert)
	r.Post("/properties", s.handleProperties)
	r.Post("/batch", s.handleBatch)
	r.Post("/export-csv", s.handleExportCSV)
	s.router = r

	s.http = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routing handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves requests until the context is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "address", s.cfg.ListenAddress, "version", Version)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", "timeout", s.cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
