package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiv1 "github.com/petrolab/distillation-converter/api/v1"
	"github.com/petrolab/distillation-converter/internal/logging"
)

// requestLogger attaches a request-scoped logger to the context and
// records one line plus the request metrics after the handler returns.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := s.logger.WithValues(
			"method", r.Method,
			"path", r.URL.Path,
			"requestID", middleware.GetReqID(r.Context()),
		)
		next.ServeHTTP(ww, r.WithContext(logging.IntoContext(r.Context(), logger)))

		duration := time.Since(start)
		logger.V(logging.DEBUG).Info("Request handled",
			"status", ww.Status(), "bytes", ww.BytesWritten(), "duration", duration.String())

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		s.metrics.observeRequest(r.Method, route, ww.Status(), duration)
	})
}

// recoverer converts handler panics into JSON 500 responses.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error(fmt.Errorf("%v", rec), "Panic while handling request",
					"method", r.Method, "path", r.URL.Path)
				s.writeJSON(w, http.StatusInternalServerError,
					apiv1.ErrorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
