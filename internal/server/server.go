// Package server exposes the halftone pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness probe with build version
//	POST /v1/halftone   body is the source image; query parameters radius,
//	                    threshold, color and format override the defaults
//
// Every render gets a job id returned in the X-Halftone-Id header and logged
// with the request.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hexhalftone/pkg/observability"
	"github.com/matzehuels/hexhalftone/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes caps the size of an uploaded source image.
	DefaultMaxBodyBytes = 32 << 20

	// DefaultRequestTimeout bounds a single render.
	DefaultRequestTimeout = 2 * time.Minute

	shutdownTimeout = 10 * time.Second
)

// Response headers set on successful renders.
const (
	HeaderJobID = "X-Halftone-Id"
	HeaderDots  = "X-Halftone-Dots"
	HeaderCache = "X-Halftone-Cache"
)

// Config holds server settings.
type Config struct {
	// Defaults are the options used for query parameters that are absent.
	Defaults pipeline.Options
	// MaxBodyBytes caps the request body; 0 uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// RequestTimeout bounds one request; 0 uses DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// Server serves halftone renders.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Defaults.Radius == 0 {
		cfg.Defaults = pipeline.DefaultOptions()
	}
	return &Server{runner: runner, logger: logger, cfg: cfg}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/halftone", s.handleHalftone)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs each request and reports it to the server hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", elapsed)
	})
}
