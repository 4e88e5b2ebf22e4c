// Package server implements the levelplot HTTP render API.
//
// The server exposes the plotting pipeline over HTTP so that other
// services can render plots without shelling out to the CLI. Requests
// carry the same options the CLI accepts; responses include the
// rendered artifacts plus timing and cache information.
//
// # Endpoints
//
//   - GET  /healthz          liveness probe
//   - GET  /version          build information
//   - POST /render           run the full pipeline, return artifacts
//   - POST /inspect          parse input, return dataset structure
//
// Raw input bytes travel base64-encoded inside the JSON request body
// (the standard encoding for []byte in encoding/json), alongside a
// source_format field naming the input format.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// Server wraps the pipeline runner with an HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	addr   string
	http   *http.Server
}

// Config holds server construction options.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger
}

// New creates a server. A nil logger falls back to log.Default, and an
// empty addr defaults to ":8080".
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return &Server{
		runner: cfg.Runner,
		logger: cfg.Logger,
		addr:   cfg.Addr,
	}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Post("/render", s.handleRender)
	r.Post("/inspect", s.handleInspect)

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. Shutdown waits up to 10 seconds for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
