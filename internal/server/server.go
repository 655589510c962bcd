// Package server exposes the quality engine over HTTP. It owns everything
// the engine is not allowed to do: request handling, CSV upload parsing,
// JSON serialization, structured request logging and error mapping.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dataqa-labs/tablecheck/internal/quality"
)

const serviceVersion = "0.2.0"

// Config holds the server's dependencies and settings.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	Engine         *quality.Engine
	Logger         *slog.Logger
}

// Server serves the dataset quality API.
type Server struct {
	engine         *quality.Engine
	addr           string
	maxUploadBytes int64
	logger         *slog.Logger
}

// New creates a server. A nil logger discards all output.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	return &Server{
		engine:         cfg.Engine,
		addr:           cfg.Addr,
		maxUploadBytes: maxUpload,
		logger:         logger,
	}
}

// Handler builds the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestIDMiddleware,
		middleware.Recoverer,
	)

	r.Get("/health", s.handleHealth)
	r.Post("/quality", s.handleQuality)
	r.Post("/quality-from-csv", s.handleQualityFromCSV)
	r.Post("/quality-flags-from-csv", s.handleFlagsFromCSV)
	return r
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.addr, "version", serviceVersion)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// logRequest writes one structured entry per handled request. The shape
// fields are only present when a report was produced.
func (s *Server) logRequest(ctx context.Context, endpoint, status string, latencyMS float64, rep *quality.Report) {
	attrs := []slog.Attr{
		slog.String("endpoint", endpoint),
		slog.String("status", status),
		slog.Float64("latency_ms", latencyMS),
		slog.String("request_id", RequestID(ctx)),
	}
	if rep != nil {
		attrs = append(attrs,
			slog.Bool("ok_for_model", rep.OKForModel),
			slog.Int("n_rows", rep.DatasetShape.NRows),
			slog.Int("n_cols", rep.DatasetShape.NCols),
		)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "request", attrs...)
}
