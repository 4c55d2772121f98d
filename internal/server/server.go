package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dhimmel/disease-ontology/internal/ctxlog"
	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/ontology"
)

// shutdownTimeout bounds how long in-flight requests may take once the
// serving context is cancelled.
const shutdownTimeout = 5 * time.Second

// BuildFunc loads the ontology and builds its graph.
type BuildFunc func(ctx context.Context) (*ontology.Ontology, *graph.MultiDiGraph, error)

// ErrNotReady is returned by lookups made before the first successful build.
var ErrNotReady = errors.New("ontology graph is not loaded yet")

// Snapshot is one successfully built ontology and its graph.
type Snapshot struct {
	Ontology *ontology.Ontology
	Graph    *graph.MultiDiGraph
	BuiltAt  time.Time
}

// Server serves the current snapshot over HTTP and replaces it atomically on
// every successful rebuild.
type Server struct {
	build   BuildFunc
	metrics *Metrics
	logger  *slog.Logger
	current atomic.Pointer[Snapshot]
}

// New creates a server that rebuilds through build. The logger is taken from
// ctx.
func New(ctx context.Context, build BuildFunc) *Server {
	return &Server{
		build:   build,
		metrics: NewMetrics(),
		logger:  ctxlog.FromContext(ctx),
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Snapshot returns the snapshot currently being served, or nil.
func (s *Server) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload runs a build and, if it succeeds, swaps it in. On failure the
// previous snapshot keeps being served.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	o, g, err := s.build(ctx)
	s.metrics.ObserveBuild(g, err)
	if err != nil {
		s.logger.Error("Rebuild failed, keeping previous graph.", "error", err)
		return err
	}

	s.current.Store(&Snapshot{Ontology: o, Graph: g, BuiltAt: time.Now()})
	s.logger.Info("Serving new ontology graph.",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start),
	)
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🩺 Ontology server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ontology server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("🩺 Shutting down ontology server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Ontology server shutdown failed", "error", err)
		return err
	}
	s.logger.Debug("Ontology server shut down gracefully.")
	return nil
}
