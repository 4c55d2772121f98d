// Package app wires configuration, parsing, graph construction and the HTTP
// server into the operations the command line exposes.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dhimmel/disease-ontology/internal/builder"
	"github.com/dhimmel/disease-ontology/internal/config"
	"github.com/dhimmel/disease-ontology/internal/ctxlog"
	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/obo"
	"github.com/dhimmel/disease-ontology/internal/ontology"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Config
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *config.Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("ontology", cfg.OntologyName)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// context attaches the app logger to ctx.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load parses the configured OBO file, keeping only the configured
// relationship types.
func (a *App) Load(ctx context.Context) (*ontology.Ontology, error) {
	ctx = a.context(ctx)
	start := time.Now()

	o, err := obo.ParseFile(ctx, a.config.OntologyPath, a.config.Relationships)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Ontology loaded.",
		"path", a.config.OntologyPath,
		"terms", o.Len(),
		"obsolete", o.CountObsolete(),
		"relationships", a.config.Relationships,
		"duration", time.Since(start),
	)
	return o, nil
}

// Build loads the ontology and converts it into a validated graph.
func (a *App) Build(ctx context.Context) (*ontology.Ontology, *graph.MultiDiGraph, error) {
	o, err := a.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	g, err := builder.Build(a.context(ctx), o)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build ontology graph: %w", err)
	}

	a.logger.Info("Ontology graph built.", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return o, g, nil
}
