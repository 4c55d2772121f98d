package app

import (
	"context"
	"fmt"

	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/ontology"
	"github.com/dhimmel/disease-ontology/internal/server"
	"golang.org/x/sync/errgroup"
)

// Serve builds the graph once, then serves it over HTTP until ctx is
// cancelled. When watching is enabled the graph is rebuilt on file changes.
func (a *App) Serve(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Serve method started.")

	srv := server.New(ctx, func(ctx context.Context) (*ontology.Ontology, *graph.MultiDiGraph, error) {
		return a.Build(ctx)
	})
	if err := srv.Reload(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", a.config.ServerPort))
	})
	if a.config.Watch {
		g.Go(func() error {
			return srv.Watch(ctx, a.config.OntologyPath, a.config.WatchDebounce)
		})
	}

	err := g.Wait()
	a.logger.Debug("App.Serve method finished.")
	return err
}
