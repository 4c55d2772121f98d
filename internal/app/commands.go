package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhimmel/disease-ontology/internal/export"
	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/ontology"
)

// Summary builds the graph and prints its size, roots and edge types.
func (a *App) Summary(ctx context.Context) error {
	o, g, err := a.Build(ctx)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, e := range g.Edges() {
		counts[e.Key]++
	}

	fmt.Fprintf(a.outW, "ontology:  %s\n", a.config.OntologyName)
	if v := o.Header["data-version"]; v != "" {
		fmt.Fprintf(a.outW, "version:   %s\n", v)
	}
	fmt.Fprintf(a.outW, "terms:     %d (%d obsolete)\n", o.Len(), o.CountObsolete())
	fmt.Fprintf(a.outW, "nodes:     %d\n", g.NodeCount())
	fmt.Fprintf(a.outW, "edges:     %d\n", g.EdgeCount())
	for _, key := range a.config.Relationships {
		fmt.Fprintf(a.outW, "  %-8s %d\n", key+":", counts[key])
	}
	fmt.Fprintf(a.outW, "leaves:    %d\n", len(g.Leaves()))
	fmt.Fprintf(a.outW, "roots:     %d\n", len(g.Roots()))
	for _, id := range g.Roots() {
		t, _ := g.Node(id)
		fmt.Fprintf(a.outW, "  %s\n", t)
	}
	return nil
}

// Ancestors prints every term more general than id, one per line.
func (a *App) Ancestors(ctx context.Context, id string, types ...string) error {
	return a.relatives(ctx, id, types, (*graph.MultiDiGraph).Ancestors)
}

// Descendants prints every term more specific than id, one per line.
func (a *App) Descendants(ctx context.Context, id string, types ...string) error {
	return a.relatives(ctx, id, types, (*graph.MultiDiGraph).Descendants)
}

type walkFunc func(g *graph.MultiDiGraph, id string, keys ...string) ([]string, error)

func (a *App) relatives(ctx context.Context, id string, types []string, walk walkFunc) error {
	o, g, err := a.Build(ctx)
	if err != nil {
		return err
	}

	resolved, err := resolveID(o, g, id)
	if err != nil {
		return err
	}
	ids, err := walk(g, resolved, types...)
	if err != nil {
		return err
	}

	a.logger.Debug("Traversal finished.", "id", resolved, "types", types, "count", len(ids))
	for _, rid := range ids {
		t, _ := g.Node(rid)
		fmt.Fprintln(a.outW, t)
	}
	return nil
}

// Export builds the graph and writes it to the app's output in format.
func (a *App) Export(ctx context.Context, format export.Format) error {
	_, g, err := a.Build(ctx)
	if err != nil {
		return err
	}
	return export.Write(a.outW, g, format)
}

// resolveID maps id to a node of g, accepting alternate identifiers.
func resolveID(o *ontology.Ontology, g *graph.MultiDiGraph, id string) (string, error) {
	id = strings.TrimSpace(id)
	if g.HasNode(id) {
		return id, nil
	}
	if alt, ok := o.ResolveAlternate(id); ok && g.HasNode(alt.ID) {
		return alt.ID, nil
	}
	if t, err := o.Term(id); err == nil && t.Obsolete {
		return "", fmt.Errorf("%w: %s is obsolete", graph.ErrNodeNotFound, id)
	}
	return "", fmt.Errorf("%w: %s", graph.ErrNodeNotFound, id)
}
