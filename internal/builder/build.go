package builder

import (
	"context"
	"slices"

	"github.com/dhimmel/disease-ontology/internal/ctxlog"
	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/term"
)

// Container is the read-only view of an ontology the builder needs.
// *ontology.Ontology satisfies it.
type Container interface {
	// Terms returns every term, obsolete ones included.
	Terms() []*term.Term
	// Term looks a term up by identifier and fails if it is absent.
	Term(id string) (*term.Term, error)
}

// Build constructs a complete, validated multigraph from an ontology.
func Build(ctx context.Context, o Container, opts ...Option) (*graph.MultiDiGraph, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	g := graph.New()

	// First pass: one node per active term.
	terms := o.Terms()
	active := selectNodes(terms, g)
	logger.Debug("Build: Node selection complete.", "node_count", g.NodeCount(), "skipped_obsolete", len(terms)-len(active))

	// Second pass: one edge per relationship triple.
	if err := linkNodes(o, active, g, cfg.relationshipTypes); err != nil {
		return nil, err
	}
	logger.Debug("Build: Relationship linking complete.", "edge_count", g.EdgeCount())

	// Final validation: cycle detection.
	if err := cfg.check(g); err != nil {
		logger.Debug("Build: Cycle detection failed.", "error", err)
		return nil, &CycleViolationError{Err: err}
	}
	logger.Debug("Build: Cycle detection passed.")

	return g, nil
}

// selectNodes adds every non-obsolete term to g and returns them.
func selectNodes(terms []*term.Term, g *graph.MultiDiGraph) []*term.Term {
	active := make([]*term.Term, 0, len(terms))
	for _, t := range terms {
		if t.Obsolete {
			continue
		}
		g.AddNode(t)
		active = append(active, t)
	}
	return active
}

// linkNodes adds an edge for each relationship of each active term, resolving
// targets through the container.
func linkNodes(o Container, active []*term.Term, g *graph.MultiDiGraph, types []string) error {
	for _, t := range active {
		for _, rel := range t.Relationships {
			if len(types) > 0 && !slices.Contains(types, rel.Type) {
				continue
			}

			target, err := o.Term(rel.TargetID)
			if err != nil {
				return &UnresolvedReferenceError{SourceID: t.ID, TargetID: rel.TargetID, Type: rel.Type, Err: err}
			}
			if target.Obsolete {
				return &UnresolvedReferenceError{SourceID: t.ID, TargetID: rel.TargetID, Type: rel.Type, Obsolete: true}
			}

			if err := g.AddEdge(t.Key(), target.Key(), rel.Type); err != nil {
				// The container resolved a term it does not enumerate.
				return &UnresolvedReferenceError{SourceID: t.ID, TargetID: rel.TargetID, Type: rel.Type, Err: err}
			}
		}
	}
	return nil
}
