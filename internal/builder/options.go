package builder

import "github.com/dhimmel/disease-ontology/internal/graph"

// AcyclicityCheck returns a non-nil error when g contains a directed cycle.
type AcyclicityCheck func(g *graph.MultiDiGraph) error

// Option configures a single Build call.
type Option func(*options)

type options struct {
	check             AcyclicityCheck
	relationshipTypes []string
}

func defaultOptions() *options {
	return &options{
		check: (*graph.MultiDiGraph).DetectCycles,
	}
}

// WithAcyclicityCheck replaces the default cycle check.
func WithAcyclicityCheck(check AcyclicityCheck) Option {
	return func(o *options) { o.check = check }
}

// WithRelationshipTypes restricts edge construction to triples of the given
// types. Without it every triple on a term becomes an edge.
func WithRelationshipTypes(types ...string) Option {
	return func(o *options) { o.relationshipTypes = types }
}
