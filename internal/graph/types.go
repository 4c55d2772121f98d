package graph

import (
	"errors"
	"strings"
	"sync"

	"github.com/dhimmel/disease-ontology/internal/term"
)

// ErrNodeNotFound is returned when an operation names a node that is not in
// the graph.
var ErrNodeNotFound = errors.New("node not found")

// MultiDiGraph is a directed graph that allows several keyed edges between the
// same ordered pair of nodes.
type MultiDiGraph struct {
	// mutex protects nodes and edgeCount.
	mutex sync.RWMutex
	// nodes stores every node keyed by term id.
	nodes map[string]*node
	// edgeCount is the number of distinct (from, to, key) triples.
	edgeCount int
}

// node is a single vertex. It is unexported so callers go through the graph's
// id-based API.
type node struct {
	term *term.Term
	// out maps a successor id to the set of edge keys pointing at it.
	out map[string]map[string]struct{}
	// in maps a predecessor id to the set of edge keys coming from it.
	in map[string]map[string]struct{}
}

// Edge is one keyed, directed edge.
type Edge struct {
	From string `json:"source" yaml:"source"`
	To   string `json:"target" yaml:"target"`
	Key  string `json:"type" yaml:"type"`
}

// CycleError reports a directed cycle. Path starts and ends on the same node.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}
