package graph

import (
	"fmt"
	"slices"

	"github.com/dhimmel/disease-ontology/internal/term"
)

// New creates and returns an initialized, empty graph.
func New() *MultiDiGraph {
	return &MultiDiGraph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a term as a node. If a node with the same id already exists,
// the function does nothing.
func (g *MultiDiGraph) AddNode(t *term.Term) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[t.Key()]; ok {
		return
	}
	g.nodes[t.Key()] = &node{
		term: t,
		out:  make(map[string]map[string]struct{}),
		in:   make(map[string]map[string]struct{}),
	}
}

// AddEdge creates a directed edge from fromID to toID labelled with key. An
// error is returned if either node does not exist. Adding an edge that is
// already present is a no-op.
func (g *MultiDiGraph) AddEdge(fromID, toID, key string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	from, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source %w: %s", ErrNodeNotFound, fromID)
	}
	to, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination %w: %s", ErrNodeNotFound, toID)
	}

	if from.out[toID] == nil {
		from.out[toID] = make(map[string]struct{})
	}
	if _, exists := from.out[toID][key]; exists {
		return nil
	}
	from.out[toID][key] = struct{}{}

	if to.in[fromID] == nil {
		to.in[fromID] = make(map[string]struct{})
	}
	to.in[fromID][key] = struct{}{}

	g.edgeCount++
	return nil
}

// HasNode reports whether a node with the given id exists.
func (g *MultiDiGraph) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Node returns the term stored under id.
func (g *MultiDiGraph) Node(id string) (*term.Term, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return n.term, true
}

// Nodes returns every term in the graph, sorted by id.
func (g *MultiDiGraph) Nodes() []*term.Term {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]*term.Term, 0, len(g.nodes))
	for _, id := range g.sortedIDs() {
		out = append(out, g.nodes[id].term)
	}
	return out
}

// Edges returns every edge sorted by source, target and key.
func (g *MultiDiGraph) Edges() []Edge {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	for _, from := range g.sortedIDs() {
		n := g.nodes[from]
		for _, to := range sortedKeys(n.out) {
			for _, key := range sortedKeys(n.out[to]) {
				out = append(out, Edge{From: from, To: to, Key: key})
			}
		}
	}
	return out
}

// EdgesBetween returns the keys of all edges from fromID to toID, sorted.
func (g *MultiDiGraph) EdgesBetween(fromID, toID string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[fromID]
	if !ok {
		return nil
	}
	return sortedKeys(n.out[toID])
}

// NodeCount returns the number of nodes.
func (g *MultiDiGraph) NodeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of distinct keyed edges.
func (g *MultiDiGraph) EdgeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.edgeCount
}

// Successors returns the ids a node points at through edges with one of the
// given keys (any key when none are given), sorted.
func (g *MultiDiGraph) Successors(id string, keys ...string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return neighbours(n.out, keys), nil
}

// Predecessors returns the ids pointing at a node through edges with one of
// the given keys (any key when none are given), sorted.
func (g *MultiDiGraph) Predecessors(id string, keys ...string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return neighbours(n.in, keys), nil
}

// Roots returns the ids of nodes without outgoing edges, sorted. For an is_a
// hierarchy these are the most general terms.
func (g *MultiDiGraph) Roots() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := []string{}
	for _, id := range g.sortedIDs() {
		if len(g.nodes[id].out) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Leaves returns the ids of nodes without incoming edges, sorted.
func (g *MultiDiGraph) Leaves() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := []string{}
	for _, id := range g.sortedIDs() {
		if len(g.nodes[id].in) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// sortedIDs returns all node ids in order. Callers must hold the mutex.
func (g *MultiDiGraph) sortedIDs() []string {
	return sortedKeys(g.nodes)
}

// neighbours lists the adjacent ids reachable through at least one edge whose
// key is in keys. An empty keys slice matches every key.
func neighbours(adj map[string]map[string]struct{}, keys []string) []string {
	out := make([]string, 0, len(adj))
	for id, edgeKeys := range adj {
		if matchesAny(edgeKeys, keys) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func matchesAny(edgeKeys map[string]struct{}, keys []string) bool {
	if len(keys) == 0 {
		return len(edgeKeys) > 0
	}
	for _, k := range keys {
		if _, ok := edgeKeys[k]; ok {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
