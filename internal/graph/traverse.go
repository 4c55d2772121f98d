package graph

import (
	"fmt"
	"slices"
)

// Ancestors returns every node reachable from id by following outgoing edges
// with one of the given keys (any key when none are given). For is_a edges
// these are the more general terms. The result is sorted and excludes id.
func (g *MultiDiGraph) Ancestors(id string, keys ...string) ([]string, error) {
	return g.reach(id, keys, func(n *node) map[string]map[string]struct{} { return n.out })
}

// Descendants returns every node that reaches id by following edges with one
// of the given keys (any key when none are given). For is_a edges these are
// the more specific terms. The result is sorted and excludes id.
func (g *MultiDiGraph) Descendants(id string, keys ...string) ([]string, error) {
	return g.reach(id, keys, func(n *node) map[string]map[string]struct{} { return n.in })
}

// reach runs a breadth-first walk from id over the adjacency chosen by next.
func (g *MultiDiGraph) reach(id string, keys []string, next func(*node) map[string]map[string]struct{}) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	start, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	seen := map[string]bool{id: true}
	queue := neighbours(next(start), keys)
	for _, q := range queue {
		seen[q] = true
	}

	out := []string{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		for _, nb := range neighbours(next(g.nodes[cur]), keys) {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	slices.Sort(out)
	return out, nil
}
