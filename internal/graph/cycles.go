package graph

import "slices"

// DetectCycles checks the graph for a directed cycle. It returns nil when the
// graph is acyclic and a *CycleError describing the first cycle found
// otherwise. Node and neighbour order is sorted, so the reported cycle is
// deterministic.
func (g *MultiDiGraph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// temporary: on the current recursion stack.
	// unvisited: everything else.
	permanent := make(map[string]bool, len(g.nodes))
	temporary := make(map[string]bool)
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			start := slices.Index(stack, id)
			path := append(slices.Clone(stack[start:]), id)
			return &CycleError{Path: path}
		}

		temporary[id] = true
		stack = append(stack, id)

		for _, next := range sortedKeys(g.nodes[id].out) {
			if err := visit(next); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for _, id := range g.sortedIDs() {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// IsAcyclic reports whether g contains no directed cycle.
func IsAcyclic(g *MultiDiGraph) bool {
	return g.DetectCycles() == nil
}

// TopologicalSort orders node ids so that for every edge from -> to, to comes
// before from. For an is_a hierarchy this lists general terms before specific
// ones. A *CycleError is returned if the graph is not acyclic.
func (g *MultiDiGraph) TopologicalSort() ([]string, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	g.mutex.RLock()
	defer g.mutex.RUnlock()

	visited := make(map[string]bool, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, next := range sortedKeys(g.nodes[id].out) {
			visit(next)
		}
		order = append(order, id)
	}

	for _, id := range g.sortedIDs() {
		visit(id)
	}
	return order, nil
}
