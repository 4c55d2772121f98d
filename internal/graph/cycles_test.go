package graph

import (
	"testing"

	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
		assert.True(t, IsAcyclic(g))
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := newGraph(t, "a", "b", "c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := newGraph(t, "a", "b", "c", "d")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("b", "c", term.IsA))
		require.NoError(t, g.AddEdge("a", "c", term.IsA)) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d", term.IsA))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("parallel keyed edges are not a cycle", func(t *testing.T) {
		g := newGraph(t, "a", "b")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("a", "b", "part_of"))
		assert.True(t, IsAcyclic(g))
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := newGraph(t, "a", "b")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("b", "a", term.IsA)) // Cycle

		err := g.DetectCycles()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
		assert.EqualError(t, err, "cycle detected: a -> b -> a")
		assert.False(t, IsAcyclic(g))
	})

	t.Run("cycle through mixed keys is detected", func(t *testing.T) {
		g := newGraph(t, "a", "b")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("b", "a", "part_of"))
		assert.Error(t, g.DetectCycles())
	})

	t.Run("self loop is detected", func(t *testing.T) {
		g := newGraph(t, "a")
		require.NoError(t, g.AddEdge("a", "a", term.IsA))

		var cycleErr *CycleError
		require.ErrorAs(t, g.DetectCycles(), &cycleErr)
		assert.Equal(t, []string{"a", "a"}, cycleErr.Path)
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := newGraph(t, "a", "b", "c", "d")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("b", "c", term.IsA))
		require.NoError(t, g.AddEdge("c", "d", term.IsA))
		require.NoError(t, g.AddEdge("d", "a", term.IsA)) // Cycle back to the start

		var cycleErr *CycleError
		require.ErrorAs(t, g.DetectCycles(), &cycleErr)
		assert.Equal(t, []string{"a", "b", "c", "d", "a"}, cycleErr.Path)
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := newGraph(t, "a", "b", "x", "y", "z")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("x", "y", term.IsA))
		require.NoError(t, g.AddEdge("y", "z", term.IsA))
		require.NoError(t, g.AddEdge("z", "y", term.IsA)) // Cycle

		var cycleErr *CycleError
		require.ErrorAs(t, g.DetectCycles(), &cycleErr)
		assert.Equal(t, []string{"y", "z", "y"}, cycleErr.Path)
	})
}

func TestTopologicalSort(t *testing.T) {
	t.Run("targets precede sources", func(t *testing.T) {
		g := newGraph(t, "specific", "middle", "general", "other")
		require.NoError(t, g.AddEdge("specific", "middle", term.IsA))
		require.NoError(t, g.AddEdge("middle", "general", term.IsA))
		require.NoError(t, g.AddEdge("specific", "general", "part_of"))

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		require.Len(t, order, 4)

		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		for _, e := range g.Edges() {
			assert.Less(t, pos[e.To], pos[e.From], "edge %s -> %s", e.From, e.To)
		}
	})

	t.Run("cyclic graph fails", func(t *testing.T) {
		g := newGraph(t, "a", "b")
		require.NoError(t, g.AddEdge("a", "b", term.IsA))
		require.NoError(t, g.AddEdge("b", "a", term.IsA))

		order, err := g.TopologicalSort()
		assert.Nil(t, order)
		var cycleErr *CycleError
		assert.ErrorAs(t, err, &cycleErr)
	})
}
