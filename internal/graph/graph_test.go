package graph

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeDeduplicates(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("a")

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdgeRegistersEndpoints(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.NumEdges())
	assert.True(t, g.Has("c"))
	assert.False(t, g.Has("d"))
}

func TestParallelEdgesPreserved(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	assert.Equal(t, 2, g.NumEdges())
}

func TestBuildIndexBijective(t *testing.T) {
	g := New()
	g.AddEdge("u1", "u2")
	g.AddEdge("u2", "u3")
	g.AddNode("loner")

	ix, err := BuildIndex(g)
	require.NoError(t, err)
	require.Equal(t, 4, ix.Len())

	// Round trip: node -> slot -> node for every node.
	for _, id := range g.Nodes() {
		slot, ok := ix.Slot(id)
		require.True(t, ok, "missing slot for %q", id)
		assert.Equal(t, id, ix.Node(slot))
	}

	// Slots are dense and follow insertion order.
	for i, id := range g.Nodes() {
		slot, _ := ix.Slot(id)
		assert.Equal(t, i, slot)
	}
}

func TestBuildIndexEmptyGraph(t *testing.T) {
	_, err := BuildIndex(New())
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestBuildNeighborsSymmetric(t *testing.T) {
	g := Ring(5)
	ix, err := BuildIndex(g)
	require.NoError(t, err)
	nb, err := BuildNeighbors(g, ix)
	require.NoError(t, err)

	for a := 0; a < nb.Len(); a++ {
		for _, b := range nb.Of(a) {
			assert.Contains(t, nb.Of(b), a, "adjacency not symmetric for %d-%d", a, b)
		}
	}
}

func TestBuildNeighborsUnknownNode(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	ix, err := BuildIndex(g)
	require.NoError(t, err)

	// An edge added after indexing references a node the index never saw.
	g.AddEdge("a", "ghost")
	_, err = BuildNeighbors(g, ix)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownNode))
	assert.Contains(t, err.Error(), "ghost")
}

func TestBuildNeighborsSelfLoop(t *testing.T) {
	g := New()
	g.AddEdge("a", "a")
	ix, err := BuildIndex(g)
	require.NoError(t, err)

	_, err = BuildNeighbors(g, ix)
	assert.ErrorIs(t, err, ErrSelfLoop)
}

func TestNeighborsMultiEdgeDegree(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	ix, err := BuildIndex(g)
	require.NoError(t, err)
	nb, err := BuildNeighbors(g, ix)
	require.NoError(t, err)

	a, _ := ix.Slot("a")
	assert.Equal(t, 2, nb.Degree(a))
	assert.Len(t, nb.Edges(), 2)
}

func TestIsolated(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddNode("loner")
	ix, err := BuildIndex(g)
	require.NoError(t, err)
	nb, err := BuildNeighbors(g, ix)
	require.NoError(t, err)

	slot, _ := ix.Slot("loner")
	assert.Equal(t, []int{slot}, nb.Isolated())
}

func TestGenerators(t *testing.T) {
	tests := []struct {
		name  string
		g     *Graph
		nodes int
		edges int
	}{
		{"ring", Ring(6), 6, 6},
		{"complete", Complete(5), 5, 10},
		{"grid", Grid(3, 4), 12, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.nodes, tt.g.Len())
			assert.Equal(t, tt.edges, tt.g.NumEdges())
		})
	}
}

func TestRandomGraphEdgeProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	g := Random(30, 0.0, rng)
	assert.Equal(t, 0, g.NumEdges())

	g = Random(30, 1.0, rng)
	assert.Equal(t, 30*29/2, g.NumEdges())
}
