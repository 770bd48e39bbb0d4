package graph

import (
	"fmt"
	"math/rand"
)

// Generators for the standard test topologies. These exist for the CLI and
// for tests; the engine itself accepts any Graph.

// Ring builds a cycle of n nodes: 0-1, 1-2, ..., (n-1)-0.
func Ring(n int) *Graph {
	g := New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("%d", i))
	}
	for i := 0; i < n; i++ {
		g.AddEdge(fmt.Sprintf("%d", i), fmt.Sprintf("%d", (i+1)%n))
	}
	return g
}

// Complete builds the complete graph on n nodes.
func Complete(n int) *Graph {
	g := New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("%d", i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.AddEdge(fmt.Sprintf("%d", i), fmt.Sprintf("%d", j))
		}
	}
	return g
}

// Grid builds a w-by-h square lattice with open boundaries. Node IDs are
// "x,y".
func Grid(w, h int) *Graph {
	g := New()
	id := func(x, y int) string { return fmt.Sprintf("%d,%d", x, y) }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.AddNode(id(x, y))
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				g.AddEdge(id(x, y), id(x+1, y))
			}
			if y+1 < h {
				g.AddEdge(id(x, y), id(x, y+1))
			}
		}
	}
	return g
}

// Random builds an Erdos-Renyi graph: each of the n*(n-1)/2 possible edges
// is present independently with probability p.
func Random(n int, p float64, rng *rand.Rand) *Graph {
	g := New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("%d", i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				g.AddEdge(fmt.Sprintf("%d", i), fmt.Sprintf("%d", j))
			}
		}
	}
	return g
}
