package graph

import "fmt"

// Index is a bijection between node IDs and dense zero-based slots. Slots
// follow the graph's node insertion order. Immutable once built.
type Index struct {
	slots map[string]int
	nodes []string
}

// BuildIndex assigns a slot to every node of g.
func BuildIndex(g *Graph) (*Index, error) {
	if g.Len() == 0 {
		return nil, ErrEmptyGraph
	}
	nodes := g.Nodes()
	ix := &Index{
		slots: make(map[string]int, len(nodes)),
		nodes: make([]string, len(nodes)),
	}
	for i, id := range nodes {
		ix.slots[id] = i
		ix.nodes[i] = id
	}
	return ix, nil
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int { return len(ix.nodes) }

// Slot returns the slot for a node ID.
func (ix *Index) Slot(id string) (int, bool) {
	s, ok := ix.slots[id]
	return s, ok
}

// Node returns the node ID for a slot. Panics on an out-of-range slot,
// matching slice semantics.
func (ix *Index) Node(slot int) string { return ix.nodes[slot] }

// Neighbors holds per-slot adjacency lists plus the edge list resolved to
// slot pairs. Symmetric: if b is listed for a, a is listed for b. Parallel
// edges appear once per occurrence in both views.
type Neighbors struct {
	lists [][]int
	edges [][2]int
}

// BuildNeighbors resolves the graph's edges through the index.
func BuildNeighbors(g *Graph, ix *Index) (*Neighbors, error) {
	nb := &Neighbors{
		lists: make([][]int, ix.Len()),
		edges: make([][2]int, 0, g.NumEdges()),
	}
	for _, e := range g.Edges() {
		u, ok := ix.Slot(e.U)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, e.U)
		}
		v, ok := ix.Slot(e.V)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, e.V)
		}
		if u == v {
			return nil, fmt.Errorf("%w: %q", ErrSelfLoop, e.U)
		}
		nb.lists[u] = append(nb.lists[u], v)
		nb.lists[v] = append(nb.lists[v], u)
		nb.edges = append(nb.edges, [2]int{u, v})
	}
	return nb, nil
}

// Of returns the neighbor slots of slot. The slice is shared; callers must
// not modify it.
func (nb *Neighbors) Of(slot int) []int { return nb.lists[slot] }

// Degree returns the number of adjacency entries for slot, counting
// parallel edges.
func (nb *Neighbors) Degree(slot int) int { return len(nb.lists[slot]) }

// Edges returns the edge list as slot pairs. The slice is shared; callers
// must not modify it.
func (nb *Neighbors) Edges() [][2]int { return nb.edges }

// Len returns the number of slots.
func (nb *Neighbors) Len() int { return len(nb.lists) }

// Isolated returns the slots with no neighbors. Such nodes contribute zero
// energy and every flip on them is trivially accepted; callers may want to
// surface that in diagnostics.
func (nb *Neighbors) Isolated() []int {
	var out []int
	for i, l := range nb.lists {
		if len(l) == 0 {
			out = append(out, i)
		}
	}
	return out
}
