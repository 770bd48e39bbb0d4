package graph

// Edge is an undirected edge between two node IDs.
type Edge struct {
	U string
	V string
}

// Graph is an edge-list graph over opaque string node IDs. Node order is
// insertion order and is preserved through indexing, so slot assignment is
// stable for a given construction sequence. Parallel edges are stored as
// separate entries.
type Graph struct {
	nodes []string
	seen  map[string]struct{}
	edges []Edge
}

func New() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// AddNode registers a node. Adding the same ID twice is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.seen[id]; ok {
		return
	}
	g.seen[id] = struct{}{}
	g.nodes = append(g.nodes, id)
}

// AddEdge adds an undirected edge, registering both endpoints.
func (g *Graph) AddEdge(u, v string) {
	g.AddNode(u)
	g.AddNode(v)
	g.edges = append(g.edges, Edge{U: u, V: v})
}

// Nodes returns node IDs in insertion order. The slice is shared; callers
// must not modify it.
func (g *Graph) Nodes() []string { return g.nodes }

// Edges returns the raw edge list. The slice is shared; callers must not
// modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Len returns the number of distinct nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// NumEdges returns the number of stored edges, counting parallel edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Has reports whether the node ID is present.
func (g *Graph) Has(id string) bool {
	_, ok := g.seen[id]
	return ok
}
