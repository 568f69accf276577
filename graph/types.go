package graph

// Edge is a directed connection from Tail to Head carrying a scalar cost and
// a resource-consumption vector of length R. Parallel edges between the same
// endpoint pair are permitted; each has a distinct ID (its index in the
// Graph's edge slice).
type Edge struct {
	ID        int
	Tail      int
	Head      int
	Cost      float64
	Resources []float64
}

// Graph is the immutable, post-build directed graph store. Vertex ids are
// dense integers in [0, NumVertices). Build sorts forward adjacency by Head
// and backward adjacency by Tail, so frontier expansion can rely on a stable
// iteration order.
//
// Graph is safe for concurrent read-only use by multiple search runs once
// built; it is never mutated after Build returns successfully.
type Graph struct {
	numVertices int
	resourceLen int
	sourceID    int
	sinkID      int

	edges []Edge

	// forward[v] lists indices into edges of edges with Tail == v, sorted by Head.
	forward [][]int
	// backward[v] lists indices into edges of edges with Head == v, sorted by Tail.
	backward [][]int

	built bool
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int { return g.numVertices }

// ResourceLen returns R, the length of every edge's resource vector.
func (g *Graph) ResourceLen() int { return g.resourceLen }

// Source returns the distinguished source vertex id.
func (g *Graph) Source() int { return g.sourceID }

// Sink returns the distinguished sink vertex id.
func (g *Graph) Sink() int { return g.sinkID }

// Edges returns the full edge slice in insertion order. Callers must not
// mutate the returned slice or its elements.
func (g *Graph) Edges() []Edge { return g.edges }

// Edge returns the edge with the given id.
func (g *Graph) Edge(id int) Edge { return g.edges[id] }

// Forward returns the edge ids of all edges leaving v, sorted by Head.
func (g *Graph) Forward(v int) []int { return g.forward[v] }

// Backward returns the edge ids of all edges entering v, sorted by Tail.
func (g *Graph) Backward(v int) []int { return g.backward[v] }

// ParallelEdges returns every edge (tail, head) between the given endpoints.
// The joiner does not call it: it walks Forward/Backward adjacency, which
// already lists every parallel edge between a vertex pair.
func (g *Graph) ParallelEdges(tail, head int) []Edge {
	var out []Edge
	for _, eid := range g.forward[tail] {
		e := g.edges[eid]
		if e.Head == head {
			out = append(out, e)
		}
	}
	return out
}
