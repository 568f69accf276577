package graph

import "sort"

// Builder accumulates nodes and edges in arbitrary order and finalizes them
// into an immutable Graph on Build. This mirrors the two-phase
// build-then-query discipline of core.Graph, generalized to dense integer
// vertex ids and resource-vector edges rather than string ids and scalar
// weights.
//
// Complexity: AddNode/AddEdge are O(1) amortized; Build is O(V + E log d)
// where d is the maximum out/in-degree, for the per-vertex adjacency sort.
type Builder struct {
	numVertices int
	resourceLen int
	sourceID    int
	sinkID      int

	seen  []bool
	edges []Edge

	built bool
}

// NewBuilder starts a build for a graph with the given vertex/edge capacity
// hints, distinguished source/sink, and resource dimension R (R must be ≥ 1,
// since a critical resource must always exist).
func NewBuilder(numVerticesHint, numEdgesHint, sourceID, sinkID, resourceLen int) *Builder {
	b := &Builder{
		resourceLen: resourceLen,
		sourceID:    sourceID,
		sinkID:      sinkID,
		edges:       make([]Edge, 0, numEdgesHint),
	}
	if numVerticesHint > 0 {
		b.seen = make([]bool, numVerticesHint)
	}
	return b
}

// AddNode registers vertex id as present in the graph. It is idempotent.
// Complexity: O(1) amortized.
func (b *Builder) AddNode(id int) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if id < 0 {
		return ErrEmptyVertexID
	}
	b.growSeen(id)
	b.seen[id] = true
	if id+1 > b.numVertices {
		b.numVertices = id + 1
	}
	return nil
}

// AddEdge adds a directed edge tail→head with the given scalar cost and
// resource-consumption vector. resources must have length R. Parallel edges
// are permitted; each call appends a new Edge with a fresh id.
// Complexity: O(1) amortized.
func (b *Builder) AddEdge(tail, head int, cost float64, resources []float64) (int, error) {
	if b.built {
		return 0, ErrAlreadyBuilt
	}
	if len(resources) != b.resourceLen {
		return 0, ErrResourceLength
	}
	if err := b.AddNode(tail); err != nil {
		return 0, err
	}
	if err := b.AddNode(head); err != nil {
		return 0, err
	}

	res := make([]float64, b.resourceLen)
	copy(res, resources)

	id := len(b.edges)
	b.edges = append(b.edges, Edge{
		ID:        id,
		Tail:      tail,
		Head:      head,
		Cost:      cost,
		Resources: res,
	})
	return id, nil
}

func (b *Builder) growSeen(id int) {
	if id < len(b.seen) {
		return
	}
	grown := make([]bool, id+1)
	copy(grown, b.seen)
	b.seen = grown
}

// Build finalizes the graph: sorts forward adjacency by Head and backward
// adjacency by Tail, and validates the source/sink topology invariants.
//
// Returns ErrMissingTerminal if source or sink was never added via AddNode
// or AddEdge, and ErrInvalidTopology if source has incoming edges or sink
// has outgoing edges.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	if b.sourceID < 0 || b.sourceID >= len(b.seen) || !b.seen[b.sourceID] {
		return nil, ErrMissingTerminal
	}
	if b.sinkID < 0 || b.sinkID >= len(b.seen) || !b.seen[b.sinkID] {
		return nil, ErrMissingTerminal
	}

	forward := make([][]int, b.numVertices)
	backward := make([][]int, b.numVertices)
	for _, e := range b.edges {
		if e.Tail == b.sinkID {
			return nil, ErrInvalidTopology
		}
		if e.Head == b.sourceID {
			return nil, ErrInvalidTopology
		}
		forward[e.Tail] = append(forward[e.Tail], e.ID)
		backward[e.Head] = append(backward[e.Head], e.ID)
	}

	for v := range forward {
		sort.Slice(forward[v], func(i, j int) bool {
			return b.edges[forward[v][i]].Head < b.edges[forward[v][j]].Head
		})
	}
	for v := range backward {
		sort.Slice(backward[v], func(i, j int) bool {
			return b.edges[backward[v][i]].Tail < b.edges[backward[v][j]].Tail
		})
	}

	b.built = true

	return &Graph{
		numVertices: b.numVertices,
		resourceLen: b.resourceLen,
		sourceID:    b.sourceID,
		sinkID:      b.sinkID,
		edges:       b.edges,
		forward:     forward,
		backward:    backward,
		built:       true,
	}, nil
}
