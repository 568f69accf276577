// Package graph defines the immutable, post-build directed graph store that
// backs the RCSPP engine.
//
// A graph is built in two phases. During the build phase, AddNode and AddEdge
// may be called in arbitrary order; vertex ids are dense integers in
// [0, N), edges carry a scalar cost and a fixed-length resource-consumption
// vector, and parallel edges between the same (tail, head) pair are
// permitted. An explicit call to Build finalizes the graph (queries live on
// the Graph that Build returns): adjacency lists are sorted by head for forward traversal and by
// tail for backward traversal, and the distinguished source/sink vertices
// are validated.
//
// Graphs are read-only after Build and may be shared across concurrent
// search runs.
package graph

import "errors"

// Sentinel errors for graph construction and finalization.
var (
	// ErrEmptyVertexID is returned when AddNode receives a negative id.
	ErrEmptyVertexID = errors.New("graph: vertex id out of range")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrResourceLength indicates an edge's resource vector length does not
	// match the graph's resource dimension R.
	ErrResourceLength = errors.New("graph: resource vector length mismatch")

	// ErrInvalidTopology indicates the source has incoming edges or the sink
	// has outgoing edges.
	ErrInvalidTopology = errors.New("graph: source has incoming edges or sink has outgoing edges")

	// ErrMissingTerminal indicates the source or sink vertex was never added.
	ErrMissingTerminal = errors.New("graph: source or sink vertex missing")

	// ErrAlreadyBuilt indicates Build was called twice, or AddNode/AddEdge
	// was called after the graph was finalized.
	ErrAlreadyBuilt = errors.New("graph: graph already built")
)
