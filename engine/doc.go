// Package engine implements the bidirectional RCSPP labeling search: the
// dynamic-halfway-coordinated forward/backward frontiers, the
// Righini-Salani bridge-edge joiner, and the result extractor, behind a
// small construction/execution API.
//
// An Engine has an explicit lifecycle: building → preprocessed → running →
// done. AddNode/AddEdge are only valid while building; Run transitions
// through preprocessed and running and leaves the Engine done, holding its
// Result. The shape — functional construction plus a staged runner with a
// deadline-checked main loop — generalizes a single-criterion shortest-path
// solver to multi-criterion resource-constrained labeling.
package engine

import (
	"errors"
)

// Sentinel errors returned by New, AddNode, AddEdge, and Run.
var (
	// ErrInvalidTopology mirrors graph.ErrInvalidTopology.
	ErrInvalidTopology = errors.New("engine: source has incoming edges or sink has outgoing edges")

	// ErrMissingTerminal mirrors graph.ErrMissingTerminal.
	ErrMissingTerminal = errors.New("engine: source or sink vertex missing")

	// ErrNegativeCycle mirrors preprocess.ErrNegativeCycle.
	ErrNegativeCycle = errors.New("engine: negative-cost cycle detected during preprocessing")

	// ErrNoFeasiblePath indicates the search completed with no admissible
	// source-to-sink path, direct or joined.
	ErrNoFeasiblePath = errors.New("engine: no feasible path")

	// ErrAborted indicates the caller's deadline or stop signal fired before
	// the search completed; Run still returns the best incumbent found so
	// far, which may be nil.
	ErrAborted = errors.New("engine: search aborted before completion")

	// ErrBadCallback indicates a REF returned a wrong-length resource vector
	// or violated critical-resource monotonicity, detected at expansion time.
	ErrBadCallback = errors.New("engine: REF callback violated its contract")

	// ErrResourceBoundsLength indicates max_res and min_res have different
	// lengths, or length 0 (a critical resource is always required).
	ErrResourceBoundsLength = errors.New("engine: max_res and min_res must have equal, nonzero length")

	// ErrWrongState indicates a method was called outside its valid
	// lifecycle stage (e.g. AddEdge after Run, or Run twice).
	ErrWrongState = errors.New("engine: invalid call for current engine state")
)

// Direction selects which side(s) of the search to run.
type Direction int

const (
	// Forward runs only the forward frontier to the sink.
	Forward Direction = iota
	// Backward runs only the backward frontier to the source.
	Backward
	// Both runs the bidirectional search with dynamic halfway coordination.
	Both
)

// state tags the engine's lifecycle position.
type state int

const (
	stateBuilding state = iota
	statePreprocessed
	stateRunning
	stateDone
)
