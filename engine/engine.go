package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"errors"

	"github.com/rcspp-go/rcspp/graph"
	"github.com/rcspp-go/rcspp/preprocess"
	"github.com/rcspp-go/rcspp/ref"
)

// Engine is the public construction/execution handle: new_engine →
// add_node/add_edge (repeated) → set_* (repeated) → run →
// get_path/get_total_cost/get_consumed_resources.
type Engine struct {
	builder *graph.Builder
	g       *graph.Graph

	sourceID, sinkID int
	maxRes, minRes   []float64
	resourceLen      int

	opts Options

	tableCache preprocess.TableSource

	state  state
	result *Result
}

// New constructs an Engine for a graph with the given vertex/edge capacity
// hints, distinguished source/sink ids, and resource bounds. len(maxRes)
// must equal len(minRes) and be ≥ 1 (the first coordinate is always the
// critical resource).
func New(numVerticesHint, numEdgesHint, sourceID, sinkID int, maxRes, minRes []float64) (*Engine, error) {
	if len(maxRes) == 0 || len(maxRes) != len(minRes) {
		return nil, ErrResourceBoundsLength
	}
	maxCopy := append([]float64(nil), maxRes...)
	minCopy := append([]float64(nil), minRes...)

	return &Engine{
		builder:     graph.NewBuilder(numVerticesHint, numEdgesHint, sourceID, sinkID, len(maxRes)),
		sourceID:    sourceID,
		sinkID:      sinkID,
		maxRes:      maxCopy,
		minRes:      minCopy,
		resourceLen: len(maxRes),
		opts:        DefaultOptions(),
		state:       stateBuilding,
	}, nil
}

// AddNode registers a vertex id. Valid only while building.
func (e *Engine) AddNode(id int) error {
	if e.state != stateBuilding {
		return ErrWrongState
	}
	return e.builder.AddNode(id)
}

// AddEdge adds a directed edge. Valid only while building.
func (e *Engine) AddEdge(tail, head int, cost float64, resources []float64) error {
	if e.state != stateBuilding {
		return ErrWrongState
	}
	_, err := e.builder.AddEdge(tail, head, cost, resources)
	return err
}

// SetDirection selects monodirectional or bidirectional search.
func (e *Engine) SetDirection(d Direction) { e.opts.Direction = d }

// SetElementary enables no-repeat-node enforcement at the joiner.
func (e *Engine) SetElementary(b bool) { e.opts.Elementary = b }

// SetREF installs a user REF bundle; unset slots keep the additive default.
func (e *Engine) SetREF(s ref.Set) { e.opts.REF = s }

// SetTimeLimit sets an advisory cancellation deadline, checked between
// expansions during Run.
func (e *Engine) SetTimeLimit(d time.Duration) { e.opts.TimeLimit = d }

// SetTableCache installs an optional cross-run cache for preprocessing's
// lower-bound tables (see preprocess.TableSource). Run looks up a key
// derived from the built graph's topology before computing tables from
// scratch, and stores the result under that key afterward. Nil disables
// caching, which is the default.
func (e *Engine) SetTableCache(c preprocess.TableSource) { e.tableCache = c }

// Result returns the last Run's result, or nil if Run has not completed.
func (e *Engine) Result() *Result { return e.result }

// Run builds the graph, preprocesses it (negative-cycle detection,
// reachability, lower-bound tables), then performs the configured labeling
// search. It may be called only once per Engine, from the building state.
//
// On success it returns the optimal path's Result. On ErrNegativeCycle or
// ErrNoFeasiblePath it returns (nil, err). On ErrAborted (the configured
// TimeLimit or ctx firing first) it returns the best incumbent found so
// far, which may be nil, alongside the error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.state != stateBuilding {
		return nil, ErrWrongState
	}

	g, err := e.builder.Build()
	if err != nil {
		e.state = stateDone
		return nil, mapBuildError(err)
	}
	e.g = g
	e.state = statePreprocessed

	pre, err := preprocess.Run(ctx, g, e.tableCache, graphCacheKey(g))
	if err != nil {
		e.state = stateDone
		if errors.Is(err, preprocess.ErrNegativeCycle) {
			return nil, ErrNegativeCycle
		}
		return nil, err
	}

	e.state = stateRunning

	runCtx := ctx
	if e.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.opts.TimeLimit)
		defer cancel()
	}

	rn := newRunner(g, e.opts, pre, e.minRes, e.maxRes)
	cand, runErr := rn.run(runCtx)
	e.state = stateDone

	if runErr != nil {
		if cand != nil {
			e.result = cand.toResult()
		}
		return e.result, runErr
	}
	if cand == nil {
		return nil, ErrNoFeasiblePath
	}
	e.result = cand.toResult()
	return e.result, nil
}

// graphCacheKey derives a deterministic cache key from a built graph's
// topology, costs, and resource vectors. g.Edges() is in insertion order, so
// the per-edge records are sorted before hashing, making the key independent
// of the order in which edges were added.
// Ignored by Run when no TableSource is installed.
func graphCacheKey(g *graph.Graph) string {
	h := sha256.New()
	fmt.Fprintf(h, "s:%d,t:%d,n:%d,r:%d;", g.Source(), g.Sink(), g.NumVertices(), g.ResourceLen())
	records := make([]string, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		records = append(records, fmt.Sprintf("e:%d:%d:%.6f:%v;", e.Tail, e.Head, e.Cost, e.Resources))
	}
	sort.Strings(records)
	for _, rec := range records {
		fmt.Fprint(h, rec)
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// mapBuildError translates graph.Builder's sentinel errors to their engine
// equivalents so callers only ever need to check against the engine
// package's own sentinels.
func mapBuildError(err error) error {
	switch {
	case errors.Is(err, graph.ErrMissingTerminal):
		return ErrMissingTerminal
	case errors.Is(err, graph.ErrInvalidTopology):
		return ErrInvalidTopology
	default:
		return err
	}
}
