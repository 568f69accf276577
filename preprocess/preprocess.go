package preprocess

import (
	"context"

	"github.com/rcspp-go/rcspp/graph"
)

// Result bundles the outcome of all three preprocessing passes.
type Result struct {
	Reachability Reachability
	Tables       Tables
}

// TableSource optionally supplies a previously computed Tables for a graph,
// keyed by whatever the caller considers a stable identity for it (e.g. a
// canonical hash — see pkg/cache). A cache miss (ok == false) is always
// correct and simply causes Run to recompute Tables from scratch; this
// interface exists purely as an external speed-up, never as a correctness
// dependency of the core.
type TableSource interface {
	Lookup(ctx context.Context, key string) (Tables, bool)
	Store(ctx context.Context, key string, t Tables)
}

// Run executes DetectNegativeCycle, ComputeReachability, and
// ComputeLowerBoundTables in that order: negative-cycle detection must
// happen before the lower-bound Bellman-Ford sweeps are trusted to
// converge.
//
// If cache is non-nil and cacheKey is non-empty, a cache hit skips the
// lower-bound Bellman-Ford sweeps entirely; a miss computes them and stores
// the result for next time.
func Run(ctx context.Context, g *graph.Graph, cache TableSource, cacheKey string) (Result, error) {
	if witness, err := DetectNegativeCycle(ctx, g); err != nil {
		return Result{}, err
	} else if witness != nil {
		// DetectNegativeCycle returns a non-nil witness only alongside
		// ErrNegativeCycle, handled above; this branch is unreachable but
		// kept for clarity of the contract.
		return Result{}, ErrNegativeCycle
	}

	reach := ComputeReachability(g)

	if cache != nil && cacheKey != "" {
		if tables, ok := cache.Lookup(ctx, cacheKey); ok {
			return Result{Reachability: reach, Tables: tables}, nil
		}
	}

	tables := ComputeLowerBoundTables(g, reach.Live)

	if cache != nil && cacheKey != "" {
		cache.Store(ctx, cacheKey, tables)
	}

	return Result{Reachability: reach, Tables: tables}, nil
}
