// Package preprocess implements the three passes a search run needs before
// it starts: negative-cost-cycle detection, reachability pruning, and
// lower-bound cost-to-target table construction.
//
// All three passes look only at topology and scalar edge cost — never at
// resource vectors — and run once per graph, ahead of any label search.
// Their Bellman-Ford relaxation loops iterate over edges in deterministic
// edge-id order and exit early once no edge relaxes. Only
// DetectNegativeCycle checks for context cancellation, periodically rather
// than on every round.
package preprocess

import "errors"

// ErrNegativeCycle is returned by DetectNegativeCycle when a cycle of
// strictly negative total scalar cost exists anywhere in the graph.
var ErrNegativeCycle = errors.New("preprocess: negative-cost cycle detected")
