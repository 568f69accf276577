package engine

import (
	"time"

	"github.com/rcspp-go/rcspp/ref"
)

// Options configures a search run. Use the Set* setters on Engine (which
// mutate an internal Options value) rather than constructing this directly;
// it is exported so callers can inspect the effective configuration.
type Options struct {
	Direction  Direction
	Elementary bool
	REF        ref.Set
	TimeLimit  time.Duration
}

// DefaultOptions returns the Options an Engine starts with: bidirectional
// search, non-elementary, additive REFs, no time limit.
func DefaultOptions() Options {
	return Options{
		Direction:  Both,
		Elementary: false,
		REF:        ref.Set{},
		TimeLimit:  0,
	}
}
