package engine

// Result is the outcome of a completed Run: the vertex sequence from source
// to sink, its total scalar cost, and its total resource consumption.
type Result struct {
	path      []int
	totalCost float64
	resources []float64
}

// Path returns the vertex sequence from source to sink, inclusive.
func (r *Result) Path() []int {
	return append([]int(nil), r.path...)
}

// TotalCost returns the path's accumulated scalar cost.
func (r *Result) TotalCost() float64 {
	return r.totalCost
}

// ConsumedResources returns the path's total resource-consumption vector.
func (r *Result) ConsumedResources() []float64 {
	return append([]float64(nil), r.resources...)
}

// candidate is an in-progress incumbent: a feasible source-to-sink path
// found either by joining a forward and a backward label across a bridge
// edge, or directly by a single-direction label that already reached the
// opposite terminal.
type candidate struct {
	cost      float64
	resources []float64
	path      []int
}

// betterThan reports whether c is a strict improvement over other under the
// canonical tie-break: lower cost first, then lexicographically smaller
// resource vector.
func (c candidate) betterThan(other candidate) bool {
	if c.cost != other.cost {
		return c.cost < other.cost
	}
	for i := range c.resources {
		if c.resources[i] != other.resources[i] {
			return c.resources[i] < other.resources[i]
		}
	}
	return false
}

func (c candidate) toResult() *Result {
	return &Result{
		path:      append([]int(nil), c.path...),
		totalCost: c.cost,
		resources: append([]float64(nil), c.resources...),
	}
}
