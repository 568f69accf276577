package preprocess

import (
	"math"

	"github.com/rcspp-go/rcspp/graph"
)

// Tables holds the admissible pruning oracles computed once per graph: for
// each live vertex v, the minimum scalar cost of any v→sink
// path (ToSink) and of any source→v path (FromSource), both ignoring
// resource constraints entirely. A vertex pruned by Reachability.Live gets
// +Inf in both tables.
//
// These must be computed after DetectNegativeCycle has confirmed the graph
// has no negative cycle — otherwise the Bellman-Ford sweep below would not
// converge to a well-defined shortest distance.
type Tables struct {
	ToSink     []float64
	FromSource []float64
}

// ComputeLowerBoundTables runs two Bellman-Ford sweeps: one over g's edges
// to get FromSource (source, forward), and one over the transposed edge set
// to get ToSink (sink, backward — equivalently, shortest path to sink in
// the original graph). Vertices outside live are left at +Inf in both
// tables.
func ComputeLowerBoundTables(g *graph.Graph, live []bool) Tables {
	n := g.NumVertices()
	edges := g.Edges()

	fromSource := bellmanFordCost(n, g.Source(), edges, live, false)
	toSink := bellmanFordCost(n, g.Sink(), edges, live, true)

	return Tables{ToSink: toSink, FromSource: fromSource}
}

// bellmanFordCost computes shortest scalar-cost distances from src, either
// along edges as given (reverse == false) or along their transpose
// (reverse == true, used to get "distance to src going backward" i.e.
// distance-to-sink in the original orientation). Vertices with live[v] ==
// false are excluded from relaxation and left at +Inf.
func bellmanFordCost(n, src int, edges []graph.Edge, live []bool, reverse bool) []float64 {
	dist := make([]float64, n)
	for v := range dist {
		dist[v] = math.Inf(1)
	}
	if live != nil && !live[src] {
		return dist
	}
	dist[src] = 0

	for round := 0; round < n-1; round++ {
		updated := false
		for _, e := range edges {
			tail, head := e.Tail, e.Head
			if reverse {
				tail, head = e.Head, e.Tail
			}
			if live != nil && (!live[tail] || !live[head]) {
				continue
			}
			if math.IsInf(dist[tail], 1) {
				continue
			}
			nd := dist[tail] + e.Cost
			if nd < dist[head] {
				dist[head] = nd
				updated = true
			}
		}
		if !updated {
			break
		}
	}
	return dist
}
