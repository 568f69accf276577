package preprocess

import (
	"context"

	"github.com/rcspp-go/rcspp/graph"
)

const negCycleCheckInterval = 64

// DetectNegativeCycle runs a Bellman-Ford relaxation over g's scalar costs
// and reports the first negative-cost cycle found, as a vertex sequence
// (witness[0] == witness[len-1]), for diagnostics. It returns (nil, nil) if
// no negative cycle exists.
//
// Relaxation proceeds for NumVertices-1 rounds over all edges in a
// deterministic (edge-id) order; a further relaxing edge on round V
// identifies a vertex on or downstream of a negative cycle, and the witness
// is reconstructed by following parent links backward until a vertex
// repeats.
func DetectNegativeCycle(ctx context.Context, g *graph.Graph) ([]int, error) {
	n := g.NumVertices()
	dist := make([]float64, n)
	parent := make([]int, n)
	for v := range parent {
		parent[v] = -1
	}

	edges := g.Edges()

	for round := 0; round < n-1; round++ {
		if round%negCycleCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		updated := false
		for _, e := range edges {
			nd := dist[e.Tail] + e.Cost
			if nd < dist[e.Head] {
				dist[e.Head] = nd
				parent[e.Head] = e.Tail
				updated = true
			}
		}
		if !updated {
			break
		}
	}

	// One more pass: any edge that still relaxes touches a negative cycle.
	cycleVertex := -1
	for _, e := range edges {
		if dist[e.Tail]+e.Cost < dist[e.Head] {
			parent[e.Head] = e.Tail
			cycleVertex = e.Head
			break
		}
	}
	if cycleVertex == -1 {
		return nil, nil
	}

	// Walk back n times to guarantee landing strictly inside the cycle.
	v := cycleVertex
	for i := 0; i < n; i++ {
		v = parent[v]
	}

	// Now walk the cycle from v until we return to v.
	cycle := []int{v}
	for cur := parent[v]; cur != v; cur = parent[cur] {
		cycle = append(cycle, cur)
	}
	cycle = append(cycle, v)

	// cycle was collected tail-to-head walking parents; reverse it so it
	// reads in traversal order (edge direction), closing on itself.
	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}

	return cycle, ErrNegativeCycle
}
