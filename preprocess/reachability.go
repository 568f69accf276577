package preprocess

import "github.com/rcspp-go/rcspp/graph"

// Reachability holds, per vertex, whether it lies on some source→sink
// topological path: reachable from the source going forward, and able to
// reach the sink going backward. Live is the conjunction of both — the set
// of vertices the reachability pass keeps.
type Reachability struct {
	FromSource []bool
	ToSink     []bool
	Live       []bool
}

// ComputeReachability runs two plain BFS sweeps — forward from source,
// backward from sink — and returns the conjunction. This pass is
// conservative: it considers topology only, never resource feasibility.
func ComputeReachability(g *graph.Graph) Reachability {
	n := g.NumVertices()
	r := Reachability{
		FromSource: bfs(n, g.Source(), g.Forward, func(e int) int { return g.Edge(e).Head }),
		ToSink:     bfs(n, g.Sink(), g.Backward, func(e int) int { return g.Edge(e).Tail }),
	}
	r.Live = make([]bool, n)
	for v := 0; v < n; v++ {
		r.Live[v] = r.FromSource[v] && r.ToSink[v]
	}
	return r
}

// bfs performs a breadth-first traversal starting at start, using adj(v) to
// list incident edge ids and next(edgeID) to map an edge to the neighbor it
// reaches, and returns the visited-vertex bitmap.
func bfs(n, start int, adj func(int) []int, next func(int) int) []bool {
	visited := make([]bool, n)
	visited[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, eid := range adj(v) {
			w := next(eid)
			if !visited[w] {
				visited[w] = true
				queue = append(queue, w)
			}
		}
	}
	return visited
}
