package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rcspp-go/rcspp/engine"
	"github.com/rcspp-go/rcspp/internal/genfixture"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

func almostEqualVec(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !almostEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// buildS1 constructs spec scenario S1/S2's graph:
// Source(0)->A(1) c=0 r=[1,2]; A->B(2) c=0 r=[1,0.3]; A->C(3) c=0 r=[1,0.1];
// B->C c=-10 r=[1,3]; B->Sink(4) c=10 r=[1,2]; C->Sink c=0 r=[1,10].
func buildS1(t *testing.T, direction engine.Direction) *engine.Engine {
	t.Helper()
	maxRes := []float64{4, 20}
	minRes := []float64{1, 0}
	eng, err := engine.New(5, 6, 0, 4, maxRes, minRes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	edges := []struct {
		tail, head int
		cost       float64
		res        []float64
	}{
		{0, 1, 0, []float64{1, 2}},
		{1, 2, 0, []float64{1, 0.3}},
		{1, 3, 0, []float64{1, 0.1}},
		{2, 3, -10, []float64{1, 3}},
		{2, 4, 10, []float64{1, 2}},
		{3, 4, 0, []float64{1, 10}},
	}
	for _, e := range edges {
		if err := eng.AddEdge(e.tail, e.head, e.cost, e.res); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", e.tail, e.head, err)
		}
	}
	eng.SetDirection(direction)
	return eng
}

func TestScenario_S1_Bidirectional(t *testing.T) {
	eng := buildS1(t, engine.Both)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 4}, res.Path())
	require.InDelta(t, -10, res.TotalCost(), eps)
	require.InDeltaSlice(t, []float64{4, 15.3}, res.ConsumedResources(), eps)
}

func TestScenario_S2_ForwardOnly(t *testing.T) {
	eng := buildS1(t, engine.Forward)
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !almostEqual(res.TotalCost(), -10) {
		t.Fatalf("cost: got %v want -10", res.TotalCost())
	}
	if !almostEqualVec(res.ConsumedResources(), []float64{4, 15.3}) {
		t.Fatalf("resources: got %v want [4 15.3]", res.ConsumedResources())
	}
}

func TestScenario_S3_Linear(t *testing.T) {
	eng, err := engine.New(4, 3, 0, 3, []float64{3, 3}, []float64{0, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		if err := eng.AddEdge(e[0], e[1], 1, []float64{1, 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !intSliceEqual(res.Path(), []int{0, 1, 2, 3}) {
		t.Fatalf("path: got %v", res.Path())
	}
	if !almostEqual(res.TotalCost(), 3) {
		t.Fatalf("cost: got %v want 3", res.TotalCost())
	}
	if !almostEqualVec(res.ConsumedResources(), []float64{3, 3}) {
		t.Fatalf("resources: got %v want [3 3]", res.ConsumedResources())
	}
}

func TestScenario_S4_NegativeCycle(t *testing.T) {
	eng, err := engine.New(7, 8, 0, 4, []float64{4, 20}, []float64{1, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	edges := []struct {
		tail, head int
		cost       float64
		res        []float64
	}{
		{0, 1, 0, []float64{1, 2}},
		{1, 2, 0, []float64{1, 0.3}},
		{1, 3, 0, []float64{1, 0.1}},
		{2, 3, -10, []float64{1, 3}},
		{2, 4, 10, []float64{1, 2}},
		{3, 4, 0, []float64{1, 10}},
		// Off-path negative 2-cycle between vertices 5 and 6, disconnected
		// from source/sink: total cost -8+3 = -5.
		{5, 6, -8, []float64{0, 0}},
		{6, 5, 3, []float64{0, 0}},
	}
	for _, e := range edges {
		if err := eng.AddEdge(e.tail, e.head, e.cost, e.res); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	_, err = eng.Run(context.Background())
	if err != engine.ErrNegativeCycle {
		t.Fatalf("expected ErrNegativeCycle, got %v", err)
	}
}

func TestScenario_S5_NoFeasiblePath(t *testing.T) {
	eng, err := engine.New(3, 2, 0, 2, []float64{2, 15}, []float64{0, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eng.AddEdge(0, 1, 1, []float64{1, 10}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := eng.AddEdge(1, 2, 1, []float64{1, 10}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	_, err = eng.Run(context.Background())
	if err != engine.ErrNoFeasiblePath {
		t.Fatalf("expected ErrNoFeasiblePath, got %v", err)
	}
}

// TestScenario_S6_ElementaryPruning exercises a wider graph with a dead-end
// branch (reachable from source, never reaches sink) and an unreachable
// vertex, verifying both are excluded from the optimal path by the
// reachability preprocessing pass while the live elementary path is found.
func TestScenario_S6_ElementaryPruning(t *testing.T) {
	// 0=Source 1=A 2=B(decoy) 3=C 4=D 5=E 6=Sink 7=F(dead end) 8=G(unreachable)
	eng, err := engine.New(9, 10, 0, 6, []float64{5, 5}, []float64{0, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eng.SetElementary(true)
	edges := []struct {
		tail, head int
		cost       float64
	}{
		{0, 1, 1}, // Source->A
		{1, 3, 1}, // A->C
		{3, 4, 1}, // C->D
		{4, 5, 1}, // D->E
		{5, 6, 1}, // E->Sink
		{0, 2, 10}, // Source->B (decoy, costlier)
		{2, 6, 10}, // B->Sink
		{4, 7, 1}, // D->F dead end, F never reaches Sink
	}
	for _, e := range edges {
		if err := eng.AddEdge(e.tail, e.head, e.cost, []float64{1, 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	if err := eng.AddNode(8); err != nil { // G: unreachable from Source
		t.Fatalf("AddNode: %v", err)
	}
	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 3, 4, 5, 6}, res.Path())
	require.InDelta(t, 5, res.TotalCost(), eps)
	require.InDeltaSlice(t, []float64{5, 5}, res.ConsumedResources(), eps)
}

// TestProperty_Equivalence checks invariant 5: for additive REFs, both,
// forward, and backward all agree on the optimal cost.
func TestProperty_Equivalence(t *testing.T) {
	costBoth := mustRun(t, buildS1(t, engine.Both)).TotalCost()
	costFwd := mustRun(t, buildS1(t, engine.Forward)).TotalCost()
	costBwd := mustRun(t, buildS1(t, engine.Backward)).TotalCost()
	if !almostEqual(costBoth, costFwd) || !almostEqual(costBoth, costBwd) {
		t.Fatalf("direction mismatch: both=%v forward=%v backward=%v", costBoth, costFwd, costBwd)
	}
}

// TestProperty_RoundTrip checks invariant 6: reversing every edge and
// swapping source/sink, a forward-only run matches the original's
// backward-only cost.
func TestProperty_RoundTrip(t *testing.T) {
	backwardOriginal := mustRun(t, buildS1(t, engine.Backward)).TotalCost()

	eng, err := engine.New(5, 6, 4, 0, []float64{4, 20}, []float64{1, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reversedEdges := []struct {
		tail, head int
		cost       float64
		res        []float64
	}{
		{1, 0, 0, []float64{1, 2}},
		{2, 1, 0, []float64{1, 0.3}},
		{3, 1, 0, []float64{1, 0.1}},
		{3, 2, -10, []float64{1, 3}},
		{4, 2, 10, []float64{1, 2}},
		{4, 3, 0, []float64{1, 10}},
	}
	for _, e := range reversedEdges {
		if err := eng.AddEdge(e.tail, e.head, e.cost, e.res); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	eng.SetDirection(engine.Forward)
	res := mustRun(t, eng)
	if !almostEqual(res.TotalCost(), backwardOriginal) {
		t.Fatalf("round-trip cost mismatch: reversed-forward=%v original-backward=%v", res.TotalCost(), backwardOriginal)
	}
}

// TestProperty_JoinedFeasibility_Rapid is a rapid-based property test:
// for randomly generated small chain graphs with random per-edge resource
// consumption, any result Run returns satisfies invariant 4 (resources
// within [min_res, max_res]) and invariant 3 (the path's accumulated
// resource is consistent with its edges).
func TestProperty_JoinedFeasibility_Rapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 6).Draw(rt, "n")
		edgeRes := make([][2]float64, n-1)
		totalR0, totalR1 := 0.0, 0.0
		for i := 0; i < n-1; i++ {
			r0 := rapid.Float64Range(0.1, 2).Draw(rt, "r0")
			r1 := rapid.Float64Range(0.1, 2).Draw(rt, "r1")
			edgeRes[i] = [2]float64{r0, r1}
			totalR0 += r0
			totalR1 += r1
		}
		maxRes := []float64{totalR0 + 0.5, totalR1 + 0.5}
		minRes := []float64{0, 0}

		eng, err := engine.New(n, n-1, 0, n-1, maxRes, minRes)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := 0; i < n-1; i++ {
			if err := eng.AddEdge(i, i+1, 1, []float64{edgeRes[i][0], edgeRes[i][1]}); err != nil {
				t.Fatalf("AddEdge: %v", err)
			}
		}
		res, err := eng.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		consumed := res.ConsumedResources()
		for i, v := range consumed {
			if v > maxRes[i]+eps || v < minRes[i]-eps {
				t.Fatalf("resource %d out of bounds: %v not in [%v,%v]", i, v, minRes[i], maxRes[i])
			}
		}
		if !almostEqual(consumed[0], totalR0) || !almostEqual(consumed[1], totalR1) {
			t.Fatalf("consumed resources %v do not match the only path's total [%v %v]", consumed, totalR0, totalR1)
		}
	})
}

// TestProperty_DirectionEquivalence_RandomSparse_Rapid draws random sparse
// layered instances from internal/genfixture and checks that Forward,
// Backward, and Both all agree on the optimal cost whenever a feasible path
// exists at all.
func TestProperty_DirectionEquivalence_RandomSparse_Rapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(3, 9).Draw(rt, "n")
		p := rapid.Float64Range(0.0, 0.6).Draw(rt, "p")
		seed := rapid.Int64Range(0, 1<<30).Draw(rt, "seed")

		params := genfixture.Params{
			N:             n,
			P:             p,
			ResourceLen:   1,
			MinCost:       1,
			MaxCost:       5,
			MinResource:   0.1,
			MaxResource:   1,
			ResourceFloor: 0,
			ResourceCap:   float64(n) * 2,
		}

		directions := []engine.Direction{engine.Forward, engine.Backward, engine.Both}
		var costs []float64
		var feasible []bool
		for _, dir := range directions {
			eng, err := genfixture.Build(seed, params)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			eng.SetDirection(dir)
			res, err := eng.Run(context.Background())
			if err != nil {
				feasible = append(feasible, false)
				costs = append(costs, 0)
				continue
			}
			feasible = append(feasible, true)
			costs = append(costs, res.TotalCost())
		}

		for i := 1; i < len(feasible); i++ {
			if feasible[i] != feasible[0] {
				t.Fatalf("feasibility disagreement across directions: %v", feasible)
			}
			if feasible[i] && !almostEqual(costs[i], costs[0]) {
				t.Fatalf("cost disagreement across directions: %v", costs)
			}
		}
	})
}

// TestScenario_LowerBoundRejection builds a graph where two parallel edges
// leave the same vertex toward the same successor: a cheap one that drives a
// non-critical resource below the configured floor, and a costlier one that
// stays within bounds. The cheap edge's resulting label would componentwise
// dominate the costlier one's (equal critical resource, strictly lower
// secondary resource, lower cost) despite being infeasible, so unless
// infeasible labels are rejected before the dominance check, the only
// feasible path gets evicted from the store and Run reports no path at all.
func TestScenario_LowerBoundRejection(t *testing.T) {
	const (
		source = 0
		mid    = 1
		v      = 2
		sink   = 3
	)
	maxRes := []float64{10, 10}
	minRes := []float64{0, 0}
	eng, err := engine.New(4, 4, source, sink, maxRes, minRes)
	require.NoError(t, err)

	edges := []struct {
		tail, head int
		cost       float64
		res        []float64
	}{
		{source, mid, 0, []float64{1, 0}},
		{mid, v, 1, []float64{1, -5}}, // cheap but dips resource 1 below its floor
		{mid, v, 5, []float64{1, 0}},  // costlier but stays within bounds
		{v, sink, 0, []float64{1, 1}},
	}
	for _, e := range edges {
		require.NoError(t, eng.AddEdge(e.tail, e.head, e.cost, e.res))
	}
	eng.SetDirection(engine.Forward)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{source, mid, v, sink}, res.Path())
	require.InDelta(t, 5, res.TotalCost(), eps)
	require.InDeltaSlice(t, []float64{3, 1}, res.ConsumedResources(), eps)
}

func mustRun(t *testing.T, eng *engine.Engine) *engine.Result {
	t.Helper()
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
