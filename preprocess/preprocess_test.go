package preprocess_test

import (
	"context"
	"math"
	"testing"

	"github.com/rcspp-go/rcspp/graph"
	"github.com/rcspp-go/rcspp/preprocess"
)

func buildLinear(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(4, 3, 0, 3, 1)
	mustAddEdge(t, b, 0, 1, 1)
	mustAddEdge(t, b, 1, 2, 1)
	mustAddEdge(t, b, 2, 3, 1)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func mustAddEdge(t *testing.T, b *graph.Builder, tail, head int, cost float64) {
	t.Helper()
	if _, err := b.AddEdge(tail, head, cost, []float64{1}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
}

func TestDetectNegativeCycle_None(t *testing.T) {
	g := buildLinear(t)
	witness, err := preprocess.DetectNegativeCycle(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if witness != nil {
		t.Fatalf("expected no witness, got %v", witness)
	}
}

func TestDetectNegativeCycle_Found(t *testing.T) {
	// Source->A->B->Sink plus an off-path negative 2-cycle X<->Y.
	b := graph.NewBuilder(6, 5, 0, 3, 1)
	mustAddEdge(t, b, 0, 1, 1)
	mustAddEdge(t, b, 1, 3, 1)
	mustAddEdge(t, b, 4, 5, -3)
	mustAddEdge(t, b, 5, 4, 1)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = preprocess.DetectNegativeCycle(context.Background(), g)
	if err != preprocess.ErrNegativeCycle {
		t.Fatalf("expected ErrNegativeCycle, got %v", err)
	}
}

func TestComputeReachability_PrunesDeadEnds(t *testing.T) {
	// 0->1->3 is the live path; 0->2 is a dead end that never reaches sink 3.
	b := graph.NewBuilder(4, 3, 0, 3, 1)
	mustAddEdge(t, b, 0, 1, 1)
	mustAddEdge(t, b, 1, 3, 1)
	mustAddEdge(t, b, 0, 2, 1)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	reach := preprocess.ComputeReachability(g)
	if !reach.Live[0] || !reach.Live[1] || !reach.Live[3] {
		t.Fatalf("expected 0,1,3 live, got %v", reach.Live)
	}
	if reach.Live[2] {
		t.Fatalf("expected 2 pruned as a dead end")
	}
}

func TestComputeLowerBoundTables(t *testing.T) {
	g := buildLinear(t)
	reach := preprocess.ComputeReachability(g)
	tables := preprocess.ComputeLowerBoundTables(g, reach.Live)

	if tables.FromSource[3] != 3 {
		t.Fatalf("expected FromSource[sink]=3, got %v", tables.FromSource[3])
	}
	if tables.ToSink[0] != 3 {
		t.Fatalf("expected ToSink[source]=3, got %v", tables.ToSink[0])
	}
	if tables.ToSink[3] != 0 {
		t.Fatalf("expected ToSink[sink]=0, got %v", tables.ToSink[3])
	}
}

func TestRun_NegativeCycleStopsPreprocessing(t *testing.T) {
	b := graph.NewBuilder(6, 5, 0, 3, 1)
	mustAddEdge(t, b, 0, 1, 1)
	mustAddEdge(t, b, 1, 3, 1)
	mustAddEdge(t, b, 4, 5, -3)
	mustAddEdge(t, b, 5, 4, 1)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = preprocess.Run(context.Background(), g, nil, "")
	if err != preprocess.ErrNegativeCycle {
		t.Fatalf("expected ErrNegativeCycle, got %v", err)
	}
}

func TestRun_CacheHitSkipsRecompute(t *testing.T) {
	g := buildLinear(t)
	cache := &fakeCache{}
	res1, err := preprocess.Run(context.Background(), g, cache, "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.stores != 1 {
		t.Fatalf("expected one store after a miss, got %d", cache.stores)
	}
	res2, err := preprocess.Run(context.Background(), g, cache, "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.lookups != 2 {
		t.Fatalf("expected two lookups, got %d", cache.lookups)
	}
	if math.Abs(res1.Tables.FromSource[3]-res2.Tables.FromSource[3]) > 1e-9 {
		t.Fatalf("cached tables diverge from recomputed tables")
	}
}

type fakeCache struct {
	stored  preprocess.Tables
	have    bool
	lookups int
	stores  int
}

func (f *fakeCache) Lookup(_ context.Context, _ string) (preprocess.Tables, bool) {
	f.lookups++
	return f.stored, f.have
}

func (f *fakeCache) Store(_ context.Context, _ string, t preprocess.Tables) {
	f.stores++
	f.stored = t
	f.have = true
}
