package history

import (
	"context"
	"os"
	"testing"

	"github.com/rcspp-go/rcspp/pkg/config"
)

func skipIfNoPostgres(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("HISTORY_TEST_DSN")
	if dsn == "" {
		t.Skip("HISTORY_TEST_DSN not set, skipping Postgres-backed history tests")
	}
	return dsn
}

func TestPostgresStore_CreateAndGet(t *testing.T) {
	dsn := skipIfNoPostgres(t)
	ctx := context.Background()

	store, err := NewPostgresStore(ctx, config.HistoryConfig{DSN: dsn})
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer store.Close()

	run := &Run{
		ID:         "test-run-1",
		SourceID:   0,
		SinkID:     4,
		NodeCount:  5,
		EdgeCount:  6,
		Direction:  "both",
		Elementary: false,
		Outcome:    "ok",
		TotalCost:  -10,
		Resources:  []float64{4, 15.3},
		Path:       []int{0, 1, 2, 3, 4},
		DurationMs: 1.5,
	}

	if err := store.Create(ctx, run); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TotalCost != run.TotalCost {
		t.Errorf("TotalCost = %v, want %v", got.TotalCost, run.TotalCost)
	}
	if len(got.Path) != len(run.Path) {
		t.Errorf("Path length = %d, want %d", len(got.Path), len(run.Path))
	}
}

func TestPostgresStore_GetByID_NotFound(t *testing.T) {
	dsn := skipIfNoPostgres(t)
	ctx := context.Background()

	store, err := NewPostgresStore(ctx, config.HistoryConfig{DSN: dsn})
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer store.Close()

	if _, err := store.GetByID(ctx, "does-not-exist"); err != ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
