// Package history persists one row per engine.Run invocation to Postgres,
// for later inspection of solved instances and their outcomes.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rcspp-go/rcspp/pkg/config"
)

// ErrRunNotFound is returned by Store.GetByID when no row matches id.
var ErrRunNotFound = errors.New("history: run not found")

// Run is one recorded engine.Run outcome.
type Run struct {
	ID          string
	SourceID    int
	SinkID      int
	NodeCount   int
	EdgeCount   int
	Direction   string // forward, backward, both
	Elementary  bool
	Outcome     string // ok, no_feasible_path, negative_cycle, aborted, error
	TotalCost   float64
	Resources   []float64
	Path        []int
	DurationMs  float64
	CreatedAt   time.Time
}

// Store records and retrieves Run rows.
type Store interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit int) ([]*Run, error)
	Close()
}

// PostgresStore is a pgxpool-backed Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool per cfg and verifies it with a
// ping before returning.
func NewPostgresStore(ctx context.Context, cfg config.HistoryConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("history: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("history: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Schema is the DDL NewPostgresStore's caller is expected to have applied.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	source_id       INTEGER NOT NULL,
	sink_id         INTEGER NOT NULL,
	node_count      INTEGER NOT NULL,
	edge_count      INTEGER NOT NULL,
	direction       TEXT NOT NULL,
	elementary      BOOLEAN NOT NULL,
	outcome         TEXT NOT NULL,
	total_cost      DOUBLE PRECISION,
	resources       JSONB,
	path            JSONB,
	duration_ms     DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *PostgresStore) Create(ctx context.Context, run *Run) error {
	resourcesJSON, err := json.Marshal(run.Resources)
	if err != nil {
		return fmt.Errorf("history: marshal resources: %w", err)
	}
	pathJSON, err := json.Marshal(run.Path)
	if err != nil {
		return fmt.Errorf("history: marshal path: %w", err)
	}

	query := `
		INSERT INTO runs (
			id, source_id, sink_id, node_count, edge_count,
			direction, elementary, outcome, total_cost, resources, path, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	err = s.pool.QueryRow(ctx, query,
		run.ID, run.SourceID, run.SinkID, run.NodeCount, run.EdgeCount,
		run.Direction, run.Elementary, run.Outcome, run.TotalCost,
		resourcesJSON, pathJSON, run.DurationMs,
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("history: insert run: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Run, error) {
	query := `
		SELECT id, source_id, sink_id, node_count, edge_count,
			direction, elementary, outcome, total_cost, resources, path, duration_ms, created_at
		FROM runs WHERE id = $1
	`
	run := &Run{}
	var resourcesJSON, pathJSON []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.SourceID, &run.SinkID, &run.NodeCount, &run.EdgeCount,
		&run.Direction, &run.Elementary, &run.Outcome, &run.TotalCost,
		&resourcesJSON, &pathJSON, &run.DurationMs, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("history: get run: %w", err)
	}
	if err := json.Unmarshal(resourcesJSON, &run.Resources); err != nil {
		return nil, fmt.Errorf("history: unmarshal resources: %w", err)
	}
	if err := json.Unmarshal(pathJSON, &run.Path); err != nil {
		return nil, fmt.Errorf("history: unmarshal path: %w", err)
	}
	return run, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `
		SELECT id, source_id, sink_id, node_count, edge_count,
			direction, elementary, outcome, total_cost, resources, path, duration_ms, created_at
		FROM runs ORDER BY created_at DESC LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run := &Run{}
		var resourcesJSON, pathJSON []byte
		if err := rows.Scan(
			&run.ID, &run.SourceID, &run.SinkID, &run.NodeCount, &run.EdgeCount,
			&run.Direction, &run.Elementary, &run.Outcome, &run.TotalCost,
			&resourcesJSON, &pathJSON, &run.DurationMs, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		_ = json.Unmarshal(resourcesJSON, &run.Resources)
		_ = json.Unmarshal(pathJSON, &run.Path)
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
