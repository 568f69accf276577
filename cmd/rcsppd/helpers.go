package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rcspp-go/rcspp/engine"
	"github.com/rcspp-go/rcspp/internal/bcformat"
	"github.com/rcspp-go/rcspp/pkg/history"
)

// resolveDirection picks the flag value over the config default, falling
// back to bidirectional search if neither names a valid direction.
func resolveDirection(flagValue, configDefault string) engine.Direction {
	v := flagValue
	if v == "" {
		v = configDefault
	}
	switch strings.ToLower(v) {
	case "forward":
		return engine.Forward
	case "backward":
		return engine.Backward
	default:
		return engine.Both
	}
}

func directionLabel(d engine.Direction) string {
	switch d {
	case engine.Forward:
		return "forward"
	case engine.Backward:
		return "backward"
	default:
		return "both"
	}
}

// outcomeOf classifies a Run error into the label recorded in metrics and
// history; a nil error is "ok".
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, engine.ErrNoFeasiblePath):
		return "no_feasible_path"
	case errors.Is(err, engine.ErrNegativeCycle):
		return "negative_cycle"
	case errors.Is(err, engine.ErrAborted):
		return "aborted"
	default:
		return "error"
	}
}

func recordHistory(
	ctx context.Context,
	store *history.PostgresStore,
	inst *bcformat.Instance,
	dir engine.Direction,
	elementary bool,
	outcome string,
	result *engine.Result,
	elapsed time.Duration,
	log *slog.Logger,
) {
	run := &history.Run{
		ID:         strconv.FormatInt(time.Now().UnixNano(), 36),
		SourceID:   inst.SourceID,
		SinkID:     inst.SinkID,
		NodeCount:  inst.NumVertices,
		EdgeCount:  len(inst.Edges),
		Direction:  directionLabel(dir),
		Elementary: elementary,
		Outcome:    outcome,
		DurationMs: float64(elapsed.Microseconds()) / 1000,
	}
	if result != nil {
		run.TotalCost = result.TotalCost()
		run.Resources = result.ConsumedResources()
		run.Path = result.Path()
	}
	if err := store.Create(ctx, run); err != nil {
		log.Warn("failed to record run history", "error", err)
	}
}

func printResult(result *engine.Result, runErr error) {
	if result == nil {
		fmt.Println("no result")
		return
	}
	fmt.Printf("path:      %v\n", result.Path())
	fmt.Printf("cost:      %v\n", result.TotalCost())
	fmt.Printf("resources: %v\n", result.ConsumedResources())
	if runErr != nil {
		fmt.Printf("note:      run ended early (%v); result is the best incumbent found\n", runErr)
	}
}
