// Command rcsppd solves a single Resource-Constrained Shortest Path Problem
// instance, read in the Beasley-Christofides benchmark text format, and
// prints the optimal path, cost, and consumed resources.
//
// Configuration is loaded with the following priority (highest first):
//  1. Environment variables (RCSPPD_ prefix)
//  2. A YAML file at -config or $CONFIG_PATH
//  3. Built-in defaults
//
// Usage:
//
//	rcsppd -instance path/to/instance.txt [-direction both|forward|backward]
//	       [-elementary] [-time-limit 30s] [-config config.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rcspp-go/rcspp/internal/bcformat"
	"github.com/rcspp-go/rcspp/pkg/cache"
	"github.com/rcspp-go/rcspp/pkg/config"
	"github.com/rcspp-go/rcspp/pkg/history"
	"github.com/rcspp-go/rcspp/pkg/metrics"
	"github.com/rcspp-go/rcspp/pkg/rcsplog"
)

func main() {
	instancePath := flag.String("instance", "", "path to a Beasley-Christofides format instance (required)")
	configPath := flag.String("config", "", "path to a YAML config file")
	direction := flag.String("direction", "", "search direction: both, forward, backward (overrides config)")
	elementary := flag.Bool("elementary", false, "enforce elementary (no-repeat-vertex) paths")
	timeLimit := flag.Duration("time-limit", 0, "abort search after this duration (0 = no limit, overrides config)")
	flag.Parse()

	if *instancePath == "" {
		fmt.Fprintln(os.Stderr, "rcsppd: -instance is required")
		flag.Usage()
		os.Exit(2)
	}

	var loaderOpts []config.LoaderOption
	if *configPath != "" {
		loaderOpts = append(loaderOpts, config.WithConfigPath(*configPath))
	}
	cfg, err := config.NewLoader(loaderOpts...).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rcsppd: config: %v\n", err)
		os.Exit(1)
	}

	rcsplog.Init(cfg.Log)
	log := rcsplog.Log

	if cfg.Metrics.Enabled {
		metrics.Init(cfg.Metrics.Namespace)
		go serveMetrics(cfg.Metrics.Port, cfg.Metrics.Path, log)
	}

	var tableCache *cache.RedisTableCache
	if cfg.Cache.Enabled {
		tableCache, err = cache.NewRedisTableCache(cfg.Cache)
		if err != nil {
			log.Warn("cache disabled: connection failed", "error", err)
		} else {
			defer tableCache.Close()
		}
	}

	var historyStore *history.PostgresStore
	ctx := context.Background()
	if cfg.History.Enabled {
		historyStore, err = history.NewPostgresStore(ctx, cfg.History)
		if err != nil {
			log.Warn("history disabled: connection failed", "error", err)
		} else {
			defer historyStore.Close()
		}
	}

	f, err := os.Open(*instancePath)
	if err != nil {
		log.Error("failed to open instance", "path", *instancePath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	inst, err := bcformat.Parse(f)
	if err != nil {
		log.Error("failed to parse instance", "path", *instancePath, "error", err)
		os.Exit(1)
	}

	e, err := inst.Build()
	if err != nil {
		log.Error("failed to build graph", "error", err)
		os.Exit(1)
	}
	if tableCache != nil {
		e.SetTableCache(tableCache)
	}

	dir := resolveDirection(*direction, cfg.Search.DefaultDirection)
	e.SetDirection(dir)

	elem := *elementary || cfg.Search.DefaultElementary
	e.SetElementary(elem)

	limit := *timeLimit
	if limit == 0 {
		limit = cfg.Search.DefaultTimeLimit
	}
	if limit > 0 {
		e.SetTimeLimit(limit)
	}

	if cfg.Metrics.Enabled {
		metrics.Get().RecordGraphSize("cli", inst.NumVertices, len(inst.Edges))
	}

	runLog := rcsplog.WithPhase("run")
	start := time.Now()
	result, runErr := e.Run(ctx)
	elapsed := time.Since(start)

	outcome := outcomeOf(runErr)
	if cfg.Metrics.Enabled {
		metrics.Get().RecordRun(directionLabel(dir), outcome, elapsed)
	}
	if historyStore != nil {
		recordHistory(ctx, historyStore, inst, dir, elem, outcome, result, elapsed, runLog)
	}

	if runErr != nil && result == nil {
		runLog.Error("run failed", "outcome", outcome, "error", runErr)
		os.Exit(1)
	}

	printResult(result, runErr)
}

func serveMetrics(port int, path string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())
	addr := fmt.Sprintf(":%d", port)
	log.Info("serving metrics", "addr", addr, "path", path)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", "error", err)
	}
}
