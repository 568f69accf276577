// Package metrics exposes rcsppd's Prometheus collectors: run outcomes,
// label-store churn, and basic graph-size histograms.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container.
type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	RunDuration  *prometheus.HistogramVec
	RunsInFlight prometheus.Gauge

	LabelsGenerated *prometheus.CounterVec
	LabelsDominated *prometheus.CounterVec
	JoinsAttempted  prometheus.Counter
	JoinsAdmitted   prometheus.Counter

	BestCost *prometheus.GaugeVec

	GraphNodesTotal *prometheus.HistogramVec
	GraphEdgesTotal *prometheus.HistogramVec

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// Init registers the collector set under namespace and returns it.
func Init(namespace string) *Metrics {
	m := &Metrics{
		RunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of engine.Run invocations by outcome",
			},
			[]string{"outcome"}, // ok, no_feasible_path, negative_cycle, aborted, error
		),

		RunDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of engine.Run invocations",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30, 60},
			},
			[]string{"direction"}, // forward, backward, both
		),

		RunsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "runs_in_flight",
				Help:      "Number of engine.Run invocations currently executing",
			},
		),

		LabelsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "labels_generated_total",
				Help:      "Total labels created during expansion, by direction",
			},
			[]string{"direction"},
		),

		LabelsDominated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "labels_dominated_total",
				Help:      "Total labels discarded by dominance, by direction",
			},
			[]string{"direction"},
		),

		JoinsAttempted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "joins_attempted_total",
				Help:      "Total bridge-edge join checks performed",
			},
		),

		JoinsAdmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "joins_admitted_total",
				Help:      "Total bridge-edge joins that improved the incumbent",
			},
		),

		BestCost: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "best_cost",
				Help:      "Cost of the last completed run's result, by graph label",
			},
			[]string{"graph"},
		),

		GraphNodesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_nodes_total",
				Help:      "Number of vertices in solved graphs",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"operation"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_edges_total",
				Help:      "Number of edges in solved graphs",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"operation"},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "service_info",
				Help:      "Static build/environment information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-wide Metrics, lazily initializing with the
// default namespace if Init was never called.
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init("rcsppd")
	}
	return defaultMetrics
}

// RecordRun records one engine.Run's outcome and duration.
func (m *Metrics) RecordRun(direction, outcome string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunDuration.WithLabelValues(direction).Observe(duration.Seconds())
}

// RecordGraphSize records the size of a graph passed into engine.Run.
func (m *Metrics) RecordGraphSize(operation string, nodes, edges int) {
	m.GraphNodesTotal.WithLabelValues(operation).Observe(float64(nodes))
	m.GraphEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// Handler returns the HTTP handler serving the default registry in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
