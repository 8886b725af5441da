package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the routing core.
	Registry = prometheus.NewRegistry()

	// Searches counts shortest-path queries by algorithm and outcome.
	Searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "search_queries_total", Help: "Shortest-path queries by algorithm and outcome."},
		[]string{"algorithm", "outcome"},
	)
	// SearchDuration records query durations in seconds.
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "search_duration_seconds", Help: "Shortest-path query duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"algorithm"},
	)
	// NodesExpanded counts nodes finalized by the engines.
	NodesExpanded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "search_nodes_expanded_total", Help: "Nodes expanded by the search engines."},
		[]string{"algorithm"},
	)

	// MatrixBuilds counts cost-matrix constructions by algorithm and mode.
	MatrixBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cost_matrix_builds_total", Help: "Cost matrix builds by algorithm and mode."},
		[]string{"algorithm", "mode"},
	)
	// MatrixPairFailures counts per-pair query failures during matrix builds.
	MatrixPairFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cost_matrix_pair_failures_total", Help: "Per-pair failures during cost matrix builds."},
	)

	// VRPSolves counts VRP solver runs by algorithm.
	VRPSolves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_solves_total", Help: "VRP solver runs by algorithm."},
		[]string{"algorithm"},
	)
	// Allocations counts vehicle allocation outcomes.
	Allocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vehicle_allocations_total", Help: "Vehicle allocation outcomes."},
		[]string{"outcome"},
	)
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Searches)
		Registry.MustRegister(SearchDuration)
		Registry.MustRegister(NodesExpanded)
		Registry.MustRegister(MatrixBuilds)
		Registry.MustRegister(MatrixPairFailures)
		Registry.MustRegister(VRPSolves)
		Registry.MustRegister(Allocations)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
