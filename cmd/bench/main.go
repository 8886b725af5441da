// Command bench times the shortest-path engines on generated street
// grids and reports a comparison table, then runs a cost-matrix build
// and a small fleet scenario on the largest grid.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"optiroute/internal/config"
	"optiroute/internal/graph"
	"optiroute/internal/matrix"
	"optiroute/internal/metrics"
	"optiroute/internal/search"
	"optiroute/internal/vrp"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (optional)")
	metricsAddr := flag.String("metrics", "", "serve /metrics on this address after the run, e.g. :9090")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("bench: %v", err)
	}
	metrics.RegisterDefault()

	rng := rand.New(rand.NewSource(cfg.Bench.Seed))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "grid\tnodes\tsamples\tdijkstra avg\ta_star avg\tspeedup\tmismatches")

	var largest *graph.Graph
	for _, side := range cfg.Bench.GridSizes {
		g := graph.Grid(side, side, cfg.Bench.SpacingMeters)
		largest = g
		n := int64(side * side)

		var dTotal, aTotal time.Duration
		mismatches := 0
		for i := 0; i < cfg.Bench.Samples; i++ {
			start := rng.Int63n(n)
			end := rng.Int63n(n)
			c := search.Compare(g, start, end)
			dTotal += c.DijkstraDuration
			aTotal += c.AStarDuration
			if diff := c.DijkstraDistance - c.AStarDistance; diff > 1e-6 || diff < -1e-6 {
				mismatches++
			}
		}
		samples := time.Duration(cfg.Bench.Samples)
		dAvg := dTotal / samples
		aAvg := aTotal / samples
		speedup := 0.0
		if dTotal > 0 {
			speedup = float64(dTotal-aTotal) / float64(dTotal)
		}
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%v\t%.1f%%\t%d\n",
			side, side, n, cfg.Bench.Samples, dAvg, aAvg, speedup*100, mismatches)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("bench: %v", err)
	}

	runMatrix(largest, cfg, rng)
	runFleet(largest, cfg, rng)

	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		log.Printf("bench: metrics on %s", *metricsAddr)
		log.Fatal(http.ListenAndServe(*metricsAddr, nil))
	}
}

// runMatrix builds a cost matrix over a random node sample and reports
// its shape and timing.
func runMatrix(g *graph.Graph, cfg config.Config, rng *rand.Rand) {
	ids := g.NodeIDs()
	sample := make([]int64, 0, 12)
	for i := 0; i < 12 && i < len(ids); i++ {
		sample = append(sample, ids[rng.Intn(len(ids))])
	}

	t0 := time.Now()
	var (
		m   *matrix.Matrix
		err error
	)
	if cfg.Matrix.Symmetric {
		m, err = matrix.ComputeSymmetric(g, sample, cfg.SearchAlgorithm())
	} else {
		m, err = matrix.Compute(g, sample, cfg.SearchAlgorithm(), cfg.Matrix.WithPaths)
	}
	if err != nil {
		log.Fatalf("bench: matrix: %v", err)
	}
	fmt.Printf("\nmatrix: %dx%d in %v, valid=%v\n", len(m.Nodes), len(m.Nodes), time.Since(t0), m.Validate())
}

// runFleet solves a small random VRP instance on the grid.
func runFleet(g *graph.Graph, cfg config.Config, rng *rand.Rand) {
	ids := g.NodeIDs()
	node := func() *int64 {
		id := ids[rng.Intn(len(ids))]
		return &id
	}

	vehicles := []vrp.Vehicle{
		{ID: 1, Capacity: 100},
		{ID: 2, Capacity: 100},
	}
	deliveries := make([]vrp.DeliveryRequest, 0, 8)
	for i := int64(1); i <= 8; i++ {
		deliveries = append(deliveries, vrp.DeliveryRequest{
			ID:           i,
			PickupNode:   node(),
			DeliveryNode: node(),
			Weight:       float64(10 + rng.Intn(20)),
			Priority:     1 + rng.Intn(3),
		})
	}

	nn := &vrp.NearestNeighbor{Algorithm: cfg.SearchAlgorithm()}
	t0 := time.Now()
	routes := nn.Solve(g, vehicles, deliveries, ids[0])
	stats := vrp.Stats(routes, len(deliveries))
	fmt.Printf("fleet: %d routes, %d/%d deliveries assigned, %.0fm total in %v\n",
		stats.TotalRoutes, stats.TotalDeliveries, len(deliveries), stats.TotalDistance, time.Since(t0))
}
