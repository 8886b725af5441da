package search

import (
	"time"

	"optiroute/internal/graph"
)

// Comparison reports both engines run against the same (start, end)
// pair. On non-negative weights the two distances agree; the point of
// the report is the timing difference.
type Comparison struct {
	DijkstraDuration time.Duration
	AStarDuration    time.Duration
	DijkstraDistance float64
	AStarDistance    float64
	DijkstraPathLen  int
	AStarPathLen     int
}

// Speedup is the fraction of Dijkstra's time saved by A*. Negative when
// A* was slower.
func (c Comparison) Speedup() float64 {
	if c.DijkstraDuration <= 0 {
		return 0
	}
	return float64(c.DijkstraDuration-c.AStarDuration) / float64(c.DijkstraDuration)
}

// Compare runs Dijkstra and A* on the same query and reports timings,
// distances, and path lengths.
func Compare(g *graph.Graph, start, end int64) Comparison {
	var c Comparison

	t0 := time.Now()
	dPath, dDist := FindPathDijkstra(g, start, end)
	c.DijkstraDuration = time.Since(t0)
	c.DijkstraDistance = dDist
	c.DijkstraPathLen = len(dPath)

	t0 = time.Now()
	aPath, aDist := FindPathAStar(g, start, end)
	c.AStarDuration = time.Since(t0)
	c.AStarDistance = aDist
	c.AStarPathLen = len(aPath)

	return c
}
