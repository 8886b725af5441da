package search

import (
	"math"
	"time"

	"optiroute/internal/graph"
	"optiroute/internal/metrics"
	"optiroute/internal/pqueue"
)

// FindPathDijkstra returns the least-cost path from start to end and
// its total distance. start == end short-circuits to ([start], 0)
// without touching the graph. Absent nodes and disconnected pairs
// return (nil, +Inf).
func FindPathDijkstra(g *graph.Graph, start, end int64) ([]int64, float64) {
	t0 := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues(string(Dijkstra)).Observe(time.Since(t0).Seconds())
	}()

	if start == end {
		metrics.Searches.WithLabelValues(string(Dijkstra), outcomeFound).Inc()
		return []int64{start}, 0
	}
	if !g.HasNode(start) || !g.HasNode(end) {
		metrics.Searches.WithLabelValues(string(Dijkstra), outcomeAbsentNode).Inc()
		return nil, math.Inf(1)
	}

	dist := map[int64]float64{start: 0}
	pred := map[int64]int64{}
	visited := map[int64]bool{}

	q := pqueue.New()
	q.Push(start, 0)
	expanded := 0

	for !q.Empty() {
		cur := q.Pop()
		if visited[cur] {
			continue
		}
		visited[cur] = true
		expanded++

		if cur == end {
			break
		}

		for _, nb := range g.Neighbors(cur) {
			if visited[nb.ID] {
				continue
			}
			cand := dist[cur] + nb.Weight
			if old, ok := dist[nb.ID]; !ok || cand < old {
				dist[nb.ID] = cand
				pred[nb.ID] = cur
				q.Push(nb.ID, cand)
			}
		}
	}
	metrics.NodesExpanded.WithLabelValues(string(Dijkstra)).Add(float64(expanded))

	d, ok := dist[end]
	if !ok {
		metrics.Searches.WithLabelValues(string(Dijkstra), outcomeNoPath).Inc()
		return nil, math.Inf(1)
	}
	metrics.Searches.WithLabelValues(string(Dijkstra), outcomeFound).Inc()
	return reconstructPath(pred, start, end), d
}

// ShortestDistanceDijkstra returns only the distance. Not cheaper than
// FindPathDijkstra, it runs the same search and discards the path.
func ShortestDistanceDijkstra(g *graph.Graph, start, end int64) float64 {
	_, d := FindPathDijkstra(g, start, end)
	return d
}

// AllShortestDistances runs single-source Dijkstra with no stopping
// condition and returns the distance to every node in the graph,
// +Inf for unreachable ones. An absent start yields an empty map.
func AllShortestDistances(g *graph.Graph, start int64) map[int64]float64 {
	out := map[int64]float64{}
	if !g.HasNode(start) {
		return out
	}
	for _, id := range g.NodeIDs() {
		out[id] = math.Inf(1)
	}
	out[start] = 0

	visited := map[int64]bool{}
	q := pqueue.New()
	q.Push(start, 0)

	for !q.Empty() {
		cur := q.Pop()
		if visited[cur] {
			continue
		}
		visited[cur] = true

		for _, nb := range g.Neighbors(cur) {
			if visited[nb.ID] {
				continue
			}
			cand := out[cur] + nb.Weight
			if cand < out[nb.ID] {
				out[nb.ID] = cand
				q.Push(nb.ID, cand)
			}
		}
	}
	return out
}

// ValidateGraphForDijkstra rejects any graph carrying a negative edge
// weight, the algorithm's correctness precondition. The engines do not
// re-check this on every query.
func ValidateGraphForDijkstra(g *graph.Graph) bool {
	return g != nil && g.Check() == nil
}
