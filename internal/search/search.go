// Package search implements the single-source shortest-path engines:
// label-setting Dijkstra and its haversine-guided A* variant. Both
// degrade to (nil, +Inf) for absent or disconnected nodes and never
// error on a well-formed graph.
package search

import (
	"errors"
	"fmt"

	"optiroute/internal/graph"
)

// Algorithm selects a search engine by runtime key.
type Algorithm string

const (
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "a_star"
)

var ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

const (
	outcomeFound      = "found"
	outcomeNoPath     = "no_path"
	outcomeAbsentNode = "absent_node"
)

// FindPath dispatches to the engine named by algo.
func FindPath(g *graph.Graph, algo Algorithm, start, end int64) ([]int64, float64, error) {
	switch algo {
	case Dijkstra:
		p, d := FindPathDijkstra(g, start, end)
		return p, d, nil
	case AStar:
		p, d := FindPathAStar(g, start, end)
		return p, d, nil
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}

// ShortestDistance dispatches a distance-only query to the engine named
// by algo.
func ShortestDistance(g *graph.Graph, algo Algorithm, start, end int64) (float64, error) {
	_, d, err := FindPath(g, algo, start, end)
	return d, err
}

// reconstructPath walks the predecessor chain backward from end and
// reverses it. Returns nil when end was never reached.
func reconstructPath(pred map[int64]int64, start, end int64) []int64 {
	if start == end {
		return []int64{start}
	}
	if _, ok := pred[end]; !ok {
		return nil
	}
	path := []int64{end}
	cur := end
	for cur != start {
		prev, ok := pred[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
