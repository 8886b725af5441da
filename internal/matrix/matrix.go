// Package matrix builds dense pairwise shortest-distance tables by
// repeated engine queries.
package matrix

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"optiroute/internal/graph"
	"optiroute/internal/metrics"
	"optiroute/internal/search"
)

// Matrix is a square cost table over a de-duplicated node set. Dense is
// indexed by the positions in Index; the diagonal is 0 and unreachable
// pairs hold +Inf. Paths is populated only when requested.
type Matrix struct {
	Dense *mat.Dense
	Index map[int64]int
	Nodes []int64
	Paths map[[2]int64][]int64
}

// dedup preserves first-occurrence order.
func dedup(nodes []int64) []int64 {
	seen := make(map[int64]bool, len(nodes))
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func newMatrix(nodes []int64) *Matrix {
	unique := dedup(nodes)
	m := &Matrix{Index: make(map[int64]int, len(unique)), Nodes: unique}
	for i, n := range unique {
		m.Index[n] = i
	}
	if n := len(unique); n > 0 {
		m.Dense = mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					m.Dense.Set(i, j, math.Inf(1))
				}
			}
		}
	}
	return m
}

// pairQuery runs one engine query, converting any internal panic into a
// logged unreachable result so a single bad pair cannot abort a batch.
func pairQuery(g *graph.Graph, algo search.Algorithm, src, dst int64, withPath bool) (path []int64, dist float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("matrix: query %d->%d failed: %v", src, dst, r)
			metrics.MatrixPairFailures.Inc()
			path, dist = nil, math.Inf(1)
		}
	}()
	if withPath {
		path, dist, _ = search.FindPath(g, algo, src, dst)
		return path, dist
	}
	dist, _ = search.ShortestDistance(g, algo, src, dst)
	return nil, dist
}

// Compute builds the full n x n cost matrix over nodes (de-duplicated,
// first occurrence wins) using the chosen engine, optionally capturing
// the realized paths.
func Compute(g *graph.Graph, nodes []int64, algo search.Algorithm, withPaths bool) (*Matrix, error) {
	if algo != search.Dijkstra && algo != search.AStar {
		return nil, fmt.Errorf("%w: %q", search.ErrUnknownAlgorithm, algo)
	}
	m := newMatrix(nodes)
	n := len(m.Nodes)
	if n == 0 {
		return m, nil
	}
	if withPaths {
		m.Paths = map[[2]int64][]int64{}
	}

	log.Printf("matrix: computing %dx%d cost matrix via %s", n, n, algo)
	for i, src := range m.Nodes {
		for j, dst := range m.Nodes {
			if i == j {
				continue
			}
			path, dist := pairQuery(g, algo, src, dst, withPaths)
			if math.IsInf(dist, 1) {
				continue
			}
			m.Dense.Set(i, j, dist)
			if withPaths && path != nil {
				m.Paths[[2]int64{src, dst}] = path
			}
		}
	}
	metrics.MatrixBuilds.WithLabelValues(string(algo), "full").Inc()
	return m, nil
}

// ComputeSymmetric builds only the upper triangle with distance-only
// queries and mirrors it, halving the work. On a directed graph the
// mirrored half is an approximation.
func ComputeSymmetric(g *graph.Graph, nodes []int64, algo search.Algorithm) (*Matrix, error) {
	if algo != search.Dijkstra && algo != search.AStar {
		return nil, fmt.Errorf("%w: %q", search.ErrUnknownAlgorithm, algo)
	}
	m := newMatrix(nodes)
	n := len(m.Nodes)
	if n == 0 {
		return m, nil
	}

	log.Printf("matrix: computing symmetric %dx%d cost matrix via %s (approximate on directed graphs)", n, n, algo)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			_, dist := pairQuery(g, algo, m.Nodes[i], m.Nodes[j], false)
			if math.IsInf(dist, 1) {
				continue
			}
			m.Dense.Set(i, j, dist)
			m.Dense.Set(j, i, dist)
		}
	}
	metrics.MatrixBuilds.WithLabelValues(string(algo), "symmetric").Inc()
	return m, nil
}

// Cost is the O(1) lookup. Ids absent from the index yield +Inf, never
// an error.
func (m *Matrix) Cost(source, target int64) float64 {
	if m == nil || m.Dense == nil {
		return math.Inf(1)
	}
	i, ok := m.Index[source]
	if !ok {
		return math.Inf(1)
	}
	j, ok := m.Index[target]
	if !ok {
		return math.Inf(1)
	}
	return m.Dense.At(i, j)
}

// Path returns the realized path for (source, target) when the matrix
// was computed with paths.
func (m *Matrix) Path(source, target int64) ([]int64, bool) {
	if m == nil || m.Paths == nil {
		return nil, false
	}
	p, ok := m.Paths[[2]int64{source, target}]
	return p, ok
}

// Validate checks the matrix is square with side equal to the index
// cardinality, has an exactly zero diagonal, and no negative entries.
func (m *Matrix) Validate() bool {
	if m == nil || m.Dense == nil {
		return false
	}
	r, c := m.Dense.Dims()
	if r == 0 || r != c || r != len(m.Index) {
		return false
	}
	for i := 0; i < r; i++ {
		if m.Dense.At(i, i) != 0 {
			return false
		}
		for j := 0; j < c; j++ {
			if m.Dense.At(i, j) < 0 {
				return false
			}
		}
	}
	return true
}
