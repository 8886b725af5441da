package matrix

import (
	"math"
	"testing"

	"optiroute/internal/graph"
	"optiroute/internal/search"
)

// triangle is the fixture 0->1 (10), 1->2 (5), 0->2 (20): the two-hop
// route beats the direct edge.
func triangle() *graph.Graph {
	g := graph.New(graph.WeightUniform)
	g.AddEdge(0, 1, 10)
	g.AddEdge(1, 2, 5)
	g.AddEdge(0, 2, 20)
	return g
}

func TestComputeUsesShortestRoute(t *testing.T) {
	m, err := Compute(triangle(), []int64{0, 1, 2}, search.Dijkstra, false)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got := m.Cost(0, 2); got != 15.0 {
		t.Fatalf("m[0][2]: got %v, want 15.0 (via node 1)", got)
	}
	if got := m.Cost(0, 1); got != 10.0 {
		t.Fatalf("m[0][1]: got %v", got)
	}
	// the triangle is directed: nothing leads back to 0
	if got := m.Cost(2, 0); !math.IsInf(got, 1) {
		t.Fatalf("m[2][0]: got %v, want +Inf", got)
	}
	if !m.Validate() {
		t.Fatal("matrix should validate")
	}
}

func TestComputeDiagonalAndDedup(t *testing.T) {
	m, err := Compute(triangle(), []int64{0, 1, 0, 2, 1, 0}, search.AStar, false)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(m.Nodes) != 3 || len(m.Index) != 3 {
		t.Fatalf("dedup: got %v", m.Nodes)
	}
	// first-occurrence order
	if m.Nodes[0] != 0 || m.Nodes[1] != 1 || m.Nodes[2] != 2 {
		t.Fatalf("order: got %v", m.Nodes)
	}
	for i := int64(0); i < 3; i++ {
		if d := m.Cost(i, i); d != 0 {
			t.Fatalf("diagonal (%d): got %v", i, d)
		}
	}
}

func TestComputeWithPaths(t *testing.T) {
	m, err := Compute(triangle(), []int64{0, 2}, search.Dijkstra, true)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	p, ok := m.Path(0, 2)
	if !ok || len(p) != 3 || p[1] != 1 {
		t.Fatalf("path 0->2: got %v ok=%v", p, ok)
	}
	if _, ok := m.Path(2, 0); ok {
		t.Fatal("unreachable pair should have no path")
	}
}

func TestComputeSymmetricMirrors(t *testing.T) {
	g := graph.New(graph.WeightUniform)
	g.AddEdge(0, 1, 10)
	g.AddEdge(1, 0, 30) // asymmetric on purpose
	g.AddEdge(1, 2, 5)
	g.AddEdge(2, 1, 5)
	m, err := ComputeSymmetric(g, []int64{0, 1, 2}, search.Dijkstra)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	n := len(m.Nodes)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.Dense.At(i, j) != m.Dense.At(j, i) {
				t.Fatalf("not symmetric at (%d,%d)", i, j)
			}
		}
	}
	// upper-triangle value wins: 0->1 is 10, the true 1->0 (30) is lost
	if got := m.Cost(1, 0); got != 10 {
		t.Fatalf("mirrored cost: got %v", got)
	}
	if !m.Validate() {
		t.Fatal("matrix should validate")
	}
}

func TestEmptyAndUnknown(t *testing.T) {
	m, err := Compute(triangle(), nil, search.Dijkstra, false)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if m.Validate() {
		t.Fatal("empty matrix must not validate")
	}
	if d := m.Cost(0, 1); !math.IsInf(d, 1) {
		t.Fatalf("empty cost: got %v", d)
	}
	if _, err := Compute(triangle(), []int64{0, 1}, "floyd_warshall", false); err == nil {
		t.Fatal("expected unknown-algorithm error")
	}
	if _, err := ComputeSymmetric(triangle(), []int64{0, 1}, "floyd_warshall"); err == nil {
		t.Fatal("expected unknown-algorithm error")
	}
}

func TestCostAbsentID(t *testing.T) {
	m, err := Compute(triangle(), []int64{0, 1}, search.Dijkstra, false)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if d := m.Cost(0, 42); !math.IsInf(d, 1) {
		t.Fatalf("absent target: got %v", d)
	}
	if d := m.Cost(42, 0); !math.IsInf(d, 1) {
		t.Fatalf("absent source: got %v", d)
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	m, err := Compute(triangle(), []int64{0, 1, 2}, search.Dijkstra, false)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	m.Dense.Set(1, 1, 0.5)
	if m.Validate() {
		t.Fatal("nonzero diagonal accepted")
	}
	m.Dense.Set(1, 1, 0)
	m.Dense.Set(0, 1, -1)
	if m.Validate() {
		t.Fatal("negative entry accepted")
	}
}
