package search

import (
	"math"
	"testing"

	"optiroute/internal/graph"
)

func TestAStarWithoutCoordinatesMatchesDijkstra(t *testing.T) {
	// no coordinates anywhere: the heuristic is 0 and A* must behave
	// exactly like Dijkstra
	g := chainGraph()
	path, dist := FindPathAStar(g, 0, 3)
	want := []int64{0, 1, 2, 3}
	if len(path) != len(want) {
		t.Fatalf("path: got %v", path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path: got %v, want %v", path, want)
		}
	}
	if dist != 23.0 {
		t.Fatalf("distance: got %v, want 23.0", dist)
	}
}

func TestAStarEqualsDijkstraOnGeographicGraph(t *testing.T) {
	g := graph.Grid(6, 6, 100)
	for _, pair := range [][2]int64{{0, 35}, {3, 30}, {7, 28}, {0, 5}} {
		dPath, dDist := FindPathDijkstra(g, pair[0], pair[1])
		aPath, aDist := FindPathAStar(g, pair[0], pair[1])
		if math.Abs(dDist-aDist) > 1e-9 {
			t.Fatalf("(%d,%d): dijkstra %v vs a* %v", pair[0], pair[1], dDist, aDist)
		}
		if len(dPath) == 0 || len(aPath) == 0 {
			t.Fatalf("(%d,%d): missing path", pair[0], pair[1])
		}
		if aPath[0] != pair[0] || aPath[len(aPath)-1] != pair[1] {
			t.Fatalf("endpoints: got %v", aPath)
		}
	}
}

func TestAStarSameNodeAndAbsent(t *testing.T) {
	g := graph.Grid(2, 2, 100)
	path, dist := FindPathAStar(g, 3, 3)
	if len(path) != 1 || path[0] != 3 || dist != 0 {
		t.Fatalf("same node: got %v, %v", path, dist)
	}
	if path, dist := FindPathAStar(g, 0, 42); path != nil || !math.IsInf(dist, 1) {
		t.Fatalf("absent: got %v, %v", path, dist)
	}
}

func TestAStarPartialCoordinates(t *testing.T) {
	// only some nodes located: the heuristic degrades to 0 for the
	// rest and the result stays optimal
	g := graph.New(graph.WeightGeographic)
	g.AddNodeAt(0, 0.000, 0.000)
	g.AddNode(1)
	g.AddNodeAt(2, 0.002, 0.000)
	g.AddEdge(0, 1, 120)
	g.AddEdge(1, 2, 120)
	g.AddEdge(0, 2, 500)
	path, dist := FindPathAStar(g, 0, 2)
	if dist != 240 {
		t.Fatalf("distance: got %v, want 240", dist)
	}
	if len(path) != 3 || path[1] != 1 {
		t.Fatalf("path: got %v", path)
	}
}

func TestShortestDistanceAStar(t *testing.T) {
	g := chainGraph()
	if d := ShortestDistanceAStar(g, 0, 3); d != 23.0 {
		t.Fatalf("got %v", d)
	}
	if d := ShortestDistanceAStar(g, 3, 0); !math.IsInf(d, 1) {
		t.Fatalf("no path: got %v", d)
	}
}

func TestValidateGraphForAStar(t *testing.T) {
	g := graph.Grid(2, 2, 100)
	if !ValidateGraphForAStar(g) {
		t.Fatal("valid graph rejected")
	}
	g.AddEdge(0, 3, -1)
	if ValidateGraphForAStar(g) {
		t.Fatal("negative weight accepted")
	}
}

func TestCompareAgreesOnDistance(t *testing.T) {
	g := graph.Grid(5, 5, 80)
	c := Compare(g, 0, 24)
	if math.Abs(c.DijkstraDistance-c.AStarDistance) > 1e-9 {
		t.Fatalf("distances disagree: %v vs %v", c.DijkstraDistance, c.AStarDistance)
	}
	if c.DijkstraPathLen == 0 || c.AStarPathLen == 0 {
		t.Fatalf("missing paths: %+v", c)
	}
}
