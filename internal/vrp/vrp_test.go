package vrp

import (
	"testing"

	"optiroute/internal/geo"
	"optiroute/internal/graph"
	"optiroute/internal/search"
)

func ptr(v int64) *int64 { return &v }

// lineGraph lays five located nodes on a west-east line 100m apart,
// connected both ways.
func lineGraph() *graph.Graph {
	g := graph.New(graph.WeightGeographic)
	for i := int64(0); i < 5; i++ {
		g.AddNodeAt(i, 0, float64(i)*0.0009)
	}
	for i := int64(0); i < 4; i++ {
		g.AddEdge(i, i+1, 100)
		g.AddEdge(i+1, i, 100)
	}
	return g
}

func delivery(id int64, pickup, drop int64, weight float64) DeliveryRequest {
	return DeliveryRequest{ID: id, PickupNode: ptr(pickup), DeliveryNode: ptr(drop), Weight: weight, Priority: 1}
}

func TestNearestNeighborCapacityScenario(t *testing.T) {
	// one vehicle, capacity 100, deliveries of 60 and 50 from the same
	// depot: only the first fit is taken, the other stays unassigned
	g := lineGraph()
	vehicles := []Vehicle{{ID: 1, Capacity: 100}}
	deliveries := []DeliveryRequest{
		delivery(1, 0, 1, 60),
		delivery(2, 0, 2, 50),
	}
	nn := &NearestNeighbor{Algorithm: search.Dijkstra}
	routes := nn.Solve(g, vehicles, deliveries, 0)
	if len(routes) != 1 {
		t.Fatalf("routes: got %d", len(routes))
	}
	r := routes[0]
	if len(r.Deliveries) != 1 {
		t.Fatalf("deliveries on route: got %d", len(r.Deliveries))
	}
	// node 1 is nearer to the depot than node 2
	if r.Deliveries[0].ID != 1 {
		t.Fatalf("assigned delivery: got %d", r.Deliveries[0].ID)
	}
	if !r.Feasible {
		t.Fatal("route should be feasible")
	}
	if r.AssignedWeight() != 60 {
		t.Fatalf("assigned weight: got %v", r.AssignedWeight())
	}
}

func TestNearestNeighborDistanceAccumulation(t *testing.T) {
	g := lineGraph()
	vehicles := []Vehicle{{ID: 1, Capacity: 10}}
	// pickup at 1, delivery at 2: legs depot->1 (100) + 1->2 (100),
	// then return 2->0 (200)
	deliveries := []DeliveryRequest{delivery(1, 1, 2, 5)}
	nn := &NearestNeighbor{Algorithm: search.AStar}
	routes := nn.Solve(g, vehicles, deliveries, 0)
	if len(routes) != 1 {
		t.Fatalf("routes: got %d", len(routes))
	}
	if got := routes[0].TotalDistance; got != 400 {
		t.Fatalf("total distance: got %v, want 400", got)
	}
}

func TestNearestNeighborCarriesPoolAcrossFleet(t *testing.T) {
	g := lineGraph()
	vehicles := []Vehicle{
		{ID: 1, Capacity: 60},
		{ID: 2, Capacity: 60},
	}
	deliveries := []DeliveryRequest{
		delivery(1, 0, 1, 50),
		delivery(2, 0, 2, 50),
	}
	nn := &NearestNeighbor{Algorithm: search.Dijkstra}
	routes := nn.Solve(g, vehicles, deliveries, 0)
	if len(routes) != 2 {
		t.Fatalf("routes: got %d", len(routes))
	}
	if routes[0].VehicleID != 1 || routes[1].VehicleID != 2 {
		t.Fatalf("vehicle order: got %d, %d", routes[0].VehicleID, routes[1].VehicleID)
	}
	if routes[0].Deliveries[0].ID != 1 || routes[1].Deliveries[0].ID != 2 {
		t.Fatalf("assignment: got %d, %d", routes[0].Deliveries[0].ID, routes[1].Deliveries[0].ID)
	}
}

func TestNearestNeighborSkipsUnreachable(t *testing.T) {
	g := lineGraph()
	g.AddNode(9) // disconnected island
	vehicles := []Vehicle{{ID: 1, Capacity: 100}}
	deliveries := []DeliveryRequest{
		delivery(1, 9, 9, 10),
		delivery(2, 0, 1, 10),
	}
	nn := &NearestNeighbor{Algorithm: search.Dijkstra}
	routes := nn.Solve(g, vehicles, deliveries, 0)
	if len(routes) != 1 || len(routes[0].Deliveries) != 1 {
		t.Fatalf("got %+v", routes)
	}
	if routes[0].Deliveries[0].ID != 2 {
		t.Fatalf("assigned: got %d", routes[0].Deliveries[0].ID)
	}
}

func TestNearestNeighborEmptyVehicleOmitted(t *testing.T) {
	g := lineGraph()
	vehicles := []Vehicle{
		{ID: 1, Capacity: 1}, // too small for anything
		{ID: 2, Capacity: 100},
	}
	deliveries := []DeliveryRequest{delivery(1, 0, 1, 50)}
	nn := &NearestNeighbor{Algorithm: search.Dijkstra}
	routes := nn.Solve(g, vehicles, deliveries, 0)
	if len(routes) != 1 || routes[0].VehicleID != 2 {
		t.Fatalf("got %+v", routes)
	}
}

func TestManagerSolveVRP(t *testing.T) {
	g := lineGraph()
	m := NewManager(g)
	vehicles := []Vehicle{{ID: 1, Capacity: 100}}
	deliveries := []DeliveryRequest{
		// resolved through NearestNode from coordinates
		{ID: 1, Pickup: geo.Point{Lat: 0, Lng: 0.0009}, Delivery: geo.Point{Lat: 0, Lng: 0.0018}, Weight: 40, Priority: 1},
	}
	routes, err := m.SolveVRP(vehicles, deliveries, geo.Point{Lat: 0, Lng: 0}, AlgorithmNearestNeighbor)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(routes) != 1 || !routes[0].Feasible {
		t.Fatalf("got %+v", routes)
	}
	// the caller's slice must stay unresolved
	if deliveries[0].PickupNode != nil {
		t.Fatal("caller's delivery was mutated")
	}
}

func TestManagerValidation(t *testing.T) {
	g := lineGraph()
	m := NewManager(g)
	if _, err := m.SolveVRP(nil, []DeliveryRequest{delivery(1, 0, 1, 1)}, geo.Point{}, AlgorithmNearestNeighbor); err != ErrNoVehicles {
		t.Fatalf("got %v", err)
	}
	if _, err := m.SolveVRP([]Vehicle{{ID: 1}}, nil, geo.Point{}, AlgorithmNearestNeighbor); err != ErrNoDeliveries {
		t.Fatalf("got %v", err)
	}
	if _, err := m.SolveVRP([]Vehicle{{ID: 1}}, []DeliveryRequest{delivery(1, 0, 1, 1)}, geo.Point{}, "simulated_annealing"); err == nil {
		t.Fatal("expected unsupported-algorithm error")
	}
}

func TestManagerGeneticStub(t *testing.T) {
	g := lineGraph()
	m := NewManager(g)
	routes, err := m.SolveVRP(
		[]Vehicle{{ID: 1, Capacity: 10}},
		[]DeliveryRequest{delivery(1, 0, 1, 1)},
		geo.Point{}, AlgorithmGenetic,
	)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("genetic stub should return no routes, got %d", len(routes))
	}
}

func TestStats(t *testing.T) {
	routes := []Route{
		{VehicleID: 1, Deliveries: []DeliveryRequest{delivery(1, 0, 1, 10)}, TotalDistance: 400, Feasible: true},
		{VehicleID: 2, Deliveries: []DeliveryRequest{delivery(2, 0, 2, 10), delivery(3, 0, 3, 10)}, TotalDistance: 600, Feasible: false},
	}
	s := Stats(routes, 5)
	if s.TotalRoutes != 2 || s.FeasibleRoutes != 1 {
		t.Fatalf("got %+v", s)
	}
	if s.TotalDistance != 1000 || s.AverageRouteDistance != 500 {
		t.Fatalf("got %+v", s)
	}
	if s.TotalDeliveries != 3 || s.Unassigned != 2 {
		t.Fatalf("got %+v", s)
	}
	if s.UtilizationRate != 0.5 {
		t.Fatalf("got %+v", s)
	}
}

func TestFeasibilityValidationPass(t *testing.T) {
	g := lineGraph()
	m := NewManager(g)
	routes := []Route{{
		VehicleID:  1,
		Deliveries: []DeliveryRequest{delivery(1, 0, 1, 80), delivery(2, 0, 2, 40)},
		Feasible:   true,
	}}
	m.validateRoutes(routes, []Vehicle{{ID: 1, Capacity: 100}})
	if routes[0].Feasible {
		t.Fatal("overweight route should be infeasible")
	}
}
