package vrp

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"optiroute/internal/geo"
	"optiroute/internal/graph"
	"optiroute/internal/metrics"
	"optiroute/internal/search"
)

// Strategy keys accepted by Manager.SolveVRP.
const (
	AlgorithmNearestNeighbor = "nearest_neighbor"
	AlgorithmGenetic         = "genetic_algorithm"
)

var (
	ErrNoVehicles   = errors.New("vrp: no vehicles provided")
	ErrNoDeliveries = errors.New("vrp: no deliveries provided")
	ErrNoDepotNode  = errors.New("vrp: depot location maps to no graph node")
)

// Manager coordinates the VRP strategies over one graph.
type Manager struct {
	graph    *graph.Graph
	builders map[string]RouteBuilder
}

func NewManager(g *graph.Graph) *Manager {
	return &Manager{
		graph: g,
		builders: map[string]RouteBuilder{
			AlgorithmNearestNeighbor: &NearestNeighbor{Algorithm: search.AStar},
			AlgorithmGenetic:         &Genetic{},
		},
	}
}

// SolveVRP resolves delivery and depot locations to graph nodes, runs
// the named strategy, and finalizes feasibility flags. The caller's
// delivery slice is not modified; resolved copies are used throughout.
func (m *Manager) SolveVRP(vehicles []Vehicle, deliveries []DeliveryRequest, depotLocation geo.Point, algorithm string) ([]Route, error) {
	builder, ok := m.builders[algorithm]
	if !ok {
		return nil, fmt.Errorf("vrp: unsupported algorithm %q", algorithm)
	}
	if len(vehicles) == 0 {
		return nil, ErrNoVehicles
	}
	if len(deliveries) == 0 {
		return nil, ErrNoDeliveries
	}

	resolved, depotNode, err := m.mapLocationsToNodes(deliveries, depotLocation)
	if err != nil {
		return nil, err
	}

	batch := uuid.New().String()
	log.Printf("vrp: solve %s algorithm=%s vehicles=%d deliveries=%d depot=%d",
		batch, algorithm, len(vehicles), len(resolved), depotNode)

	routes := builder.Solve(m.graph, vehicles, resolved, depotNode)
	m.validateRoutes(routes, vehicles)
	metrics.VRPSolves.WithLabelValues(algorithm).Inc()

	return routes, nil
}

// mapLocationsToNodes snaps each delivery's pickup/delivery coordinates
// and the depot to their nearest graph nodes. Already-resolved node ids
// are kept as-is.
func (m *Manager) mapLocationsToNodes(deliveries []DeliveryRequest, depotLocation geo.Point) ([]DeliveryRequest, int64, error) {
	resolved := append([]DeliveryRequest(nil), deliveries...)
	byNode := map[int64][]int64{}

	for i := range resolved {
		d := &resolved[i]
		if d.PickupNode == nil {
			id, ok := m.graph.NearestNode(d.Pickup.Lat, d.Pickup.Lng)
			if !ok {
				return nil, 0, fmt.Errorf("vrp: pickup of delivery %d maps to no graph node", d.ID)
			}
			d.PickupNode = &id
		}
		if d.DeliveryNode == nil {
			id, ok := m.graph.NearestNode(d.Delivery.Lat, d.Delivery.Lng)
			if !ok {
				return nil, 0, fmt.Errorf("vrp: delivery %d maps to no graph node", d.ID)
			}
			d.DeliveryNode = &id
		}
		byNode[*d.DeliveryNode] = append(byNode[*d.DeliveryNode], d.ID)
	}
	for node, ids := range byNode {
		if len(ids) > 1 {
			log.Printf("vrp: deliveries %v share delivery node %d", ids, node)
		}
	}

	depotNode, ok := m.graph.NearestNode(depotLocation.Lat, depotLocation.Lng)
	if !ok {
		return nil, 0, ErrNoDepotNode
	}
	return resolved, depotNode, nil
}

// validateRoutes marks a route infeasible when its assigned weight
// exceeds the vehicle's capacity, or when its vehicle is unknown.
func (m *Manager) validateRoutes(routes []Route, vehicles []Vehicle) {
	byID := make(map[int64]Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	for i := range routes {
		v, ok := byID[routes[i].VehicleID]
		if !ok {
			routes[i].Feasible = false
			continue
		}
		if routes[i].AssignedWeight() > v.Capacity {
			routes[i].Feasible = false
			log.Printf("vrp: route of vehicle %d exceeds capacity", v.ID)
		}
	}
}
