package vrp

import (
	"math"

	"optiroute/internal/graph"
	"optiroute/internal/search"
)

// NearestNeighbor builds one route per vehicle by always extending with
// the closest delivery that still fits residual capacity. Distances
// come from the configured engine, with a Dijkstra retry when the
// primary engine reports no path.
type NearestNeighbor struct {
	Algorithm search.Algorithm
}

func (nn *NearestNeighbor) algorithm() search.Algorithm {
	if nn.Algorithm == "" {
		return search.AStar
	}
	return nn.Algorithm
}

func (nn *NearestNeighbor) distance(g *graph.Graph, from, to int64) float64 {
	d, err := search.ShortestDistance(g, nn.algorithm(), from, to)
	if err != nil || math.IsInf(d, 1) {
		if nn.algorithm() != search.Dijkstra {
			d = search.ShortestDistanceDijkstra(g, from, to)
		}
	}
	return d
}

// Solve walks the fleet in input order, handing each vehicle the pool
// left over by its predecessors. Vehicles that pick up nothing produce
// no route.
func (nn *NearestNeighbor) Solve(g *graph.Graph, vehicles []Vehicle, deliveries []DeliveryRequest, depotNode int64) []Route {
	remaining := append([]DeliveryRequest(nil), deliveries...)
	var routes []Route
	for _, v := range vehicles {
		if len(remaining) == 0 {
			break
		}
		route, leftover := nn.buildRoute(g, v, remaining, depotNode)
		if len(route.Deliveries) > 0 {
			routes = append(routes, route)
		}
		remaining = leftover
	}
	return routes
}

// buildRoute constructs one vehicle's route starting at the depot. The
// caller's Vehicle is never mutated; capacity bookkeeping lives in the
// returned route state.
func (nn *NearestNeighbor) buildRoute(g *graph.Graph, v Vehicle, pool []DeliveryRequest, depotNode int64) (Route, []DeliveryRequest) {
	route := Route{VehicleID: v.ID}
	current := depotNode
	load := 0.0

	avail := append([]DeliveryRequest(nil), pool...)
	for len(avail) > 0 && load < v.Capacity {
		idx := nn.nearest(g, current, avail, v.Capacity-load)
		if idx < 0 {
			break
		}
		d := avail[idx]

		toPickup := nn.distance(g, current, *d.PickupNode)
		toDelivery := nn.distance(g, *d.PickupNode, *d.DeliveryNode)
		if math.IsInf(toPickup, 1) || math.IsInf(toDelivery, 1) {
			// pickup or delivery leg unreachable: drop the candidate
			// and keep selecting
			avail = append(avail[:idx], avail[idx+1:]...)
			continue
		}

		route.Deliveries = append(route.Deliveries, d)
		load += d.Weight
		route.TotalDistance += toPickup + toDelivery
		current = *d.DeliveryNode
		avail = append(avail[:idx], avail[idx+1:]...)
	}

	// best-effort return leg; a missing path back is tolerated
	if len(route.Deliveries) > 0 && current != depotNode {
		if back := nn.distance(g, current, depotNode); !math.IsInf(back, 1) {
			route.TotalDistance += back
		}
	}
	route.Feasible = len(route.Deliveries) > 0

	assigned := make(map[int64]bool, len(route.Deliveries))
	for _, d := range route.Deliveries {
		assigned[d.ID] = true
	}
	leftover := make([]DeliveryRequest, 0, len(pool))
	for _, d := range pool {
		if !assigned[d.ID] {
			leftover = append(leftover, d)
		}
	}
	return route, leftover
}

// nearest picks the delivery whose delivery node is closest to current
// among those fitting remaining capacity. Returns -1 when none
// qualifies.
func (nn *NearestNeighbor) nearest(g *graph.Graph, current int64, deliveries []DeliveryRequest, remainingCapacity float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, d := range deliveries {
		if d.Weight > remainingCapacity {
			continue
		}
		if d.PickupNode == nil || d.DeliveryNode == nil {
			continue
		}
		if !g.HasNode(current) || !g.HasNode(*d.DeliveryNode) {
			continue
		}
		dist := nn.distance(g, current, *d.DeliveryNode)
		if dist < bestDist && !math.IsInf(dist, 1) {
			bestDist = dist
			best = i
		}
	}
	return best
}
