// Package vrp assigns and sequences delivery requests across a fleet
// with greedy constructive heuristics.
package vrp

import (
	"time"

	"optiroute/internal/geo"
	"optiroute/internal/graph"
)

// DeliveryRequest is one pickup/delivery pair. Node ids are resolved
// from the coordinates by the manager before solving; nil means not yet
// resolved.
type DeliveryRequest struct {
	ID              int64
	Pickup          geo.Point
	Delivery        geo.Point
	PickupNode      *int64
	DeliveryNode    *int64
	Weight          float64
	TimeWindowStart *time.Time
	TimeWindowEnd   *time.Time
	Priority        int
}

// Vehicle is one fleet member. CurrentLoad changes as assignments are
// committed; callers sharing a Vehicle across goroutines must serialize
// access themselves.
type Vehicle struct {
	ID              int64
	Capacity        float64
	CurrentLoad     float64
	CurrentLocation geo.Point
	CurrentNode     *int64
	MaxDistance     *float64
	FuelLevel       float64
}

// Route is the ordered work assigned to one vehicle. Feasible is
// finalized by the manager's validation pass.
type Route struct {
	VehicleID     int64
	Deliveries    []DeliveryRequest
	TotalDistance float64
	TotalTime     float64
	Feasible      bool
}

// AssignedWeight is the route's total delivery weight.
func (r Route) AssignedWeight() float64 {
	total := 0.0
	for _, d := range r.Deliveries {
		total += d.Weight
	}
	return total
}

// RouteBuilder is one VRP strategy, selected by a runtime key on the
// manager.
type RouteBuilder interface {
	Solve(g *graph.Graph, vehicles []Vehicle, deliveries []DeliveryRequest, depotNode int64) []Route
}

// SolutionStats aggregates a solution; deliveries that no vehicle could
// take appear only here, as Unassigned.
type SolutionStats struct {
	TotalRoutes          int
	FeasibleRoutes       int
	TotalDistance        float64
	TotalDeliveries      int
	Unassigned           int
	AverageRouteDistance float64
	UtilizationRate      float64
}

// Stats summarizes routes against the number of requested deliveries.
func Stats(routes []Route, requested int) SolutionStats {
	s := SolutionStats{TotalRoutes: len(routes)}
	for _, r := range routes {
		if r.Feasible {
			s.FeasibleRoutes++
		}
		s.TotalDistance += r.TotalDistance
		s.TotalDeliveries += len(r.Deliveries)
	}
	s.Unassigned = requested - s.TotalDeliveries
	if len(routes) > 0 {
		s.AverageRouteDistance = s.TotalDistance / float64(len(routes))
		s.UtilizationRate = float64(s.FeasibleRoutes) / float64(len(routes))
	}
	return s
}
