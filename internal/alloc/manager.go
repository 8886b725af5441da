package alloc

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"optiroute/internal/graph"
	"optiroute/internal/matrix"
	"optiroute/internal/metrics"
	"optiroute/internal/search"
	"optiroute/internal/vrp"
)

// AlgorithmGreedy is the only matching strategy currently implemented.
const AlgorithmGreedy = "greedy"

// Manager owns the clients, fleet, and allocation records. Cost lookups
// prefer the supplied cost matrix and fall back to direct A* queries
// when none is set. Not safe for concurrent use.
type Manager struct {
	graph       *graph.Graph
	costs       *matrix.Matrix
	clients     map[int64]*Client
	vehicles    map[int64]*vrp.Vehicle
	requests    map[int64]*AllocationRequest
	allocations map[string]*VehicleAllocation
}

func NewManager(g *graph.Graph, costs *matrix.Matrix) *Manager {
	return &Manager{
		graph:       g,
		costs:       costs,
		clients:     map[int64]*Client{},
		vehicles:    map[int64]*vrp.Vehicle{},
		requests:    map[int64]*AllocationRequest{},
		allocations: map[string]*VehicleAllocation{},
	}
}

// AddClient registers a client, resolving its node id from its location
// when missing.
func (m *Manager) AddClient(c *Client) {
	if c.NodeID == nil {
		if id, ok := m.graph.NearestNode(c.Location.Lat, c.Location.Lng); ok {
			c.NodeID = &id
		}
	}
	m.clients[c.ID] = c
}

// AddVehicle registers a fleet member, resolving its node id from its
// location when missing.
func (m *Manager) AddVehicle(v *vrp.Vehicle) {
	if v.CurrentNode == nil {
		if id, ok := m.graph.NearestNode(v.CurrentLocation.Lat, v.CurrentLocation.Lng); ok {
			v.CurrentNode = &id
		}
	}
	m.vehicles[v.ID] = v
}

// CreateRequest opens an allocation request for a registered client.
func (m *Manager) CreateRequest(clientID int64, delivery vrp.DeliveryRequest) (*AllocationRequest, error) {
	c, ok := m.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("alloc: client %d not found", clientID)
	}
	req := &AllocationRequest{
		ID:        int64(len(m.requests) + 1),
		Client:    c,
		Delivery:  delivery,
		CreatedAt: time.Now(),
	}
	m.requests[req.ID] = req
	return req, nil
}

// AvailableVehicles returns the vehicles that can take the request:
// enough spare capacity and no time conflict with their confirmed or
// in-progress allocations.
func (m *Manager) AvailableVehicles(req *AllocationRequest) []*vrp.Vehicle {
	var out []*vrp.Vehicle
	for _, id := range m.vehicleIDs() {
		v := m.vehicles[id]
		if m.isAvailable(v, req) {
			out = append(out, v)
		}
	}
	return out
}

func (m *Manager) vehicleIDs() []int64 {
	ids := make([]int64, 0, len(m.vehicles))
	for id := range m.vehicles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *Manager) isAvailable(v *vrp.Vehicle, req *AllocationRequest) bool {
	if v.CurrentLoad+req.Delivery.Weight > v.Capacity {
		return false
	}
	for _, a := range m.allocations {
		if a.Vehicle.ID != v.ID {
			continue
		}
		if a.Status != StatusConfirmed && a.Status != StatusInProgress {
			continue
		}
		if m.hasTimeConflict(a, req) {
			return false
		}
	}
	return true
}

// hasTimeConflict is a stub kept for the scheduling extension: no
// conflicts are ever declared yet.
func (m *Manager) hasTimeConflict(existing *VehicleAllocation, req *AllocationRequest) bool {
	return false
}

// AllocationCost scores assigning v to req: shortest distance from the
// vehicle to the client plus a linear priority surcharge. Lower client
// priority values (more urgent) pay a higher surcharge, so urgency wins
// ties but never beats real distance:
//
//	cost = d + (4 - priority) * 0.1 * d
func (m *Manager) AllocationCost(v *vrp.Vehicle, req *AllocationRequest) float64 {
	if v.CurrentNode == nil || req.Client.NodeID == nil {
		return math.Inf(1)
	}
	var cost float64
	if m.costs != nil {
		cost = m.costs.Cost(*v.CurrentNode, *req.Client.NodeID)
	} else {
		cost = search.ShortestDistanceAStar(m.graph, *v.CurrentNode, *req.Client.NodeID)
	}
	penalty := float64(4-req.Client.Priority) * 0.1 * cost
	return cost + penalty
}

// allocateGreedy commits the cheapest available vehicle to req, or
// returns nil when none is available.
func (m *Manager) allocateGreedy(req *AllocationRequest, now time.Time) *VehicleAllocation {
	available := m.AvailableVehicles(req)
	if len(available) == 0 {
		metrics.Allocations.WithLabelValues("unassigned").Inc()
		return nil
	}

	best := available[0]
	bestCost := m.AllocationCost(best, req)
	for _, v := range available[1:] {
		if c := m.AllocationCost(v, req); c < bestCost {
			best, bestCost = v, c
		}
	}

	a := &VehicleAllocation{
		ID:                 uuid.New().String(),
		Vehicle:            best,
		Client:             req.Client,
		Request:            req,
		EstimatedArrival:   now.Add(30 * time.Minute),
		EstimatedDeparture: now.Add(60 * time.Minute),
		Status:             StatusPending,
	}
	best.CurrentLoad += req.Delivery.Weight
	m.allocations[a.ID] = a
	metrics.Allocations.WithLabelValues("assigned").Inc()
	return a
}

// SolveAllocationProblem serves requests in (priority ascending,
// creation order) and greedily assigns each the cheapest available
// vehicle. Requests with no available vehicle end up in Unassigned.
func (m *Manager) SolveAllocationProblem(requests []*AllocationRequest, algorithm string) (*AllocationSolution, error) {
	if algorithm != AlgorithmGreedy {
		return nil, fmt.Errorf("alloc: unsupported algorithm %q", algorithm)
	}

	ordered := append([]*AllocationRequest(nil), requests...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Client.Priority != ordered[j].Client.Priority {
			return ordered[i].Client.Priority < ordered[j].Client.Priority
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	now := time.Now()
	sol := &AllocationSolution{CreatedAt: now, Algorithm: algorithm}
	for _, req := range ordered {
		if a := m.allocateGreedy(req, now); a != nil {
			sol.Allocations = append(sol.Allocations, a)
		} else {
			sol.Unassigned = append(sol.Unassigned, req)
		}
	}

	for _, a := range sol.Allocations {
		// recomputed after commit: loads moved, distances did not
		sol.TotalCost += m.AllocationCost(a.Vehicle, a.Request)
	}
	return sol, nil
}

// UpdateStatus transitions an allocation to a valid lifecycle state.
func (m *Manager) UpdateStatus(allocationID string, status Status) bool {
	a, ok := m.allocations[allocationID]
	if !ok || !validStatus(status) {
		return false
	}
	a.Status = status
	return true
}

// Cancel marks an allocation cancelled and releases its vehicle's load.
func (m *Manager) Cancel(allocationID string) bool {
	a, ok := m.allocations[allocationID]
	if !ok {
		return false
	}
	a.Vehicle.CurrentLoad -= a.Request.Delivery.Weight
	a.Status = StatusCancelled
	return true
}

// Stats summarizes a solution against the managed fleet.
func (m *Manager) Stats(sol *AllocationSolution) SolutionStats {
	s := SolutionStats{
		TotalAllocations:   len(sol.Allocations),
		UnassignedRequests: len(sol.Unassigned),
		TotalCost:          sol.TotalCost,
	}
	total := len(sol.Allocations) + len(sol.Unassigned)
	if total > 0 {
		s.SuccessRate = float64(len(sol.Allocations)) / float64(total)
	}
	if len(sol.Allocations) > 0 {
		s.AverageCost = sol.TotalCost / float64(len(sol.Allocations))
		used := map[int64]bool{}
		for _, a := range sol.Allocations {
			used[a.Vehicle.ID] = true
		}
		if len(m.vehicles) > 0 {
			s.VehicleUtilization = float64(len(used)) / float64(len(m.vehicles))
		}
	}
	return s
}
