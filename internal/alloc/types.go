// Package alloc matches individual vehicles to service requests with a
// priority-weighted greedy strategy.
package alloc

import (
	"time"

	"optiroute/internal/geo"
	"optiroute/internal/vrp"
)

// Status is the lifecycle state of an allocation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func validStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Client is a served party. Lower Priority values are treated as more
// urgent throughout this package.
type Client struct {
	ID              int64
	Name            string
	Location        geo.Point
	NodeID          *int64
	Priority        int
	ServiceTime     float64
	TimeWindowStart *time.Time
	TimeWindowEnd   *time.Time
}

// AllocationRequest pairs a client with a delivery request.
type AllocationRequest struct {
	ID                   int64
	Client               *Client
	Delivery             vrp.DeliveryRequest
	RequestedVehicleType string
	MaxWaitTime          *float64
	CreatedAt            time.Time
}

// VehicleAllocation binds a vehicle to a request with estimated timing.
type VehicleAllocation struct {
	ID                 string
	Vehicle            *vrp.Vehicle
	Client             *Client
	Request            *AllocationRequest
	EstimatedArrival   time.Time
	EstimatedDeparture time.Time
	RouteToClient      []int64
	Status             Status
}

// AllocationSolution aggregates one solver run.
type AllocationSolution struct {
	Allocations   []*VehicleAllocation
	Unassigned    []*AllocationRequest
	TotalCost     float64
	TotalDistance float64
	TotalTime     float64
	CreatedAt     time.Time
	Algorithm     string
}

// SolutionStats summarizes an allocation solution.
type SolutionStats struct {
	TotalAllocations   int
	UnassignedRequests int
	SuccessRate        float64
	TotalCost          float64
	AverageCost        float64
	VehicleUtilization float64
}
