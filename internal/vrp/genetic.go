package vrp

import (
	"log"

	"optiroute/internal/graph"
)

// Genetic is a placeholder strategy slot for a population-based solver.
// It currently produces no routes.
type Genetic struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
}

func (ga *Genetic) Solve(g *graph.Graph, vehicles []Vehicle, deliveries []DeliveryRequest, depotNode int64) []Route {
	log.Printf("vrp: genetic algorithm not implemented, returning no routes")
	return nil
}
