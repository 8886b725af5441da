// Package graph holds the road network consumed by the search engines:
// a directed multigraph with optional per-node coordinates and per-edge
// weight records.
package graph

import (
	"fmt"
	"math"
	"sort"

	"optiroute/internal/geo"
)

// WeightPolicy decides what happens when an edge carries no usable
// weight record. Geographic graphs skip such edges entirely rather than
// fabricate a traversal; uniform graphs (synthetic fixtures) default
// them to 1.0.
type WeightPolicy int

const (
	WeightGeographic WeightPolicy = iota
	WeightUniform
)

const uniformDefaultWeight = 1.0

// Node is an intersection or point of interest. Coord is nil when the
// node has no geographic position.
type Node struct {
	ID    int64
	Coord *geo.Point
}

// Edge is one directed weight record. Parallel edges between the same
// ordered pair are allowed; consumers see only the minimum.
type Edge struct {
	To        int64
	Length    float64
	Weight    float64
	HasLength bool
	HasWeight bool
}

// Neighbor is an adjacent node together with the best (minimum) usable
// weight among all parallel edges to it.
type Neighbor struct {
	ID     int64
	Weight float64
}

// Stats summarizes a built graph.
type Stats struct {
	Nodes   int
	Edges   int
	Located int
	Density float64
}

type Graph struct {
	policy WeightPolicy
	nodes  map[int64]*Node
	adj    map[int64][]Edge
	edges  int
}

func New(policy WeightPolicy) *Graph {
	return &Graph{
		policy: policy,
		nodes:  map[int64]*Node{},
		adj:    map[int64][]Edge{},
	}
}

func (g *Graph) Policy() WeightPolicy { return g.policy }

// AddNode registers a node without coordinates. Re-adding an existing
// node is a no-op.
func (g *Graph) AddNode(id int64) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = &Node{ID: id}
	}
}

// AddNodeAt registers a node with coordinates, overwriting any previous
// position.
func (g *Graph) AddNodeAt(id int64, lat, lng float64) {
	g.AddNode(id)
	g.nodes[id].Coord = &geo.Point{Lat: lat, Lng: lng}
}

// AddEdge adds a directed edge carrying a length record. Missing
// endpoints are created.
func (g *Graph) AddEdge(from, to int64, length float64) {
	g.addEdge(from, Edge{To: to, Length: length, HasLength: true})
}

// AddWeightEdge adds a directed edge carrying only a fallback weight
// record, no length.
func (g *Graph) AddWeightEdge(from, to int64, weight float64) {
	g.addEdge(from, Edge{To: to, Weight: weight, HasWeight: true})
}

// AddBareEdge adds a directed edge with no weight record at all. Under
// WeightUniform it traverses at the default weight; under
// WeightGeographic it is invisible to the engines.
func (g *Graph) AddBareEdge(from, to int64) {
	g.addEdge(from, Edge{To: to})
}

func (g *Graph) addEdge(from int64, e Edge) {
	g.AddNode(from)
	g.AddNode(e.To)
	g.adj[from] = append(g.adj[from], e)
	g.edges++
}

func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return g.edges }

// NodeIDs returns all node ids in ascending order.
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Coordinates returns a node's position, if it has one.
func (g *Graph) Coordinates(id int64) (geo.Point, bool) {
	n, ok := g.nodes[id]
	if !ok || n.Coord == nil {
		return geo.Point{}, false
	}
	return *n.Coord, true
}

// effectiveWeight applies the length→weight→policy-default fallback to
// a single edge record.
func (g *Graph) effectiveWeight(e Edge) (float64, bool) {
	switch {
	case e.HasLength:
		return e.Length, true
	case e.HasWeight:
		return e.Weight, true
	case g.policy == WeightUniform:
		return uniformDefaultWeight, true
	default:
		return 0, false
	}
}

// Neighbors returns the adjacent nodes of id with parallel edges
// collapsed to their minimum usable weight, in first-seen edge order.
func (g *Graph) Neighbors(id int64) []Neighbor {
	edges := g.adj[id]
	if len(edges) == 0 {
		return nil
	}
	out := make([]Neighbor, 0, len(edges))
	pos := make(map[int64]int, len(edges))
	for _, e := range edges {
		w, ok := g.effectiveWeight(e)
		if !ok {
			continue
		}
		if i, seen := pos[e.To]; seen {
			if w < out[i].Weight {
				out[i].Weight = w
			}
			continue
		}
		pos[e.To] = len(out)
		out = append(out, Neighbor{ID: e.To, Weight: w})
	}
	return out
}

// NearestNode returns the located node closest to (lat, lng) by
// great-circle distance. ok is false when no node carries coordinates.
func (g *Graph) NearestNode(lat, lng float64) (int64, bool) {
	target := geo.Point{Lat: lat, Lng: lng}
	best := int64(0)
	bestDist := math.Inf(1)
	found := false
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		if n.Coord == nil {
			continue
		}
		d := geo.HaversineMeters(*n.Coord, target)
		if d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// Stats reports node/edge counts, how many nodes carry coordinates, and
// edge density.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.nodes), Edges: g.edges}
	for _, n := range g.nodes {
		if n.Coord != nil {
			s.Located++
		}
	}
	if s.Nodes > 1 {
		s.Density = float64(s.Edges) / float64(s.Nodes*(s.Nodes-1))
	}
	return s
}

// Check verifies the graph is well formed for routing: every usable
// edge weight must be non-negative.
func (g *Graph) Check() error {
	for from, edges := range g.adj {
		for _, e := range edges {
			w, ok := g.effectiveWeight(e)
			if !ok {
				continue
			}
			if w < 0 {
				return fmt.Errorf("graph: edge %d->%d has negative weight %v", from, e.To, w)
			}
		}
	}
	return nil
}
