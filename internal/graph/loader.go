package graph

import (
	"encoding/json"
	"fmt"
)

// LoadJSON builds a geographic graph from an OSM-export shaped document:
//
//	{"graph": {"nodes": [{"id":1,"x":-35.7,"y":-9.6}],
//	           "links": [{"source":1,"target":2,"length":120.5}]}}
//
// Links without a length may carry a "weight" instead; links with
// neither are kept but skipped by the engines under the geographic
// weight policy.
func LoadJSON(data []byte) (*Graph, error) {
	var doc struct {
		Graph struct {
			Nodes []struct {
				ID int64   `json:"id"`
				X  float64 `json:"x"`
				Y  float64 `json:"y"`
			} `json:"nodes"`
			Links []struct {
				Source int64    `json:"source"`
				Target int64    `json:"target"`
				Length *float64 `json:"length"`
				Weight *float64 `json:"weight"`
			} `json:"links"`
		} `json:"graph"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("graph: parse: %w", err)
	}

	g := New(WeightGeographic)
	for _, n := range doc.Graph.Nodes {
		g.AddNodeAt(n.ID, n.Y, n.X)
	}
	for _, l := range doc.Graph.Links {
		switch {
		case l.Length != nil:
			g.AddEdge(l.Source, l.Target, *l.Length)
		case l.Weight != nil:
			g.AddWeightEdge(l.Source, l.Target, *l.Weight)
		default:
			g.AddBareEdge(l.Source, l.Target)
		}
	}
	if err := g.Check(); err != nil {
		return nil, err
	}
	return g, nil
}
