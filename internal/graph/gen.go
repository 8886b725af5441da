package graph

// Grid generates a rows x cols street grid with bidirectional
// length-weighted edges between orthogonal neighbors. Node ids are
// row-major starting at 0, coordinates are laid out south-to-north and
// west-to-east around the origin with roughly spacingMeters between
// adjacent nodes. Used by tests and the benchmark tool.
func Grid(rows, cols int, spacingMeters float64) *Graph {
	g := New(WeightGeographic)
	// ~1 degree latitude per 111.195 km on the 6371 km sphere
	step := spacingMeters / 111195.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := int64(r*cols + c)
			g.AddNodeAt(id, float64(r)*step, float64(c)*step)
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := int64(r*cols + c)
			if c+1 < cols {
				right := id + 1
				g.AddEdge(id, right, spacingMeters)
				g.AddEdge(right, id, spacingMeters)
			}
			if r+1 < rows {
				down := id + int64(cols)
				g.AddEdge(id, down, spacingMeters)
				g.AddEdge(down, id, spacingMeters)
			}
		}
	}
	return g
}
