package segment

import "github.com/matzehuels/stackradar/pkg/radar/chart"

// Grid holds every segment of a chart, indexed by quadrant then ring.
// It is built once per layout and shared read-only by all entries.
type Grid struct {
	cells [][]Segment
}

// Build derives all segments of cfg. cfg must have passed Validate.
func Build(cfg chart.Config) Grid {
	cells := make([][]Segment, len(cfg.Quadrants))
	for q := range cfg.Quadrants {
		cells[q] = make([]Segment, len(cfg.Rings))
		for r := range cfg.Rings {
			cells[q][r] = New(cfg, q, r)
		}
	}
	return Grid{cells: cells}
}

// At returns the segment for quadrant q and ring r. The pointer refers into
// the grid and must not be written through.
func (g Grid) At(q, r int) *Segment {
	return &g.cells[q][r]
}

// Quadrants returns the number of quadrants in the grid.
func (g Grid) Quadrants() int { return len(g.cells) }

// Rings returns the number of rings in the grid.
func (g Grid) Rings() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}
