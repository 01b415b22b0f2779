// Package partition groups entries by segment and numbers them.
//
// Numbering follows the chart's presentation order: quadrants in the
// configured order, rings from the innermost outward, and entries of one
// segment in input order. The legend is read in the same order, so the
// numbers on the chart count up as the reader moves through it.
package partition

import (
	"strconv"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

// Buckets holds entry input positions grouped by quadrant and ring.
type Buckets [][][]int

// Partition groups the input positions of entries by (quadrant, ring),
// preserving input order inside each bucket. Entries must already have
// passed Config.ValidateEntries.
func Partition(cfg chart.Config, entries []chart.Entry) Buckets {
	b := make(Buckets, len(cfg.Quadrants))
	for q := range b {
		b[q] = make([][]int, len(cfg.Rings))
	}
	for i, e := range entries {
		b[e.Quadrant][e.Ring] = append(b[e.Quadrant][e.Ring], i)
	}
	return b
}

// Segment returns the input positions assigned to quadrant q, ring r.
func (b Buckets) Segment(q, r int) []int {
	if q < 0 || q >= len(b) || r < 0 || r >= len(b[q]) {
		return nil
	}
	return b[q][r]
}

// Len returns the number of entries across all buckets.
func (b Buckets) Len() int {
	n := 0
	for _, rings := range b {
		for _, bucket := range rings {
			n += len(bucket)
		}
	}
	return n
}

// Walk calls fn for every entry in presentation order: quadrants as listed
// in order, rings ascending, bucket order within a segment.
func (b Buckets) Walk(order []int, fn func(q, r, idx int)) {
	for _, q := range order {
		if q < 0 || q >= len(b) {
			continue
		}
		for r, bucket := range b[q] {
			for _, idx := range bucket {
				fn(q, r, idx)
			}
		}
	}
}

// AssignIDs numbers the entries 1..N in presentation order. The result is
// indexed by input position. order must be a permutation of the quadrant
// indexes, so every entry receives exactly one id.
func AssignIDs(b Buckets, order []int) []int {
	ids := make([]int, b.Len())
	next := 1
	b.Walk(order, func(_, _, idx int) {
		ids[idx] = next
		next++
	})
	return ids
}

// Label formats an id the way it is printed on the chart.
func Label(id int) string {
	return strconv.Itoa(id)
}
