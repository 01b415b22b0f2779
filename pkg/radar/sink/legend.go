package sink

import (
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

// Legend geometry of the stock 1450×900 canvas, relative to its center.
const (
	legendRingSpacing = 50 // between the last item of a ring and the next ring
	legendItemSpacing = 15
	legendRingHeader  = -20 // ring name above its first item
	legendNameOffset  = -45 // quadrant name above the legend block
	legendMaxRunes    = 25
)

// legendOffsets anchor each quadrant's legend block, indexed by quadrant.
var legendOffsets = [4][2]float64{
	{450, 90},
	{-675, 90},
	{-675, -310},
	{450, -310},
}

var (
	titleOffset  = [2]float64{-675, -420}
	footerOffset = [2]float64{-675, 420}
)

// LegendItem is one "<id>. <label>" line.
type LegendItem struct {
	ID     int
	Text   string
	Link   string
	X, Y   float64
	Active bool
}

// LegendRing is the ring heading and the items listed under it.
type LegendRing struct {
	Name  string
	Color string
	X, Y  float64
	Items []LegendItem
}

// LegendBlock is the legend of one quadrant.
type LegendBlock struct {
	Quadrant int
	Name     string
	X, Y     float64
	Rings    []LegendRing
}

// BuildLegend lays out the legend of every quadrant, in presentation
// order. Within a ring, items are listed in id order.
func BuildLegend(l layout.Layout) []LegendBlock {
	cfg := l.Config
	blocks := make([]LegendBlock, 0, len(cfg.Order))
	for _, q := range cfg.Order {
		ox, oy := legendOffsets[q][0], legendOffsets[q][1]
		b := LegendBlock{
			Quadrant: q,
			Name:     cfg.Quadrants[q].Name,
			X:        ox,
			Y:        oy + legendNameOffset,
		}
		var dy float64
		for r, placements := range l.Legend(q) {
			ring := LegendRing{
				Name:  cfg.Rings[r].Name,
				Color: cfg.Rings[r].Color,
				X:     ox,
				Y:     oy + dy + legendRingHeader,
			}
			for i, p := range placements {
				ring.Items = append(ring.Items, LegendItem{
					ID:     p.ID,
					Text:   Truncate(strconv.Itoa(p.ID)+". "+p.Entry.Label, legendMaxRunes),
					Link:   p.Entry.Link,
					X:      ox,
					Y:      oy + dy + float64(i)*legendItemSpacing,
					Active: p.Entry.Active,
				})
			}
			b.Rings = append(b.Rings, ring)
			dy += legendRingSpacing + float64(len(placements))*legendItemSpacing
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// Truncate shortens s to at most max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}
