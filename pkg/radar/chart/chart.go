// Package chart defines the radar data model: the four quadrants, the
// concentric rings, the entries placed on them and the tuning constants
// that drive placement and collision resolution.
//
// A [Config] is built once, validated, and then treated as read-only by the
// layout engine. Nothing downstream writes back into it.
//
// # Quadrants
//
// Each quadrant owns a contiguous angular span and a pair of sign factors
// that name the cartesian quadrant it lives in:
//
//	0: [0, π/2]     (+1, +1)
//	1: [π/2, π]     (-1, +1)
//	2: [-π, -π/2]   (-1, -1)
//	3: [-π/2, 0]    (+1, -1)
//
// Y grows downward on the rendered canvas, so quadrant 0 is drawn bottom
// right.
package chart

import "math"

// NumQuadrants is the fixed number of quadrants on a chart.
const NumQuadrants = 4

// Quadrant is an angular sector of the chart.
type Quadrant struct {
	Name     string
	AngleMin float64 // radians
	AngleMax float64 // radians
	FactorX  float64 // +1 or -1
	FactorY  float64 // +1 or -1
}

// Span returns the angular width of the quadrant.
func (q Quadrant) Span() float64 { return q.AngleMax - q.AngleMin }

// Ring is a concentric band. Its outer edge is Radius; its inner edge is the
// previous ring's radius, or Tuning.InnerRadius for the innermost ring.
type Ring struct {
	Name      string
	Radius    float64
	Color     string
	TextColor string
}

// Tuning groups the numeric constants of placement and collision resolution.
type Tuning struct {
	InnerRadius     float64 // inner edge of ring 0
	BoxInset        float64 // distance kept from both axes
	AngularMargin   float64 // radians trimmed from each side of a quadrant span
	RadialMargin    float64 // base distance kept from ring edges
	SizeScale       float64 // weight of an entry's size in its radial margin
	DefaultSize     float64 // entry size when none is given
	CollisionRadius float64 // radius of each entry's collision disc
	Strength        float64 // fraction of a pair's overlap removed per tick
	MaxTicks        int
	Threshold       float64 // settle when the largest displacement drops below
	Seed            int64
	Workers         int // goroutines for the per-tick force pass
}

// Render holds presentation settings. The layout engine never reads them.
type Render struct {
	Width         float64
	Height        float64
	Font          string
	Background    string
	Text          string
	Grid          string
	Inactive      string
	Footer        string
	PrintLayout   bool
	LinksInNewTab bool
}

// Config is a complete, validated chart definition.
type Config struct {
	Title     string
	Quadrants []Quadrant
	Rings     []Ring
	// Order is the quadrant sequence used when numbering entries and
	// drawing legends.
	Order  []int
	Tuning Tuning
	Render Render
}

// DefaultOrder numbers the top-left quadrant first, then top-right,
// bottom-left and bottom-right.
var DefaultOrder = []int{2, 3, 1, 0}

// DefaultTuning returns the tuning constants of the stock chart.
func DefaultTuning() Tuning {
	return Tuning{
		InnerRadius:     30,
		BoxInset:        15,
		AngularMargin:   0,
		RadialMargin:    15,
		SizeScale:       1,
		DefaultSize:     12,
		CollisionRadius: 31,
		Strength:        0.7,
		MaxTicks:        300,
		Threshold:       0.05,
		Seed:            42,
		Workers:         1,
	}
}

// DefaultRender returns the stock presentation settings.
func DefaultRender() Render {
	return Render{
		Width:       1450,
		Height:      900,
		Font:        "Raleway",
		Background:  "#ffffff",
		Text:        "#222222",
		Grid:        "#dddde0",
		Inactive:    "#dddddd",
		Footer:      "■ new ▲ moved",
		PrintLayout: true,
	}
}

// DefaultQuadrants returns the four quadrants of the stock chart.
func DefaultQuadrants() []Quadrant {
	return []Quadrant{
		{Name: "Bottleneck suppliers", AngleMin: 0, AngleMax: 0.5 * math.Pi, FactorX: 1, FactorY: 1},
		{Name: "Routine suppliers", AngleMin: 0.5 * math.Pi, AngleMax: math.Pi, FactorX: -1, FactorY: 1},
		{Name: "Leverage suppliers", AngleMin: -math.Pi, AngleMax: -0.5 * math.Pi, FactorX: -1, FactorY: -1},
		{Name: "Strategic suppliers", AngleMin: -0.5 * math.Pi, AngleMax: 0, FactorX: 1, FactorY: -1},
	}
}

// DefaultRings returns the three rings of the stock chart.
func DefaultRings() []Ring {
	return []Ring{
		{Name: "High", Radius: 200, Color: "#c0392b", TextColor: "white"},
		{Name: "Medium", Radius: 300, Color: "#e67e22", TextColor: "white"},
		{Name: "Low", Radius: 400, Color: "#27ae60", TextColor: "white"},
	}
}

// Default returns the stock chart configuration.
func Default() Config {
	return Config{
		Quadrants: DefaultQuadrants(),
		Rings:     DefaultRings(),
		Order:     append([]int(nil), DefaultOrder...),
		Tuning:    DefaultTuning(),
		Render:    DefaultRender(),
	}
}

// InnerRadius returns the inner edge of ring r.
func (c Config) InnerRadius(r int) float64 {
	if r == 0 {
		return c.Tuning.InnerRadius
	}
	return c.Rings[r-1].Radius
}

// OuterRadius returns the radius of the outermost ring.
func (c Config) OuterRadius() float64 {
	if len(c.Rings) == 0 {
		return 0
	}
	return c.Rings[len(c.Rings)-1].Radius
}

// Clone returns a deep copy so callers cannot alias the slices of c.
func (c Config) Clone() Config {
	c.Quadrants = append([]Quadrant(nil), c.Quadrants...)
	c.Rings = append([]Ring(nil), c.Rings...)
	c.Order = append([]int(nil), c.Order...)
	return c
}
