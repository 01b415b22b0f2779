// Package layout runs the radar layout engine end to end.
//
// [Build] is a pure function of the entries and the configuration: it
// validates the entries, derives the segment grid, samples every entry into
// its segment from one deterministic source, numbers the entries in
// presentation order, and relaxes overlaps until the positions settle. The
// returned [Layout] is read-only data for renderers and other consumers.
//
//	l, err := layout.Build(ctx, chart.Default(), entries)
//	if err != nil {
//	    return err
//	}
//	for _, p := range l.Output() {
//	    fmt.Println(p.ID, p.X, p.Y)
//	}
package layout

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jbeda/geom"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/collide"
	"github.com/matzehuels/stackradar/pkg/radar/partition"
	"github.com/matzehuels/stackradar/pkg/radar/prng"
	"github.com/matzehuels/stackradar/pkg/radar/segment"
)

// Placement is one settled entry.
type Placement struct {
	ID      int
	Entry   chart.Entry
	Segment *segment.Segment
	X, Y    float64
	Sampled geom.Coord // position before relaxation
	State   collide.State
}

// Point is the engine's output tuple for one entry.
type Point struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Stats describes how the relaxation went.
type Stats struct {
	Entries          int
	Ticks            int
	MaxDisplacement  float64
	Converged        bool
	ResidualOverlaps int
	Duration         time.Duration
}

// Layout is the result of one engine run. Placements are in input order.
type Layout struct {
	Config     chart.Config
	Placements []Placement
	Buckets    partition.Buckets
	Stats      Stats
}

// Option configures Build.
type Option func(*builder)

type builder struct {
	logger   *log.Logger
	resolver collide.Resolver
}

// WithLogger sets the logger for debug output. The default discards it.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithResolver adjusts the collision resolver derived from the tuning
// constants, e.g. to cap the tick count in an interactive preview.
func WithResolver(fn func(*collide.Resolver)) Option {
	return func(b *builder) { fn(&b.resolver) }
}

// Build lays out entries on the chart described by cfg.
//
// cfg is validated first; a malformed configuration fails before any entry
// is looked at. An entry whose quadrant or ring does not exist fails with
// errors.ErrCodeInvalidEntry and is never clamped into range. An empty
// entry list yields an empty layout. Reaching the tick cap is reported in
// Stats, not as an error.
func Build(ctx context.Context, cfg chart.Config, entries []chart.Entry, opts ...Option) (Layout, error) {
	start := time.Now()
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	if err := cfg.ValidateEntries(entries); err != nil {
		return Layout{}, err
	}
	cfg = cfg.Clone()

	b := builder{
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		resolver: collide.FromTuning(cfg.Tuning),
	}
	for _, opt := range opts {
		opt(&b)
	}

	grid := segment.Build(cfg)
	b.logger.Debug("built segment grid", "quadrants", grid.Quadrants(), "rings", grid.Rings())

	src := prng.New(cfg.Tuning.Seed)
	bodies := make([]collide.Body, len(entries))
	for i, e := range entries {
		seg := grid.At(e.Quadrant, e.Ring)
		margin := segment.Margin(cfg.Tuning, e)
		bodies[i] = collide.Body{
			Pos:     segment.Place(*seg, src, margin),
			Radius:  segment.CollisionRadius(cfg.Tuning, e),
			Margin:  margin,
			Segment: seg,
			State:   collide.Sampled,
		}
	}

	buckets := partition.Partition(cfg, entries)
	ids := partition.AssignIDs(buckets, cfg.Order)
	b.logger.Debug("assigned ids", "entries", len(ids), "order", cfg.Order)

	sampled := make([]geom.Coord, len(bodies))
	for i := range bodies {
		sampled[i] = bodies[i].Pos
	}

	res, err := b.resolver.Resolve(ctx, bodies)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve collisions: %w", err)
	}

	l := Layout{
		Config:     cfg,
		Placements: make([]Placement, len(entries)),
		Buckets:    buckets,
		Stats: Stats{
			Entries:          len(entries),
			Ticks:            res.Ticks,
			MaxDisplacement:  res.MaxDisplacement,
			Converged:        res.Converged,
			ResidualOverlaps: res.ResidualOverlaps,
			Duration:         time.Since(start),
		},
	}
	for i, e := range entries {
		l.Placements[i] = Placement{
			ID:      ids[i],
			Entry:   e,
			Segment: bodies[i].Segment,
			X:       bodies[i].Pos.X,
			Y:       bodies[i].Pos.Y,
			Sampled: sampled[i],
			State:   bodies[i].State,
		}
	}

	if res.Converged {
		b.logger.Debug("layout settled", "ticks", res.Ticks, "overlaps", res.ResidualOverlaps)
	} else {
		b.logger.Info("layout stopped at tick cap",
			"ticks", res.Ticks,
			"max_displacement", res.MaxDisplacement,
			"overlaps", res.ResidualOverlaps)
	}
	return l, nil
}

// Output returns the (id, x, y) tuples in input order.
func (l Layout) Output() []Point {
	out := make([]Point, len(l.Placements))
	for i, p := range l.Placements {
		out[i] = Point{ID: p.ID, X: p.X, Y: p.Y}
	}
	return out
}

// ByID returns the placements ordered by id, the order legends list them in.
func (l Layout) ByID() []Placement {
	out := make([]Placement, len(l.Placements))
	for _, p := range l.Placements {
		out[p.ID-1] = p
	}
	return out
}

// Legend returns the placements of quadrant q grouped by ring, each group in
// id order.
func (l Layout) Legend(q int) [][]Placement {
	rings := make([][]Placement, len(l.Config.Rings))
	for r := range rings {
		for _, idx := range l.Buckets.Segment(q, r) {
			rings[r] = append(rings[r], l.Placements[idx])
		}
	}
	return rings
}
