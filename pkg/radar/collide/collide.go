// Package collide spreads overlapping entries apart while keeping each one
// inside its own segment.
//
// Every tick works on a snapshot of the positions at the end of the previous
// tick. For each overlapping pair both bodies are pushed apart along the line
// joining their centers, by a fraction of the overlap. The pushes are summed
// per body, applied together at the tick boundary, and every body is then
// clipped back into its segment. Bodies can be shoved around by their
// neighbours but never leave their wedge of the chart.
//
// The resolver stops when no body moved more than Threshold during a tick, or
// after MaxTicks. Hitting the cap is not an error: a segment holding more
// entries than fit simply keeps some overlap.
package collide

import (
	"context"
	"math"
	"runtime"

	"github.com/jbeda/geom"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/segment"
)

// goldenAngle spreads the fallback directions of coincident pairs.
const goldenAngle = 2.399963229728653

// coincident is the distance under which two centers count as the same point.
const coincident = 1e-9

// State is the lifecycle stage of one body.
type State int

const (
	Unplaced State = iota
	Sampled
	Relaxing
	Settled
)

func (s State) String() string {
	switch s {
	case Sampled:
		return "sampled"
	case Relaxing:
		return "relaxing"
	case Settled:
		return "settled"
	default:
		return "unplaced"
	}
}

// Body is one entry as seen by the resolver.
type Body struct {
	Pos     geom.Coord
	Radius  float64 // collision disc
	Margin  float64 // distance kept from the segment's ring edges
	Segment *segment.Segment
	State   State
}

// Resolver holds the relaxation parameters.
type Resolver struct {
	// Strength is the fraction of a pair's overlap removed per tick, split
	// evenly between the two bodies.
	Strength  float64
	Threshold float64
	MaxTicks  int
	// Workers > 1 computes the per-body pushes concurrently. The result is
	// identical to the sequential pass.
	Workers int
}

// Result summarizes one run of the resolver.
type Result struct {
	Ticks            int
	MaxDisplacement  float64 // of the last tick
	Converged        bool
	ResidualOverlaps int
}

// Resolve relaxes bodies in place until they settle. It returns ctx.Err()
// if the context is cancelled between ticks; positions are then left at the
// end of the last completed tick.
func (r Resolver) Resolve(ctx context.Context, bodies []Body) (Result, error) {
	var res Result
	if len(bodies) == 0 {
		res.Converged = true
		return res, nil
	}

	for i := range bodies {
		bodies[i].State = Relaxing
	}

	for res.Ticks < r.MaxTicks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		d, err := r.Tick(ctx, bodies)
		if err != nil {
			return res, err
		}
		res.Ticks++
		res.MaxDisplacement = d
		if d < r.Threshold {
			res.Converged = true
			break
		}
	}

	for i := range bodies {
		bodies[i].State = Settled
	}
	res.ResidualOverlaps = Overlaps(bodies, r.slack())
	return res, nil
}

// Tick runs one relaxation step and returns the largest distance any body
// moved, clipping included.
func (r Resolver) Tick(ctx context.Context, bodies []Body) (float64, error) {
	snapshot := make([]geom.Coord, len(bodies))
	for i, b := range bodies {
		snapshot[i] = b.Pos
	}

	pushes, err := r.pushes(ctx, bodies, snapshot)
	if err != nil {
		return 0, err
	}

	var maxd float64
	for i := range bodies {
		b := &bodies[i]
		next := snapshot[i].Plus(pushes[i])
		if b.Segment != nil {
			next = segment.Clip(*b.Segment, next, b.Margin)
		}
		if d := next.DistanceFrom(snapshot[i]); d > maxd {
			maxd = d
		}
		b.Pos = next
	}
	return maxd, nil
}

func (r Resolver) pushes(ctx context.Context, bodies []Body, snapshot []geom.Coord) ([]geom.Coord, error) {
	out := make([]geom.Coord, len(bodies))

	workers := r.Workers
	if workers <= 1 || len(bodies) < 2 {
		for i := range bodies {
			out[i] = r.push(bodies, snapshot, i)
		}
		return out, nil
	}
	workers = min(workers, runtime.GOMAXPROCS(0), len(bodies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(bodies) + workers - 1) / workers
	for start := 0; start < len(bodies); start += chunk {
		end := min(start+chunk, len(bodies))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%64 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = r.push(bodies, snapshot, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// push sums the displacement body i receives from every other body. It
// reads only the snapshot, so bodies can be handled in any order.
func (r Resolver) push(bodies []Body, snapshot []geom.Coord, i int) geom.Coord {
	var sum geom.Coord
	for j := range bodies {
		if j == i {
			continue
		}
		sum = sum.Plus(r.pairPush(bodies, snapshot, i, j))
	}
	return sum
}

// pairPush is the displacement body i receives from body j. The pair is
// always evaluated from its lower index, so the two bodies of a pair get
// exactly opposite pushes.
func (r Resolver) pairPush(bodies []Body, snapshot []geom.Coord, i, j int) geom.Coord {
	lo, hi := min(i, j), max(i, j)
	delta := snapshot[hi].Minus(snapshot[lo])
	dist := delta.Magnitude()
	reach := bodies[lo].Radius + bodies[hi].Radius
	if dist >= reach {
		return geom.Coord{}
	}

	var dir geom.Coord
	if dist < coincident {
		a := float64(lo*31+hi) * goldenAngle
		dir = geom.Coord{X: math.Cos(a), Y: math.Sin(a)}
	} else {
		dir = delta.Times(1 / dist)
	}

	step := dir.Times(r.Strength * (reach - dist) / 2)
	if i == lo {
		return step.Times(-1)
	}
	return step
}

// slack is the overlap depth a converged run may leave behind: below it a
// pair's push is smaller than Threshold.
func (r Resolver) slack() float64 {
	if r.Strength <= 0 {
		return 0
	}
	return 2 * r.Threshold / r.Strength
}

// Overlaps counts the pairs whose collision discs intersect by more than
// slack.
func Overlaps(bodies []Body, slack float64) int {
	n := 0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			reach := bodies[i].Radius + bodies[j].Radius
			if bodies[i].Pos.DistanceFrom(bodies[j].Pos) < reach-slack {
				n++
			}
		}
	}
	return n
}

// FromTuning builds a resolver from the chart's tuning constants.
func FromTuning(t chart.Tuning) Resolver {
	return Resolver{
		Strength:  t.Strength,
		Threshold: t.Threshold,
		MaxTicks:  t.MaxTicks,
		Workers:   t.Workers,
	}
}
