// Package segment models the region of the chart where one quadrant and one
// ring intersect.
//
// Every entry lives in exactly one [Segment]. The segment decides where the
// entry starts ([Sample], [Place]) and pulls it back whenever the collision
// resolver pushes it out ([Clip]).
//
// Clip works in a quadrant-local frame in which every segment faces the +X/+Y
// quarter of the plane. That keeps the angle arithmetic free of wrap-around at
// ±π regardless of which quadrant the segment belongs to.
package segment

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/geometry"
	"github.com/matzehuels/stackradar/pkg/radar/prng"
)

// Tolerances under which a point counts as already inside its segment.
const (
	radialEps  = 1e-9
	angularEps = 1e-12
)

// Segment is the immutable geometry of one (quadrant, ring) cell.
type Segment struct {
	Quadrant int
	Ring     int

	// AngleMin and AngleMax bound the sampled angle, in radians, already
	// narrowed by the configured angular margin.
	AngleMin float64
	AngleMax float64

	InnerRadius float64
	OuterRadius float64

	FactorX float64
	FactorY float64

	// Box spans from (Inset*fx, Inset*fy) to (R*fx, R*fy), R being the
	// radius of the outermost ring.
	Box   geom.Rect
	Inset float64

	// local angular bounds in [0, π/2]
	localMin float64
	localMax float64
}

// New derives the segment for quadrant q and ring r of cfg. The indexes must
// be valid for cfg.
func New(cfg chart.Config, q, r int) Segment {
	quad := cfg.Quadrants[q]
	margin := math.Min(cfg.Tuning.AngularMargin, quad.Span()/2)
	outer := cfg.OuterRadius()
	inset := cfg.Tuning.BoxInset

	s := Segment{
		Quadrant:    q,
		Ring:        r,
		AngleMin:    quad.AngleMin + margin,
		AngleMax:    quad.AngleMax - margin,
		InnerRadius: cfg.InnerRadius(r),
		OuterRadius: cfg.Rings[r].Radius,
		FactorX:     quad.FactorX,
		FactorY:     quad.FactorY,
		Inset:       inset,
		Box: geometry.Box(
			geom.Coord{X: inset * quad.FactorX, Y: inset * quad.FactorY},
			geom.Coord{X: outer * quad.FactorX, Y: outer * quad.FactorY},
		),
	}

	a, b := s.toLocal(s.AngleMin), s.toLocal(s.AngleMax)
	s.localMin = geometry.ClampScalar(math.Min(a, b), 0, math.Pi/2)
	s.localMax = geometry.ClampScalar(math.Max(a, b), 0, math.Pi/2)
	return s
}

// toLocal maps a chart angle into the quadrant-local frame. The mapping is
// its own inverse because the sign factors are ±1.
func (s Segment) toLocal(angle float64) float64 {
	return math.Atan2(math.Sin(angle)*s.FactorY, math.Cos(angle)*s.FactorX)
}

func (s Segment) fromLocal(angle float64) float64 {
	return s.toLocal(angle)
}

// RadialBand returns the radii an entry with the given margin may occupy.
// When the margin leaves no room the band collapses to the ring's midline.
func (s Segment) RadialBand(margin float64) (lo, hi float64) {
	lo, hi = s.InnerRadius+margin, s.OuterRadius-margin
	if lo > hi {
		mid := (s.InnerRadius + s.OuterRadius) / 2
		return mid, mid
	}
	return lo, hi
}

// angularBand returns the local angles a point at radius r may take while
// staying Inset away from both axes.
func (s Segment) angularBand(r float64) (float64, float64) {
	axis := math.Pi / 2
	if r > 0 {
		axis = math.Asin(math.Min(1, s.Inset/r))
	}
	tLo := math.Max(s.localMin, axis)
	tHi := math.Min(s.localMax, math.Pi/2-axis)
	if tLo > tHi {
		mid := (s.localMin + s.localMax) / 2
		return mid, mid
	}
	return tLo, tHi
}

// Contains reports whether p is a fixed point of Clip for the given margin.
func (s Segment) Contains(p geom.Coord, margin float64) bool {
	if !geometry.InRect(p, s.Box, radialEps) {
		return false
	}
	return s.inBands(geometry.ToPolar(p), margin)
}

func (s Segment) inBands(pol geometry.Polar, margin float64) bool {
	lo, hi := s.RadialBand(margin)
	tLo, tHi := s.angularBand(geometry.ClampScalar(pol.Radius, lo, hi))
	t := s.toLocal(pol.Angle)
	return pol.Radius >= lo-radialEps && pol.Radius <= hi+radialEps &&
		t >= tLo-angularEps && t <= tHi+angularEps
}

// Sample draws a point inside the segment: the angle uniformly between the
// angular bounds and the radius from a triangular distribution between the
// ring edges. It consumes three draws from src.
func Sample(s Segment, src *prng.Source) geom.Coord {
	angle := src.Between(s.AngleMin, s.AngleMax)
	radius := src.Triangular(s.InnerRadius, s.OuterRadius)
	return geometry.ToCartesian(geometry.Polar{Angle: angle, Radius: radius})
}

// Clip forces p back into the segment for an entry with the given margin.
//
// The point is clamped into the segment's bounding box, converted to polar
// form, clamped into the radial band [inner+margin, outer-margin], held
// inside the angles that keep it clear of the axes at that radius, and
// converted back. Points that already satisfy every bound are returned
// unchanged, which makes Clip idempotent.
func Clip(s Segment, p geom.Coord, margin float64) geom.Coord {
	c := p
	if !geometry.InRect(p, s.Box, radialEps) {
		c = geometry.ClampRect(p, s.Box)
	}

	pol := geometry.ToPolar(c)
	if s.inBands(pol, margin) {
		return c
	}

	lo, hi := s.RadialBand(margin)
	pol = geometry.ClampRadius(pol, lo, hi)
	tLo, tHi := s.angularBand(pol.Radius)
	pol.Angle = s.fromLocal(geometry.ClampScalar(s.toLocal(pol.Angle), tLo, tHi))
	return geometry.ToCartesian(pol)
}

// Place samples a starting point and clips it for the given margin.
func Place(s Segment, src *prng.Source, margin float64) geom.Coord {
	return Clip(s, Sample(s, src), margin)
}

// Margin returns the distance an entry keeps from its ring edges:
// the base radial margin plus its size weighted by SizeScale.
func Margin(t chart.Tuning, e chart.Entry) float64 {
	return t.RadialMargin + t.SizeScale*e.SizeOr(t.DefaultSize)
}

// CollisionRadius returns the radius of the entry's collision disc: its size,
// floored at the configured collision radius.
func CollisionRadius(t chart.Tuning, e chart.Entry) float64 {
	return math.Max(e.SizeOr(t.DefaultSize), t.CollisionRadius)
}
