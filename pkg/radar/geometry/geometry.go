// Package geometry converts between the cartesian plane the chart is drawn
// on and the polar form the segment bounds are expressed in.
//
// The origin is the chart center. Angles are radians measured from the +X
// axis, returned by [ToPolar] in (-π, π]. All functions are pure.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Polar is a point in polar form.
type Polar struct {
	Angle  float64
	Radius float64
}

// ToPolar converts p to polar form.
func ToPolar(p geom.Coord) Polar {
	return Polar{
		Angle:  math.Atan2(p.Y, p.X),
		Radius: math.Hypot(p.X, p.Y),
	}
}

// ToCartesian converts p back to the plane.
func ToCartesian(p Polar) geom.Coord {
	return geom.Coord{
		X: p.Radius * math.Cos(p.Angle),
		Y: p.Radius * math.Sin(p.Angle),
	}
}

// ClampScalar clamps v into the closed interval spanned by a and b.
// The bounds may be given in either order.
func ClampScalar(v, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return math.Max(lo, math.Min(hi, v))
}

// ClampRadius keeps the angle and clamps the radius into [rMin, rMax].
func ClampRadius(p Polar, rMin, rMax float64) Polar {
	return Polar{Angle: p.Angle, Radius: ClampScalar(p.Radius, rMin, rMax)}
}

// Box returns the axis-aligned rectangle spanned by two opposite corners,
// normalized so that Min holds the smaller coordinates.
func Box(a, b geom.Coord) geom.Rect {
	r := geom.Rect{Min: a, Max: a}
	r.ExpandToContainCoord(b)
	return r
}

// ClampBox clamps each coordinate of p into the rectangle spanned by the
// two corners, independent of the order the corners are given in.
func ClampBox(p, a, b geom.Coord) geom.Coord {
	return ClampRect(p, Box(a, b))
}

// ClampRect clamps each coordinate of p into r.
func ClampRect(p geom.Coord, r geom.Rect) geom.Coord {
	return geom.Coord{
		X: ClampScalar(p.X, r.Min.X, r.Max.X),
		Y: ClampScalar(p.Y, r.Min.Y, r.Max.Y),
	}
}

// InRect reports whether p lies inside r, allowing eps of slack.
func InRect(p geom.Coord, r geom.Rect, eps float64) bool {
	return p.X >= r.Min.X-eps && p.X <= r.Max.X+eps &&
		p.Y >= r.Min.Y-eps && p.Y <= r.Max.Y+eps
}
