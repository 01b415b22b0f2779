// Package prng provides the deterministic pseudo-random source used to seed
// initial radar placements.
//
// The generator is not statistically strong. Its only contract is that the
// same seed always yields the same sequence, on every platform, so that a
// chart rendered twice from the same input looks the same.
//
//	src := prng.New(prng.DefaultSeed)
//	angle := src.Between(0, math.Pi/2)
//	radius := src.Triangular(30, 200)
package prng

import "math"

// DefaultSeed is the seed used when none is configured.
const DefaultSeed = 42

// scale spreads consecutive sine values far enough apart that their
// fractional parts look unrelated.
const scale = 10000

// Source is a seeded sine-hash sequence. The zero value is a valid Source
// starting at seed 0. A Source is not safe for concurrent use.
type Source struct {
	seed int64
}

// New returns a Source starting at seed.
func New(seed int64) *Source {
	return &Source{seed: seed}
}

// Seed reports the value the next draw will consume.
func (s *Source) Seed() int64 { return s.seed }

// Next returns the next value in [0, 1) and advances the seed by one.
func (s *Source) Next() float64 {
	x := math.Sin(float64(s.seed)) * scale
	s.seed++
	f := x - math.Floor(x)
	if f >= 1 {
		// x rounded up to the next integer boundary.
		return 0
	}
	return f
}

// Float64 is an alias for Next.
func (s *Source) Float64() float64 { return s.Next() }

// Between returns a uniform value in [lo, hi). It consumes one draw.
func (s *Source) Between(lo, hi float64) float64 {
	return lo + s.Next()*(hi-lo)
}

// Triangular returns a value in [lo, hi) biased toward the midpoint.
// The result is the mean of two uniform draws, so it consumes two.
func (s *Source) Triangular(lo, hi float64) float64 {
	a := s.Next()
	b := s.Next()
	return lo + (a+b)*0.5*(hi-lo)
}
