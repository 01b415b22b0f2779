package chart

import (
	"fmt"
	"math"

	"github.com/matzehuels/stackradar/pkg/errors"
)

// axisEps absorbs the rounding of multiples of π on the quadrant axes.
const axisEps = 1e-9

// Validate reports every structural problem with c. A nil result means the
// configuration can be handed to the layout engine.
func (c Config) Validate() error {
	var errs []error
	errs = append(errs, c.validateQuadrants()...)
	errs = append(errs, c.validateRings()...)
	errs = append(errs, errors.ValidatePermutation("order", c.Order, NumQuadrants))
	errs = append(errs, c.Tuning.validate()...)
	return errors.Join(errors.ErrCodeInvalidConfig, "invalid chart configuration", errs...)
}

func (c Config) validateQuadrants() []error {
	if len(c.Quadrants) != NumQuadrants {
		return []error{errors.New(errors.ErrCodeInvalidConfig,
			"chart needs exactly %d quadrants, got %d", NumQuadrants, len(c.Quadrants))}
	}
	var errs []error
	for i, q := range c.Quadrants {
		if err := validateQuadrant(q); err != nil {
			errs = append(errs, fmt.Errorf("quadrant %d: %w", i, err))
		}
	}
	return errs
}

func validateQuadrant(q Quadrant) error {
	for _, f := range []float64{q.AngleMin, q.AngleMax} {
		if err := errors.ValidateFinite("angle", f); err != nil {
			return err
		}
	}
	if math.Abs(q.FactorX) != 1 || math.Abs(q.FactorY) != 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"sign factors must be +1 or -1, got (%v, %v)", q.FactorX, q.FactorY)
	}
	if q.Span() <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"angular span [%v, %v] is empty", q.AngleMin, q.AngleMax)
	}
	if q.Span() > math.Pi/2+axisEps {
		return errors.New(errors.ErrCodeInvalidConfig,
			"angular span %v exceeds a quarter turn", q.Span())
	}
	mid := (q.AngleMin + q.AngleMax) / 2
	if math.Cos(mid)*q.FactorX <= 0 || math.Sin(mid)*q.FactorY <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"angular span [%v, %v] does not face the (%v, %v) quadrant", q.AngleMin, q.AngleMax, q.FactorX, q.FactorY)
	}
	for _, a := range []float64{q.AngleMin, q.AngleMax} {
		if math.Cos(a)*q.FactorX < -axisEps || math.Sin(a)*q.FactorY < -axisEps {
			return errors.New(errors.ErrCodeInvalidConfig,
				"angle %v leaves the (%v, %v) quadrant", a, q.FactorX, q.FactorY)
		}
	}
	return nil
}

func (c Config) validateRings() []error {
	if len(c.Rings) == 0 {
		return []error{errors.New(errors.ErrCodeInvalidConfig, "chart needs at least one ring")}
	}
	var errs []error
	prev := c.Tuning.InnerRadius
	for i, r := range c.Rings {
		if err := errors.ValidatePositive(fmt.Sprintf("ring %d radius", i), r.Radius); err != nil {
			errs = append(errs, err)
			continue
		}
		if r.Radius <= prev {
			errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
				"ring %d radius %v must exceed inner edge %v", i, r.Radius, prev))
		}
		prev = r.Radius
	}
	if c.Tuning.BoxInset >= c.OuterRadius() {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
			"box inset %v must be smaller than the outer radius %v", c.Tuning.BoxInset, c.OuterRadius()))
	}
	return errs
}

func (t Tuning) validate() []error {
	errs := []error{
		errors.ValidateNonNegative("inner_radius", t.InnerRadius),
		errors.ValidateNonNegative("box_inset", t.BoxInset),
		errors.ValidateNonNegative("angular_margin", t.AngularMargin),
		errors.ValidateNonNegative("radial_margin", t.RadialMargin),
		errors.ValidateNonNegative("size_scale", t.SizeScale),
		errors.ValidateNonNegative("default_size", t.DefaultSize),
		errors.ValidateNonNegative("collision_radius", t.CollisionRadius),
		errors.ValidatePositive("threshold", t.Threshold),
	}
	if err := errors.ValidateFinite("strength", t.Strength); err != nil {
		errs = append(errs, err)
	} else if t.Strength <= 0 || t.Strength > 1 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
			"strength must be in (0, 1], got %v", t.Strength))
	}
	if t.MaxTicks < 1 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
			"max_ticks must be at least 1, got %d", t.MaxTicks))
	}
	if t.Workers < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
			"workers must not be negative, got %d", t.Workers))
	}
	return errs
}

// ValidateEntry checks that e references an existing segment. i is the
// entry's input position, used only in the error message.
func (c Config) ValidateEntry(i int, e Entry) error {
	if e.Quadrant < 0 || e.Quadrant >= len(c.Quadrants) {
		return errors.New(errors.ErrCodeInvalidEntry,
			"entry %d (%q): quadrant %d out of range [0,%d)", i, e.Label, e.Quadrant, len(c.Quadrants))
	}
	if e.Ring < 0 || e.Ring >= len(c.Rings) {
		return errors.New(errors.ErrCodeInvalidEntry,
			"entry %d (%q): ring %d out of range [0,%d)", i, e.Label, e.Ring, len(c.Rings))
	}
	if math.IsNaN(e.Size) || math.IsInf(e.Size, 0) || e.Size < 0 {
		return errors.New(errors.ErrCodeInvalidEntry,
			"entry %d (%q): size %v must be a non-negative number", i, e.Label, e.Size)
	}
	return nil
}

// ValidateEntries stops at the first invalid entry. Entries are never
// clamped into range.
func (c Config) ValidateEntries(entries []Entry) error {
	for i, e := range entries {
		if err := c.ValidateEntry(i, e); err != nil {
			return err
		}
	}
	return nil
}
