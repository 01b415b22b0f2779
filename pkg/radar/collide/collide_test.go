package collide

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jbeda/geom"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/geometry"
	"github.com/matzehuels/stackradar/pkg/radar/prng"
	"github.com/matzehuels/stackradar/pkg/radar/segment"
)

const margin = 27

func defaultResolver() Resolver {
	return FromTuning(chart.DefaultTuning())
}

// placed returns n bodies sampled into quadrant q, ring r of the stock chart.
func placed(n, q, r int) []Body {
	cfg := chart.Default()
	grid := segment.Build(cfg)
	src := prng.New(prng.DefaultSeed)
	bodies := make([]Body, n)
	for i := range bodies {
		seg := grid.At(q, r)
		bodies[i] = Body{
			Pos:     segment.Place(*seg, src, margin),
			Radius:  cfg.Tuning.CollisionRadius,
			Margin:  margin,
			Segment: seg,
			State:   Sampled,
		}
	}
	return bodies
}

func assertContained(t *testing.T, bodies []Body) {
	t.Helper()
	for i, b := range bodies {
		s := b.Segment
		p := geometry.ToPolar(b.Pos)
		lo, hi := s.RadialBand(b.Margin)
		if p.Radius < lo-1e-6 || p.Radius > hi+1e-6 {
			t.Errorf("body %d radius %v outside [%v,%v]", i, p.Radius, lo, hi)
		}
		if p.Angle < s.AngleMin-1e-9 || p.Angle > s.AngleMax+1e-9 {
			t.Errorf("body %d angle %v outside [%v,%v]", i, p.Angle, s.AngleMin, s.AngleMax)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	res, err := defaultResolver().Resolve(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks != 0 || !res.Converged {
		t.Errorf("Resolve(nil) = %+v, want zero ticks and converged", res)
	}
}

func TestResolveSingleBodyDoesNotMove(t *testing.T) {
	bodies := placed(1, 0, 0)
	start := bodies[0].Pos

	res, err := defaultResolver().Resolve(context.Background(), bodies)
	if err != nil {
		t.Fatal(err)
	}
	if bodies[0].Pos != start {
		t.Errorf("position moved from %v to %v", start, bodies[0].Pos)
	}
	if res.MaxDisplacement != 0 || !res.Converged || res.Ticks != 1 {
		t.Errorf("result = %+v, want one still tick", res)
	}
	if bodies[0].State != Settled {
		t.Errorf("state = %v, want settled", bodies[0].State)
	}
}

func TestResolveSeparatesPair(t *testing.T) {
	grid := segment.Build(chart.Default())
	seg := grid.At(0, 2)
	at := func(angle float64) geom.Coord {
		return geometry.ToCartesian(geometry.Polar{Angle: angle, Radius: 350})
	}
	bodies := []Body{
		{Pos: at(0.70), Radius: 31, Margin: margin, Segment: seg},
		{Pos: at(0.75), Radius: 31, Margin: margin, Segment: seg},
	}

	r := defaultResolver()
	res, err := r.Resolve(context.Background(), bodies)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("pair did not converge: %+v", res)
	}
	if res.ResidualOverlaps != 0 {
		t.Errorf("residual overlaps = %d, want 0", res.ResidualOverlaps)
	}
	if d := bodies[0].Pos.DistanceFrom(bodies[1].Pos); d < 62-2*r.Threshold/r.Strength {
		t.Errorf("distance = %v, want about 62", d)
	}
	assertContained(t, bodies)
}

func TestResolveNearFixedPoint(t *testing.T) {
	grid := segment.Build(chart.Default())
	seg := grid.At(0, 2)
	at := func(angle float64) geom.Coord {
		return geometry.ToCartesian(geometry.Polar{Angle: angle, Radius: 350})
	}
	bodies := []Body{
		{Pos: at(0.30), Radius: 31, Margin: margin, Segment: seg},
		{Pos: at(0.35), Radius: 31, Margin: margin, Segment: seg},
		{Pos: at(1.20), Radius: 31, Margin: margin, Segment: seg},
	}

	r := defaultResolver()
	res, err := r.Resolve(context.Background(), bodies)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("did not converge within %d ticks: %+v", r.MaxTicks, res)
	}
	d, err := r.Tick(context.Background(), bodies)
	if err != nil {
		t.Fatal(err)
	}
	if d > r.Threshold {
		t.Errorf("extra tick moved a body by %v, want <= %v", d, r.Threshold)
	}
}

func TestResolveDensePacking(t *testing.T) {
	bodies := placed(30, 0, 0)
	r := defaultResolver()
	res, err := r.Resolve(context.Background(), bodies)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks > r.MaxTicks {
		t.Errorf("ticks = %d, cap is %d", res.Ticks, r.MaxTicks)
	}
	if res.ResidualOverlaps == 0 {
		t.Error("30 discs of radius 31 cannot fit in ring 0 without overlap")
	}
	assertContained(t, bodies)
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := placed(40, 2, 1)
	par := placed(40, 2, 1)

	r := defaultResolver()
	r.MaxTicks = 25
	if _, err := r.Resolve(context.Background(), seq); err != nil {
		t.Fatal(err)
	}
	r.Workers = 4
	if _, err := r.Resolve(context.Background(), par); err != nil {
		t.Fatal(err)
	}
	for i := range seq {
		if seq[i].Pos != par[i].Pos {
			t.Fatalf("body %d: sequential %v, parallel %v", i, seq[i].Pos, par[i].Pos)
		}
	}
}

func TestCoincidentBodiesSeparate(t *testing.T) {
	p := geom.Coord{X: 100, Y: 100}
	bodies := []Body{
		{Pos: p, Radius: 10},
		{Pos: p, Radius: 10},
	}
	r := Resolver{Strength: 1, Threshold: 0.01, MaxTicks: 10}
	if _, err := r.Tick(context.Background(), bodies); err != nil {
		t.Fatal(err)
	}
	if d := bodies[0].Pos.DistanceFrom(bodies[1].Pos); math.Abs(d-20) > 1e-9 {
		t.Errorf("distance after one full-strength tick = %v, want 20", d)
	}
}

func TestResolveHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bodies := placed(5, 0, 0)
	_, err := defaultResolver().Resolve(ctx, bodies)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Unplaced: "unplaced",
		Sampled:  "sampled",
		Relaxing: "relaxing",
		Settled:  "settled",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
