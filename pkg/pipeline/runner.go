package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackradar/pkg/observability"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

type runIDKey struct{}

// WithRunID attaches a run id to ctx. Execute creates one when ctx has none.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run id carried by ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Runner executes pipeline runs. It holds no per-run state, so one Runner
// can serve concurrent runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute lays out entries on cfg and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, cfg chart.Config, entries []chart.Entry, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = WithRunID(ctx, runID)
	}
	result := &Result{RunID: runID}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, err := r.ComputeLayout(ctx, cfg, entries, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.Entries = l.Stats.Entries
	result.Stats.Ticks = l.Stats.Ticks
	result.Stats.Converged = l.Stats.Converged
	result.Stats.ResidualOverlaps = l.Stats.ResidualOverlaps
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"entries", l.Stats.Entries,
		"ticks", l.Stats.Ticks,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout runs the layout engine with the option overrides applied.
func (r *Runner) ComputeLayout(ctx context.Context, cfg chart.Config, entries []chart.Entry, opts Options) (layout.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, err
	}
	runID := RunID(ctx)
	hooks := observability.Layout()

	hooks.OnLayoutStart(ctx, runID, len(entries))
	start := time.Now()
	l, err := layout.Build(ctx, opts.Apply(cfg), entries, layout.WithLogger(opts.Logger))
	if err == nil {
		hooks.OnSettle(ctx, runID, l.Stats.Ticks, l.Stats.Converged, l.Stats.ResidualOverlaps)
	}
	hooks.OnLayoutComplete(ctx, runID, time.Since(start), err)
	return l, err
}

// Render produces the requested artifacts from a settled layout.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	runID := RunID(ctx)
	hooks := observability.Render()

	hooks.OnRenderStart(ctx, runID, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, l, runID, opts)
	hooks.OnRenderComplete(ctx, runID, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
