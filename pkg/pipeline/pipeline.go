// Package pipeline runs the layout → render pipeline for stackradar.
//
// The CLI (and anything else embedding the engine) goes through a [Runner]
// so that option defaults, run ids, logging and observability hooks behave
// the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, cfg, entries, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.ComputeLayout(ctx, cfg, entries, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackradar/pkg/errors"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options adjusts one pipeline run. Zero values keep what the chart
// configuration says.
type Options struct {
	// Layout overrides
	Seed     *int64 `json:"seed,omitempty"`
	Workers  int    `json:"workers,omitempty"`
	MaxTicks int    `json:"max_ticks,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	PrintLayout *bool    `json:"print_layout,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Sampled     bool     `json:"sampled,omitempty"` // include pre-relaxation positions in JSON

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs, hooks and the JSON artifact.
	RunID string

	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entries          int
	Ticks            int
	Converged        bool
	ResidualOverlaps int
	LayoutTime       time.Duration
	RenderTime       time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative, got %d", o.Workers)
	}
	if o.MaxTicks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max ticks must not be negative, got %d", o.MaxTicks)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %g", o.Scale)
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Apply returns a copy of cfg with the option overrides applied.
func (o Options) Apply(cfg chart.Config) chart.Config {
	cfg = cfg.Clone()
	if o.Seed != nil {
		cfg.Tuning.Seed = *o.Seed
	}
	if o.Workers > 0 {
		cfg.Tuning.Workers = o.Workers
	}
	if o.MaxTicks > 0 {
		cfg.Tuning.MaxTicks = o.MaxTicks
	}
	if o.PrintLayout != nil {
		cfg.Render.PrintLayout = *o.PrintLayout
	}
	return cfg
}
