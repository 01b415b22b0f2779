package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackradar/internal/watch"
	"github.com/matzehuels/stackradar/pkg/errors"
	"github.com/matzehuels/stackradar/pkg/pipeline"
)

// renderOpts holds the render command's flags.
type renderOpts struct {
	engineFlags
	output   string
	formats  string
	noLegend bool
	scale    float64
	watch    bool
}

// renderCommand creates the render command for drawing the chart.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [entries.json]",
		Short: "Render the radar as SVG, PNG, PDF or JSON",
		Long: `Render the radar as SVG, PNG, PDF or JSON.

The render command lays out the entries and writes one file per requested
format next to the input (or into the configured output directory). PNG and
PDF are converted from the SVG with rsvg-convert.

With --watch the entries file and the chart definition are watched and the
chart is rendered again after every save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, &ro)
			if err != nil {
				return err
			}
			if ro.watch {
				return c.watchRender(cmd.Context(), args[0], ro.output, opts)
			}
			return c.runRender(cmd.Context(), args[0], ro.output, opts)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: <input> without extension)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg, json, pdf, png (comma-separated, default: from config)")
	cmd.Flags().BoolVar(&ro.noLegend, "no-legend", false, "draw the chart without legend, title and footer")
	cmd.Flags().Float64Var(&ro.scale, "scale", 0, "PNG scale factor (default: from config)")
	cmd.Flags().BoolVar(&ro.sampled, "sampled", false, "include the positions before relaxation in JSON output")
	cmd.Flags().BoolVarP(&ro.watch, "watch", "w", false, "re-render whenever the inputs change")
	ro.register(cmd)

	return cmd
}

func (c *CLI) renderOptions(cmd *cobra.Command, ro *renderOpts) (pipeline.Options, error) {
	opts := c.options(cmd, &ro.engineFlags)
	opts.Formats = c.settings.Formats
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(ro.formats)
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = ro.scale
	}
	if ro.noLegend {
		printLayout := false
		opts.PrintLayout = &printLayout
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// runRender lays out the entries once and writes every requested format.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, entries, err := c.loadInputs(input)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d entries...", len(entries)))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, cfg, entries, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input, c.settings.Output)
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
		}
	}

	title := cfg.Title
	if title == "" {
		title = filepath.Base(base)
	}
	c.out.success("Rendered %s", title)
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write output %s", path)
		}
		c.out.file(path)
	}
	c.out.stats(result.Layout.Stats)
	prog.done("render finished", "run", result.RunID, "formats", len(opts.Formats))

	return nil
}

// watchRender renders once, then again after each change to the inputs,
// until ctx is cancelled. A failed render is reported and watching goes on.
func (c *CLI) watchRender(ctx context.Context, input, output string, opts pipeline.Options) error {
	files := []string{input}
	if c.settings.Chart != "" {
		files = append(files, c.settings.Chart)
	}

	w, err := watch.New(c.settings.Watch.Debounce, files...)
	if err != nil {
		return fmt.Errorf("watch inputs: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch inputs: %w", err)
	}
	defer w.Stop()

	c.renderReported(ctx, input, output, opts)
	c.out.info("Watching %d file(s), press Ctrl+C to stop", len(files))

	for {
		select {
		case <-ctx.Done():
			c.out.newline()
			return nil
		case path, ok := <-w.Changes:
			if !ok {
				return nil
			}
			c.out.detail("%s changed", filepath.Base(path))
			c.renderReported(ctx, input, output, opts)
		}
	}
}

func (c *CLI) renderReported(ctx context.Context, input, output string, opts pipeline.Options) {
	if err := c.runRender(ctx, input, output, opts); err != nil && ctx.Err() == nil {
		c.out.errorf("%s", errors.UserMessage(err))
	}
}
