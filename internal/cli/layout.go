package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackradar/pkg/errors"
	"github.com/matzehuels/stackradar/pkg/io"
	"github.com/matzehuels/stackradar/pkg/pipeline"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

// engineFlags are the layout overrides shared by layout, render and inspect.
type engineFlags struct {
	seed     int64
	workers  int
	maxTicks int
	sampled  bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default: from the chart)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel workers for collision resolution (default: from config)")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "relaxation tick cap (default: from the chart)")
}

// options turns the flags and the loaded settings into pipeline options.
// Flags that were not given leave the configured value alone.
func (c *CLI) options(cmd *cobra.Command, f *engineFlags) pipeline.Options {
	opts := pipeline.Options{
		Workers:  c.settings.Workers,
		MaxTicks: f.maxTicks,
		Scale:    c.settings.Scale,
		Sampled:  f.sampled,
		Logger:   c.Logger,
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	return opts
}

// loadInputs reads the chart definition and the entries file.
func (c *CLI) loadInputs(input string) (chart.Config, []chart.Entry, error) {
	cfg, err := c.loadChart()
	if err != nil {
		return chart.Config{}, nil, fmt.Errorf("load chart: %w", err)
	}
	entries, err := io.ImportEntries(input)
	if err != nil {
		return chart.Config{}, nil, fmt.Errorf("load entries %s: %w", input, err)
	}
	return cfg, entries, nil
}

// layoutCommand creates the layout command for computing entry positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  engineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [entries.json]",
		Short: "Compute entry positions on the radar",
		Long: `Compute entry positions on the radar.

The layout command reads an entries file, samples every entry into its
quadrant and ring, assigns legend ids, and relaxes overlaps. The result is
written as <input>.layout.json (the same document as 'render -f json').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, c.options(cmd, &flags))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&flags.sampled, "sampled", false, "include the positions before relaxation")
	flags.register(cmd)

	return cmd
}

// runLayout loads the inputs, settles the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options) error {
	cfg, entries, err := c.loadInputs(input)
	if err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinner(ctx, fmt.Sprintf("Placing %d entries...", len(entries)))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, cfg, entries, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input, c.settings.Output) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write output %s", outputPath)
	}

	c.out.success("Layout complete")
	c.out.file(outputPath)
	c.out.stats(result.Layout.Stats)
	if !result.Stats.Converged {
		c.out.warning("stopped at the tick cap; raise --max-ticks if entries still overlap")
	}
	c.out.newline()
	c.out.nextStep("Render", appName+" render "+input)

	return nil
}
