package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackradar/pkg/pipeline"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

// inspectCommand creates the inspect command for browsing placements.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags engineFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [entries.json]",
		Short: "Browse the settled placements in the terminal",
		Long: `Browse the settled placements in the terminal.

The inspect command lays out the entries and lists every placement with its
legend id, segment and final position. Tab steps through the quadrants in
legend order. With --plain the table is printed once, for pipes and scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.computeLayout(cmd.Context(), args[0], c.options(cmd, &flags))
			if err != nil {
				return err
			}
			if plain {
				return printPlacements(cmd.OutOrStdout(), l)
			}
			p := tea.NewProgram(NewInspectModel(l), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table once instead of browsing it")
	flags.register(cmd)

	return cmd
}

// computeLayout settles the layout without rendering anything.
func (c *CLI) computeLayout(ctx context.Context, input string, opts pipeline.Options) (layout.Layout, error) {
	cfg, entries, err := c.loadInputs(input)
	if err != nil {
		return layout.Layout{}, err
	}
	ctx = pipeline.WithRunID(ctx, uuid.NewString())
	l, err := c.newRunner().ComputeLayout(ctx, cfg, entries, opts)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return l, nil
}

func printPlacements(w io.Writer, l layout.Layout) error {
	t := placementTable(l.Config, l.ByID(), nil)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d entries, %d ticks, %d overlaps\n",
		l.Stats.Entries, l.Stats.Ticks, l.Stats.ResidualOverlaps)
	return err
}
