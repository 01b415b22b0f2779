package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackradar/pkg/errors"
	"github.com/matzehuels/stackradar/pkg/io"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

const defaultChartFile = "radar.toml"

// sampleEntries seeds a new radar so that render has something to draw.
var sampleEntries = []chart.Entry{
	{Quadrant: 0, Ring: 0, Label: "Continuous delivery", Active: true},
	{Quadrant: 0, Ring: 1, Label: "Trunk-based development", Active: true, Status: chart.StatusNew},
	{Quadrant: 1, Ring: 0, Label: "Kubernetes", Active: true},
	{Quadrant: 1, Ring: 2, Label: "Service mesh", Active: true, Status: chart.StatusMoved},
	{Quadrant: 2, Ring: 0, Label: "Go", Link: "https://go.dev", Active: true},
	{Quadrant: 2, Ring: 1, Label: "Rust", Active: true},
	{Quadrant: 3, Ring: 0, Label: "PostgreSQL", Active: true},
	{Quadrant: 3, Ring: 2, Label: "GraphQL federation", Status: chart.StatusNew},
}

// initCommand creates the init command for writing starter files.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force   bool
		entries string
	)

	cmd := &cobra.Command{
		Use:   "init [radar.toml]",
		Short: "Write a starter chart definition",
		Long: `Write a starter chart definition.

The file holds the stock four-quadrant, three-ring chart with every tuning
constant spelled out, ready to be edited and passed to --chart. With
--entries a small sample entries file is written as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultChartFile
			if len(args) == 1 {
				path = args[0]
			}
			return c.runInit(path, entries, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().StringVar(&entries, "entries", "", "also write sample entries to this file")

	return cmd
}

func (c *CLI) runInit(path, entriesPath string, force bool) error {
	for _, p := range []string{path, entriesPath} {
		if p == "" || force {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", p)
		}
	}

	cfg := chart.Default()
	var buf bytes.Buffer
	if err := chart.Encode(&buf, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if entriesPath != "" {
		if err := io.ExportEntries(sampleEntries, entriesPath); err != nil {
			return err
		}
	}

	c.out.success("Created chart definition")
	c.out.file(path)
	if entriesPath != "" {
		c.out.file(entriesPath)
	}
	c.out.newline()
	c.out.keyValue("Quadrants", quadrantNames(cfg))
	c.out.keyValue("Rings", ringNames(cfg))
	c.out.keyValue("Seed", fmt.Sprint(cfg.Tuning.Seed))
	c.out.newline()
	if entriesPath != "" {
		c.out.nextStep("Render", fmt.Sprintf("%s render --chart %s %s", appName, path, entriesPath))
	}
	return nil
}

func quadrantNames(cfg chart.Config) string {
	names := make([]string, len(cfg.Quadrants))
	for i, q := range cfg.Quadrants {
		names[i] = q.Name
	}
	return strings.Join(names, ", ")
}

func ringNames(cfg chart.Config) string {
	names := make([]string, len(cfg.Rings))
	for i, r := range cfg.Rings {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}
