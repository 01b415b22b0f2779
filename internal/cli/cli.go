package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/stackradar/internal/config"
	"github.com/matzehuels/stackradar/pkg/buildinfo"
	"github.com/matzehuels/stackradar/pkg/observability"
	"github.com/matzehuels/stackradar/pkg/pipeline"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for files and display.
const appName = "stackradar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfgFile  string
	settings config.Config
	out      console
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: console{w: os.Stdout}}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stackradar lays out technology radar charts",
		Long: `Stackradar places the entries of a technology radar into their quadrant
and ring, spreads overlapping entries apart, and renders the chart with a
numbered legend as SVG, PNG, PDF or JSON.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default: .stackradar.yaml in . or $HOME)")
	flags.String("chart", "", "chart definition TOML (default: the stock four-quadrant chart)")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	_ = viper.BindPFlag("chart", flags.Lookup("chart"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the settings and wires logging before any subcommand runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Init(c.cfgFile); err != nil {
		return err
	}
	settings, err := config.Load()
	if err != nil {
		return err
	}
	c.settings = settings
	c.out = console{w: cmd.OutOrStdout()}

	if settings.Verbose {
		c.SetLogLevel(LogDebug)
	}
	if used := config.Used(); used != "" {
		c.Logger.Debug("loaded config", "file", used)
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetLayoutHooks(hooks)
	observability.SetRenderHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadChart returns the chart named by the chart setting, or the stock chart.
func (c *CLI) loadChart() (chart.Config, error) {
	if c.settings.Chart == "" {
		return chart.Default(), nil
	}
	return chart.LoadFile(c.settings.Chart)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the output path without extension. An explicit output
// wins, minus any format extension. Otherwise the input name is kept and
// placed in dir, or next to the input when dir is empty.
func basePath(output, input, dir string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir != "" {
		return filepath.Join(dir, filepath.Base(base))
	}
	return base
}
