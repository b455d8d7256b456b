// Package cli implements the appicon command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/appicon/pkg/buildinfo"
	"github.com/matzehuels/appicon/pkg/config"
	"github.com/matzehuels/appicon/pkg/observability"
	"github.com/matzehuels/appicon/pkg/raster"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "appicon"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	global globalOpts
}

// globalOpts holds the persistent flags shared by every command.
type globalOpts struct {
	verbose    bool
	configPath string
	renderer   string
	workers    int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command without a subcommand generates icons.
func (c *CLI) RootCommand() *cobra.Command {
	opts := defaultGenerateOpts()
	root := &cobra.Command{
		Use:   appName + " [flags] [layer.svg ...]",
		Short: "Appicon builds application icons from layered SVGs",
		Long: `Appicon stacks one or more SVG layers into a single icon and packages it
as icon.svg, a multi-size icon.ico, an icon.icns and standalone PNGs.

Layers are read from the given files in order, or from stdin when no files
are given.`,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogWarn
			if c.global.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			observability.SetPipelineHooks(&logHooks{logger: c.Logger})
			observability.SetRasterHooks(&logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args, &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.global.verbose, "verbose", "v", false, "enable verbose logging and list written files")
	flags.StringVar(&c.global.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&c.global.renderer, "renderer", raster.BackendAuto, "rasterizer: auto, native, rsvg, inkscape")
	flags.IntVar(&c.global.workers, "workers", 0, "max concurrent rasterizations (default GOMAXPROCS)")
	addGenerateFlags(root, &opts)

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.compositeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Generator Factory
// =============================================================================

// loadConfig resolves the run configuration: defaults, config file and
// environment, then the persistent flags the user set explicitly.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.global.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("renderer") {
		cfg.Renderer = c.global.renderer
	}
	if flags.Changed("workers") {
		cfg.Workers = c.global.workers
	}
	return cfg, nil
}

// newGenerator creates the raster generator for cfg.
func newGenerator(cfg config.Config, logger *log.Logger) (*raster.Generator, error) {
	r, err := raster.New(cfg.Renderer)
	if err != nil {
		return nil, err
	}
	opts := []raster.Option{raster.WithLogger(logger)}
	if cfg.Workers > 0 {
		opts = append(opts, raster.WithWorkers(cfg.Workers))
	}
	return raster.NewGenerator(r, opts...), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// writeOutput writes data to path, or to w when path is "-" or empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
