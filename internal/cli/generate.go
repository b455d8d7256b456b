package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/appicon/pkg/config"
	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/io"
	"github.com/matzehuels/appicon/pkg/pipeline"
)

// generateOpts holds the command-line flags for icon generation.
type generateOpts struct {
	destination string   // output directory
	include     []string // formats to produce: svg, ico, icns, png
	pngSizes    []string // raw size tokens, validated after flag parsing
}

func defaultGenerateOpts() generateOpts {
	return generateOpts{destination: config.DefaultDestination}
}

// addGenerateFlags registers the generation flags on cmd.
func addGenerateFlags(cmd *cobra.Command, opts *generateOpts) {
	cmd.Flags().StringVarP(&opts.destination, "destination", "d", opts.destination, "output directory")
	cmd.Flags().StringSliceVarP(&opts.include, "include", "i", nil, "formats to generate: svg, ico, icns, png (default all)")
	cmd.Flags().StringArrayVarP(&opts.pngSizes, "png-sizes", "s", nil, "standalone PNG sizes, repeatable or comma-separated (default 32,256,512)")
}

// generateCommand creates the generate command. It is the same as running
// the root command without a subcommand.
func (c *CLI) generateCommand() *cobra.Command {
	opts := defaultGenerateOpts()
	cmd := &cobra.Command{
		Use:   "generate [layer.svg ...]",
		Short: "Generate icon.svg, icon.ico, icon.icns and PNGs from SVG layers",
		Long: `Generate composites the SVG layers (bottom layer first) into icon.svg and
rasterizes it into icon.ico, icon.icns and standalone PNGs.

With no layer files, a single layer is read from stdin. Use "-" to read stdin
in between files.`,
		Example: `  appicon generate background.svg glyph.svg
  appicon -d build/icons -i ico,png -s 64 -s 1024 < icon.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args, &opts)
		},
	}
	addGenerateFlags(cmd, &opts)
	return cmd
}

// resolveGenerate merges the generation flags the user set into the loaded
// configuration and returns the validated config and selection.
func (c *CLI) resolveGenerate(cmd *cobra.Command, opts *generateOpts) (config.Config, pipeline.Selection, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return config.Config{}, pipeline.Selection{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("destination") {
		cfg.Destination = opts.destination
	}
	if flags.Changed("include") {
		cfg.Include = opts.include
	}
	if flags.Changed("png-sizes") {
		sizes, err := errors.ParseSizes(opts.pngSizes)
		if err != nil {
			return config.Config{}, pipeline.Selection{}, err
		}
		cfg.PNGSizes = sizes
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, pipeline.Selection{}, err
	}
	sel, err := cfg.Selection()
	if err != nil {
		return config.Config{}, pipeline.Selection{}, err
	}
	return cfg, sel, nil
}

// runGenerate executes the generation pipeline and writes every artifact.
func (c *CLI) runGenerate(cmd *cobra.Command, args []string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, sel, err := c.resolveGenerate(cmd, opts)
	if err != nil {
		return err
	}

	layers, err := io.ReadLayers(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("starting generation",
		"layers", len(layers),
		"formats", sel.Formats(),
		"renderer", gen.Backend(),
		"workers", gen.Workers(),
		"destination", cfg.Destination)

	runner := pipeline.NewRunner(gen, logger)
	prog := newProgress(logger)

	var spinner *Spinner
	if c.global.verbose {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Generating icons...")
		spinner.Start()
	}

	var written []string
	err = io.WriteAll(cfg.Destination, runner.Generate(ctx, layers, sel), func(a pipeline.Artifact, path string) {
		written = append(written, path)
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Generated %d files", len(written)))
	if c.global.verbose {
		out := cmd.OutOrStdout()
		printSuccess(out, "Generated %d files in %s", len(written), cfg.Destination)
		for _, path := range written {
			printFile(out, path)
		}
	}
	return nil
}
