package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/appicon/pkg/composite"
	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/io"
	"github.com/matzehuels/appicon/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	size   string // square size in pixels, as typed
	output string // output file, "-" for stdout
}

// renderCommand creates the render command, which rasterizes the composited
// layers at a single size.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render -s SIZE [layer.svg ...]",
		Short: "Render the composited layers to a single PNG",
		Example: `  appicon render -s 1024 background.svg glyph.svg
  appicon render -s 64 -o - < icon.svg > icon.png`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", "", "square size in pixels (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default SIZExSIZE.png, - for stdout)")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	size, err := errors.ParseSize(opts.size)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	layers, err := io.ReadLayers(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	raw, err := composite.Normalize(layers)
	if err != nil {
		return err
	}
	doc, err := composite.Composite(raw...)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	data, err := gen.Rasterize(cmd.Context(), doc, size)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = pipeline.PNGName(size)
	}
	if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
	}
	prog.done("Rendered " + output)
	return nil
}
