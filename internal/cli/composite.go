package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/appicon/pkg/composite"
	"github.com/matzehuels/appicon/pkg/io"
)

// compositeCommand creates the composite command, which prints the master
// SVG document without rasterizing anything.
func (c *CLI) compositeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "composite [layer.svg ...]",
		Short: "Stack SVG layers into one SVG document",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			loggerFromContext(cmd.Context()).Debug("composited layers", "layers", len(raw), "bytes", len(doc))
			return writeOutput(cmd.OutOrStdout(), output, doc)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
