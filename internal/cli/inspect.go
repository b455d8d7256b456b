package cli

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"

	"github.com/h2non/filetype"
	"github.com/spf13/cobra"

	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/icns"
	"github.com/matzehuels/appicon/pkg/ico"
	"github.com/matzehuels/appicon/pkg/svg"
)

// inspectCommand creates the inspect command, which lists the images stored
// in a generated icon file.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the images in an .ico, .icns, .png or .svg file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", args[0])
				}
				return errors.Wrap(errors.ErrCodeIO, err, "read %s", args[0])
			}
			return inspect(cmd.OutOrStdout(), args[0], data)
		},
	}
}

// inspect detects the type of data and prints its entries to w.
func inspect(w io.Writer, name string, data []byte) error {
	switch {
	case icns.IsICNS(data):
		return inspectICNS(w, name, data)
	case filetype.Is(data, "ico"):
		return inspectICO(w, name, data)
	case filetype.Is(data, "png"):
		return inspectPNG(w, name, data)
	}

	if doc, err := svg.Parse(data); err == nil {
		return inspectSVG(w, name, doc)
	}

	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		return errors.New(errors.ErrCodeUnsupported, "%s: unrecognized file type", name)
	}
	return errors.New(errors.ErrCodeUnsupported, "%s: unsupported file type %s", name, kind.MIME.Value)
}

func inspectICNS(w io.Writer, name string, data []byte) error {
	entries, err := icns.Parse(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", name)
	}
	printTitle(w, "%s: ICNS, %d entries", name, len(entries))
	for _, e := range entries {
		size, format := "?", "unknown"
		if t, ok := icns.Lookup(e.OSType); ok {
			size = sizeLabel(t.Size, t.Size)
			format = t.Format.String()
		}
		printRow(w, e.OSType, size, format, strconv.Itoa(len(e.Data))+" bytes")
	}
	return nil
}

func inspectICO(w io.Writer, name string, data []byte) error {
	entries, err := ico.Entries(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", name)
	}
	printTitle(w, "%s: ICO, %d entries", name, len(entries))
	for i, e := range entries {
		printRow(w, "#"+strconv.Itoa(i), sizeLabel(e.Width, e.Height))
	}
	return nil
}

func inspectPNG(w io.Writer, name string, data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", name)
	}
	printTitle(w, "%s: PNG", name)
	printKeyValue(w, "size", sizeLabel(cfg.Width, cfg.Height))
	printKeyValue(w, "bytes", strconv.Itoa(len(data)))
	return nil
}

func inspectSVG(w io.Writer, name string, doc *svg.Document) error {
	printTitle(w, "%s: SVG", name)
	if vb, ok := doc.ViewBox(); ok {
		printKeyValue(w, "viewBox", vb.String())
	}
	for _, attr := range []string{"width", "height", "version"} {
		if v, ok := doc.Attr(attr); ok {
			printKeyValue(w, attr, v)
		}
	}
	printKeyValue(w, "body", strconv.Itoa(len(doc.Body()))+" bytes")
	return nil
}

func sizeLabel(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
