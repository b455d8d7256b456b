package raster

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/appicon/pkg/errors"
)

const (
	rsvgBinary     = "rsvg-convert"
	inkscapeBinary = "inkscape"
)

// Command renders by piping the SVG document through an external program
// that writes PNG bytes to stdout.
type Command struct {
	Name    string                           // Backend name for logs
	Binary  string                           // Executable looked up in PATH
	Args    func(width, height int) []string // Arguments for one render
	Install string                           // Hint shown when Binary is missing
}

// RSVG returns a rasterizer backed by librsvg's rsvg-convert.
func RSVG() *Command {
	return &Command{
		Name:   BackendRSVG,
		Binary: rsvgBinary,
		Args: func(w, h int) []string {
			return []string{"-f", "png", "-w", strconv.Itoa(w), "-h", strconv.Itoa(h)}
		},
		Install: "macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin",
	}
}

// Inkscape returns a rasterizer backed by the inkscape command line (1.x).
func Inkscape() *Command {
	return &Command{
		Name:   BackendInkscape,
		Binary: inkscapeBinary,
		Args: func(w, h int) []string {
			return []string{
				"--pipe",
				"--export-type", "png",
				"--export-filename", "-",
				"--export-background-opacity", "0",
				"--export-width", strconv.Itoa(w),
				"--export-height", strconv.Itoa(h),
			}
		},
		Install: "macOS:  brew install --cask inkscape\n  Linux:  apt install inkscape",
	}
}

// Rasterize implements Rasterizer.
func (c *Command) Rasterize(ctx context.Context, svg []byte, width, height int) ([]byte, error) {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererNotFound, err,
			"%s rendering requires %s. Install with:\n  %s", c.Name, c.Binary, c.Install)
	}

	cmd := exec.CommandContext(ctx, path, c.Args(width, height)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %v: %s", c.Binary, err, strings.TrimSpace(errBuf.String()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%s: no output", c.Binary)
	}
	return out.Bytes(), nil
}
