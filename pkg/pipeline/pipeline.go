// Package pipeline provides the icon generation pipeline for appicon.
//
// This package implements the complete composite → rasterize → package
// pipeline used by the CLI. By centralizing this logic, every entry point
// produces the same artifacts in the same order.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Composite: Stack the input layers into one master SVG document
//  2. Rasterize: Render the master document at every size a format needs
//  3. Package: Emit the SVG, an ICO, an ICNS and standalone PNGs
//
// The master document is built once per run. Artifacts are produced lazily,
// one at a time, in the fixed order SVG, ICO, ICNS, then PNGs in the order
// their sizes were requested.
//
// # Usage
//
// Create a Runner and range over the artifacts:
//
//	runner := pipeline.NewRunner(raster.NewGenerator(raster.Native{}), logger)
//	sel := pipeline.DefaultSelection()
//	for artifact, err := range runner.Generate(ctx, layers, sel) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(artifact.Name, len(artifact.Data))
//	}
//
// Stopping the loop early skips all remaining work.
package pipeline

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/appicon/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultPNGSizes are the standalone PNG sizes produced when none are given.
var DefaultPNGSizes = []int{32, 256, 512}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatICO  = "ico"
	FormatICNS = "icns"
	FormatPNG  = "png"
)

// AllFormats lists every format in emission order.
var AllFormats = []string{FormatSVG, FormatICO, FormatICNS, FormatPNG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatICO:  true,
	FormatICNS: true,
	FormatPNG:  true,
}

// Artifact file names.
const (
	NameSVG  = "icon.svg"
	NameICO  = "icon.ico"
	NameICNS = "icon.icns"
)

// PNGName returns the file name of a standalone PNG, e.g. "32x32.png".
func PNGName(size int) string {
	return strconv.Itoa(size) + "x" + strconv.Itoa(size) + ".png"
}

// =============================================================================
// Artifact
// =============================================================================

// Artifact is one generated output file.
type Artifact struct {
	Name string `json:"name"`           // File name, e.g. "icon.ico" or "32x32.png"
	Ext  string `json:"ext"`            // Format, one of the Format constants
	Data []byte `json:"-"`              // File contents
	Size int    `json:"size,omitempty"` // Pixel size, PNG artifacts only
}

// =============================================================================
// Selection
// =============================================================================

// Selection chooses which artifacts a run produces.
// The zero value selects nothing; see DefaultSelection.
type Selection struct {
	SVG  bool `json:"svg"`
	ICO  bool `json:"ico"`
	ICNS bool `json:"icns"`
	PNG  bool `json:"png"`

	// PNGSizes are emitted in this order, duplicates included.
	// Empty means DefaultPNGSizes.
	PNGSizes []int `json:"png_sizes,omitempty"`
}

// DefaultSelection selects every format with the default PNG sizes.
func DefaultSelection() Selection {
	return Selection{SVG: true, ICO: true, ICNS: true, PNG: true, PNGSizes: slices.Clone(DefaultPNGSizes)}
}

// ParseSelection builds a Selection from format names and PNG size tokens.
// Names and tokens may be comma-separated. No names selects every format;
// no size tokens selects DefaultPNGSizes.
func ParseSelection(formats, sizeTokens []string) (Selection, error) {
	var sel Selection
	names := splitList(formats)
	if len(names) == 0 {
		names = AllFormats
	}
	for _, name := range names {
		switch name {
		case FormatSVG:
			sel.SVG = true
		case FormatICO:
			sel.ICO = true
		case FormatICNS:
			sel.ICNS = true
		case FormatPNG:
			sel.PNG = true
		default:
			return Selection{}, ValidateFormat(name)
		}
	}

	sizes, err := errors.ParseSizes(sizeTokens)
	if err != nil {
		return Selection{}, err
	}
	sel.PNGSizes = sizes
	return sel, nil
}

// Validate checks the requested PNG sizes when PNG output is selected.
func (s Selection) Validate() error {
	if !s.PNG {
		return nil
	}
	return errors.ValidateSizes(s.Sizes())
}

// Sizes returns the effective PNG sizes.
func (s Selection) Sizes() []int {
	if len(s.PNGSizes) == 0 {
		return slices.Clone(DefaultPNGSizes)
	}
	return s.PNGSizes
}

// Formats returns the selected format names in emission order.
func (s Selection) Formats() []string {
	var out []string
	for _, f := range AllFormats {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether a format is selected.
func (s Selection) Has(format string) bool {
	switch format {
	case FormatSVG:
		return s.SVG
	case FormatICO:
		return s.ICO
	case FormatICNS:
		return s.ICNS
	case FormatPNG:
		return s.PNG
	}
	return false
}

// Names returns the artifact names a run with this selection yields, in order.
func (s Selection) Names() []string {
	var names []string
	if s.SVG {
		names = append(names, NameSVG)
	}
	if s.ICO {
		names = append(names, NameICO)
	}
	if s.ICNS {
		names = append(names, NameICNS)
	}
	if s.PNG {
		for _, size := range s.Sizes() {
			names = append(names, PNGName(size))
		}
	}
	return names
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format name is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range splitList(formats) {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// splitList flattens comma-separated entries, dropping blanks.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (a Artifact) String() string {
	return fmt.Sprintf("%s (%d bytes)", a.Name, len(a.Data))
}
