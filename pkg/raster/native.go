package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/appicon/pkg/svg"
)

// Native renders with the pure Go oksvg/rasterx stack. It needs no external
// tools and produces identical output for identical input.
//
// oksvg understands a single root viewport, so nested <svg> elements are
// flattened into transformed groups first. Text, filters, masks and CSS
// beyond inline style attributes are not rendered.
type Native struct{}

// Rasterize implements Rasterizer.
func (Native) Rasterize(ctx context.Context, doc []byte, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flat, err := svg.Flatten(doc)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(flat), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("oksvg: %w", err)
	}

	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("oksvg: document has no usable viewBox or size")
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
