package icns

import (
	"context"
	"fmt"
)

// Renderer rasterizes one SVG document at several square sizes, returning
// PNG data in the order of sizes.
type Renderer interface {
	RasterizeAll(ctx context.Context, svg []byte, sizes []int) ([][]byte, error)
}

// Pack rasterizes svg once per PNG-format icon type, in table order, and
// assembles the results into an ICNS container. Types sharing a pixel size
// are rendered separately. Any failure aborts the whole container.
func Pack(ctx context.Context, r Renderer, svg []byte) ([]byte, error) {
	types := PNGTypes()
	sizes := make([]int, len(types))
	for i, t := range types {
		sizes[i] = t.Size
	}

	rasters, err := r.RasterizeAll(ctx, svg, sizes)
	if err != nil {
		return nil, err
	}
	if len(rasters) != len(types) {
		return nil, fmt.Errorf("icns: got %d rasters for %d icon types", len(rasters), len(types))
	}

	var c Container
	for i, t := range types {
		if err := c.Append(t.OSType, rasters[i]); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}
