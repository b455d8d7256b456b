// Package ico packages rasters into a multi-resolution Windows ICO file.
//
// The set of sizes is fixed: 16, 24, 32, 48, 64, 128 and 256 pixels, stored
// in that order. Entry encoding follows go-ico: the 256 pixel entry is stored
// as PNG, smaller entries as 32-bit bitmaps with an AND mask, which is what
// older Windows shells expect.
package ico

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	goico "github.com/sergeymakinen/go-ico"
)

// Sizes are the entry sizes of every generated ICO, in file order.
var Sizes = []int{16, 24, 32, 48, 64, 128, 256}

// MaxSize is the largest entry size the format can describe.
const MaxSize = 256

// Renderer rasterizes one SVG document at several square sizes, returning
// PNG data in the order of sizes.
type Renderer interface {
	RasterizeAll(ctx context.Context, svg []byte, sizes []int) ([][]byte, error)
}

// Pack rasterizes svg at every size in Sizes and encodes the results as one
// ICO file. Any failure aborts the whole file.
func Pack(ctx context.Context, r Renderer, svg []byte) ([]byte, error) {
	rasters, err := r.RasterizeAll(ctx, svg, Sizes)
	if err != nil {
		return nil, err
	}
	return Encode(rasters)
}

// Encode builds an ICO file from PNG rasters, one entry per raster in order.
func Encode(pngs [][]byte) ([]byte, error) {
	if len(pngs) == 0 {
		return nil, fmt.Errorf("ico: no images")
	}
	images := make([]image.Image, len(pngs))
	for i, data := range pngs {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("ico: entry %d: %w", i, err)
		}
		if b := img.Bounds(); b.Dx() > MaxSize || b.Dy() > MaxSize {
			return nil, fmt.Errorf("ico: entry %d is %dx%d, max %d", i, b.Dx(), b.Dy(), MaxSize)
		}
		images[i] = img
	}

	var buf bytes.Buffer
	if err := goico.EncodeAll(&buf, images); err != nil {
		return nil, fmt.Errorf("ico: %w", err)
	}
	return buf.Bytes(), nil
}

// Entry describes one image stored in an ICO file.
type Entry struct {
	Width, Height int
}

// Entries decodes an ICO file and reports its images in file order.
func Entries(data []byte) ([]Entry, error) {
	images, err := goico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ico: %w", err)
	}
	out := make([]Entry, len(images))
	for i, img := range images {
		b := img.Bounds()
		out[i] = Entry{Width: b.Dx(), Height: b.Dy()}
	}
	return out, nil
}
