package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/observability"
)

// Generator rasterizes SVG documents through a Rasterizer adapter.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	r       Rasterizer
	backend string
	workers int
	logger  *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers bounds the number of concurrent adapter calls in RasterizeAll.
// Values below one are ignored.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLogger sets the logger for per-size debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator wraps r. A nil r selects the native renderer.
func NewGenerator(r Rasterizer, opts ...Option) *Generator {
	if r == nil {
		r = Native{}
	}
	g := &Generator{
		r:       r,
		backend: backendName(r),
		workers: runtime.GOMAXPROCS(0),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Workers returns the concurrency bound used by RasterizeAll.
func (g *Generator) Workers() int { return g.workers }

// Backend returns the adapter's name.
func (g *Generator) Backend() string { return g.backend }

// Rasterize renders doc to a size x size PNG.
//
// A non-positive size fails with *errors.InvalidSizeError without calling
// the adapter. Adapter failures, and adapter output that is not a PNG of the
// requested dimensions, fail with *errors.RenderError.
func (g *Generator) Rasterize(ctx context.Context, doc []byte, size int) ([]byte, error) {
	if err := errors.ValidateSize(size); err != nil {
		return nil, err
	}
	return g.render(ctx, doc, size)
}

func (g *Generator) render(ctx context.Context, doc []byte, size int) ([]byte, error) {
	start := time.Now()
	out, err := g.r.Rasterize(ctx, doc, size, size)
	if err == nil {
		err = checkPNG(out, size)
	}
	elapsed := time.Since(start)
	observability.Raster().OnRasterize(ctx, g.backend, size, elapsed, err)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && err == ctxErr {
			return nil, err
		}
		return nil, &errors.RenderError{Size: size, Cause: err}
	}
	g.logger.Debug("rasterized", "size", size, "bytes", len(out), "backend", g.backend, "elapsed", elapsed)
	return out, nil
}

// RasterizeAll renders doc at every size, returning rasters in input order.
//
// All sizes are validated before the first adapter call. Rendering runs on
// at most Workers goroutines; the first failure cancels the remaining work
// and is returned with no partial result.
func (g *Generator) RasterizeAll(ctx context.Context, doc []byte, sizes []int) ([][]byte, error) {
	if err := errors.ValidateSizes(sizes); err != nil {
		return nil, err
	}

	out := make([][]byte, len(sizes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, size := range sizes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := g.render(ctx, doc, size)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// checkPNG verifies that data is a PNG image of size x size pixels.
func checkPNG(data []byte, size int) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("renderer output is not a png: %w", err)
	}
	if cfg.Width != size || cfg.Height != size {
		return fmt.Errorf("renderer produced %dx%d, want %dx%d", cfg.Width, cfg.Height, size, size)
	}
	return nil
}
