// Package raster turns SVG documents into square PNG rasters.
//
// Rendering itself is delegated to a [Rasterizer] adapter. Three are
// provided:
//
//   - [Native]: pure Go, built on oksvg and rasterx. Always available.
//   - [RSVG]: shells out to rsvg-convert from librsvg.
//   - [Inkscape]: shells out to the inkscape command line.
//
// A [Generator] wraps an adapter with the contract the packagers rely on:
// sizes are validated before any adapter call, adapter output is checked to
// be a PNG of exactly the requested size, failures are reported as
// *errors.RenderError, and batches run on a bounded worker pool.
package raster

import (
	"context"
	"os/exec"
	"slices"
	"sync"

	"github.com/matzehuels/appicon/pkg/errors"
)

// Rasterizer renders an SVG document to PNG bytes of the given pixel size.
// Implementations must be safe for concurrent use; wrap those that are not
// with [Serialized].
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, width, height int) ([]byte, error)
}

// Func adapts an ordinary function to the Rasterizer interface.
type Func func(ctx context.Context, svg []byte, width, height int) ([]byte, error)

// Rasterize calls f.
func (f Func) Rasterize(ctx context.Context, svg []byte, width, height int) ([]byte, error) {
	return f(ctx, svg, width, height)
}

// Serialized returns a Rasterizer that forwards to r one call at a time.
func Serialized(r Rasterizer) Rasterizer {
	return &serialized{r: r}
}

type serialized struct {
	mu sync.Mutex
	r  Rasterizer
}

func (s *serialized) Rasterize(ctx context.Context, svg []byte, width, height int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Rasterize(ctx, svg, width, height)
}

// Backend names accepted by New.
const (
	BackendAuto     = "auto"
	BackendNative   = "native"
	BackendRSVG     = "rsvg"
	BackendInkscape = "inkscape"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendAuto, BackendNative, BackendRSVG, BackendInkscape}

// New returns the rasterizer for a backend name. "auto" picks rsvg-convert
// when it is installed and the native renderer otherwise; an empty name
// means "auto".
func New(name string) (Rasterizer, error) {
	switch name {
	case "", BackendAuto:
		if _, err := exec.LookPath(rsvgBinary); err == nil {
			return RSVG(), nil
		}
		return Native{}, nil
	case BackendNative:
		return Native{}, nil
	case BackendRSVG:
		return RSVG(), nil
	case BackendInkscape:
		// Inkscape instances share one preferences file; run one at a time.
		return Serialized(Inkscape()), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown renderer %q (valid: %v)", name, Backends)
}

// ValidBackend reports whether name is accepted by New.
func ValidBackend(name string) bool {
	return name == "" || slices.Contains(Backends, name)
}

// backendName names a rasterizer for logs and hooks.
func backendName(r Rasterizer) string {
	switch v := r.(type) {
	case Native, *Native:
		return BackendNative
	case *Command:
		return v.Name
	case *serialized:
		return backendName(v.r)
	}
	return "custom"
}
