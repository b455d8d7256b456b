package pipeline

import (
	"bytes"
	"context"
	"io"
	"iter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/appicon/pkg/composite"
	"github.com/matzehuels/appicon/pkg/icns"
	"github.com/matzehuels/appicon/pkg/ico"
	"github.com/matzehuels/appicon/pkg/observability"
	"github.com/matzehuels/appicon/pkg/raster"
)

// Runner executes the icon pipeline.
//
// The Runner holds no per-run state: every call to Generate composites,
// rasterizes and packages from scratch. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Generator *raster.Generator
	Logger    *log.Logger
}

// NewRunner creates a runner.
// If gen is nil, a generator over the native renderer is used.
// If logger is nil, log output is discarded.
func NewRunner(gen *raster.Generator, logger *log.Logger) *Runner {
	if gen == nil {
		gen = raster.NewGenerator(raster.Native{})
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Generator: gen,
		Logger:    logger,
	}
}

// Generate runs the pipeline with a default runner.
func Generate(ctx context.Context, layers []composite.Layer, sel Selection) iter.Seq2[Artifact, error] {
	return NewRunner(nil, nil).Generate(ctx, layers, sel)
}

// step produces one artifact from the composited document.
type step struct {
	name  string
	ext   string
	size  int
	build func(ctx context.Context, doc []byte) ([]byte, error)
}

func (r *Runner) plan(sel Selection) []step {
	var steps []step
	if sel.SVG {
		steps = append(steps, step{name: NameSVG, ext: FormatSVG, build: func(_ context.Context, doc []byte) ([]byte, error) {
			return bytes.Clone(doc), nil
		}})
	}
	if sel.ICO {
		steps = append(steps, step{name: NameICO, ext: FormatICO, build: func(ctx context.Context, doc []byte) ([]byte, error) {
			return ico.Pack(ctx, r.Generator, doc)
		}})
	}
	if sel.ICNS {
		steps = append(steps, step{name: NameICNS, ext: FormatICNS, build: func(ctx context.Context, doc []byte) ([]byte, error) {
			return icns.Pack(ctx, r.Generator, doc)
		}})
	}
	if sel.PNG {
		for _, size := range sel.Sizes() {
			steps = append(steps, step{name: PNGName(size), ext: FormatPNG, size: size, build: func(ctx context.Context, doc []byte) ([]byte, error) {
				return r.Generator.Rasterize(ctx, doc, size)
			}})
		}
	}
	return steps
}

// Generate returns the artifacts for layers and sel as a lazy sequence.
//
// The selection is validated and the layers composited before the first
// artifact is produced; a failure there is the sequence's only element.
// Each artifact is computed just before it is yielded, so breaking out of
// the loop skips the remaining work. After an error the sequence ends.
// Errors are yielded unchanged; typed errors from the errors package can be
// inspected with errors.As.
func (r *Runner) Generate(ctx context.Context, layers []composite.Layer, sel Selection) iter.Seq2[Artifact, error] {
	return func(yield func(Artifact, error) bool) {
		runID := uuid.NewString()
		logger := r.Logger.With("run", runID[:8])
		hooks := observability.Pipeline()

		start := time.Now()
		produced := 0
		var runErr error
		hooks.OnGenerateStart(ctx, runID, len(layers))
		defer func() {
			hooks.OnGenerateComplete(ctx, runID, produced, time.Since(start), runErr)
		}()

		fail := func(err error) {
			runErr = err
			yield(Artifact{}, err)
		}

		if err := sel.Validate(); err != nil {
			fail(err)
			return
		}
		raw, err := composite.Normalize(layers)
		if err != nil {
			fail(err)
			return
		}

		compositeStart := time.Now()
		doc, err := composite.Composite(raw...)
		hooks.OnComposite(ctx, runID, len(doc), time.Since(compositeStart), err)
		if err != nil {
			fail(err)
			return
		}
		logger.Info("composited layers", "layers", len(raw), "bytes", len(doc))

		for _, s := range r.plan(sel) {
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}

			stepStart := time.Now()
			data, err := s.build(ctx, doc)
			elapsed := time.Since(stepStart)
			hooks.OnArtifact(ctx, runID, s.name, len(data), elapsed, err)
			if err != nil {
				logger.Debug("artifact failed", "name", s.name, "error", err)
				fail(err)
				return
			}

			logger.Info("generated artifact", "name", s.name, "bytes", len(data), "duration", elapsed)
			produced++
			if !yield(Artifact{Name: s.name, Ext: s.ext, Data: data, Size: s.size}, nil) {
				return
			}
		}
	}
}

// Collect runs Generate to completion and returns every artifact, or the
// first error and no artifacts.
func (r *Runner) Collect(ctx context.Context, layers []composite.Layer, sel Selection) ([]Artifact, error) {
	var out []Artifact
	for a, err := range r.Generate(ctx, layers, sel) {
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
