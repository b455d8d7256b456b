package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/appicon/pkg/observability"
)

// logHooks reports pipeline and rasterizer events through the CLI logger.
// Everything is logged at debug level, so it only shows with --verbose.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.RasterHooks   = (*logHooks)(nil)
)

func (h *logHooks) OnGenerateStart(_ context.Context, runID string, layers int) {
	h.logger.Debug("run started", "run", shortID(runID), "layers", layers)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, runID string, artifacts int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("run failed", "run", shortID(runID), "artifacts", artifacts, "duration", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("run complete", "run", shortID(runID), "artifacts", artifacts, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnComposite(_ context.Context, runID string, size int, d time.Duration, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("composite", "run", shortID(runID), "bytes", size, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnArtifact(_ context.Context, runID, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("artifact failed", "run", shortID(runID), "name", name, "error", err)
		return
	}
	h.logger.Debug("artifact", "run", shortID(runID), "name", name, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnRasterize(_ context.Context, backend string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("rasterize failed", "backend", backend, "size", size, "error", err)
		return
	}
	h.logger.Debug("rasterize", "backend", backend, "size", size, "duration", d.Round(time.Millisecond))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
