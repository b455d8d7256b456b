// Package pkg provides the core libraries for appicon.
//
// # Overview
//
// Appicon turns one or more SVG layers into the icon files an application
// ships: a composited icon.svg, a multi-resolution Windows icon.ico, a macOS
// icon.icns and standalone PNGs. The pkg directory is organized by stage:
//
//  1. [svg] - Minimal SVG document model (parse, attribute edits, flatten)
//  2. [composite] - Layer normalization and stacking into one document
//  3. [raster] - Rasterizer backends and the bounded raster generator
//  4. [ico], [icns] - Binary container packaging
//  5. [pipeline] - Orchestration (composite → rasterize → package)
//
// Supporting packages: [io] (layer input, atomic artifact output), [config]
// (TOML and environment settings), [errors] (error codes), [observability]
// (hooks) and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	SVG layers (files or stdin)
//	         ↓
//	    [composite] package (normalize each layer, stack bottom first)
//	         ↓
//	    master SVG document (computed once per run)
//	         ↓
//	    [raster] package (one PNG per requested size, bounded pool)
//	         ↓
//	    icon.svg, icon.ico, icon.icns, NxN.png
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/appicon/pkg/composite"
//	    "github.com/matzehuels/appicon/pkg/io"
//	    "github.com/matzehuels/appicon/pkg/pipeline"
//	)
//
//	layers := []composite.Layer{composite.Text(background), composite.Text(glyph)}
//	err := io.WriteAll("icons", pipeline.Generate(ctx, layers, pipeline.DefaultSelection()), nil)
//
// [svg]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/svg
// [composite]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/composite
// [raster]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/raster
// [ico]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/ico
// [icns]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/icns
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/appicon/pkg/buildinfo
package pkg
