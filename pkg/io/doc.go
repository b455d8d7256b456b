// Package io moves layers and artifacts between the pipeline and the
// filesystem.
//
// # Input
//
// [ReadLayers] turns command-line arguments into pipeline layers. With no
// paths, all of stdin is read as a single layer. The path "-" also means
// stdin; every other path is one layer file, kept in argument order:
//
//	layers, err := io.ReadLayers(args, os.Stdin)
//
// Layer bytes are passed through untouched. Validation happens in the
// composite package, which reports the offending layer by index.
//
// # Output
//
// [WriteArtifact] writes one artifact into a destination directory, creating
// the directory (and any parents) first. Data goes to a temporary file in the
// same directory which is renamed into place, so a failed write never leaves
// a truncated icon behind.
//
// [WriteAll] drains a pipeline sequence and writes each artifact as soon as
// it is produced:
//
//	err := io.WriteAll(dest, runner.Generate(ctx, layers, sel), func(a pipeline.Artifact, path string) {
//	    logger.Info("wrote", "path", path)
//	})
//
// Pipeline errors and filesystem errors are returned as they occur; files
// written before the error are left in place.
package io
