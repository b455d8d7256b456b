package io

import (
	"io"
	"os"

	"github.com/matzehuels/appicon/pkg/composite"
	"github.com/matzehuels/appicon/pkg/errors"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ReadLayers reads one layer per path, in order.
//
// No paths reads all of stdin as the only layer. Stdin can be named at most
// once since it can only be drained once.
// ReadLayers does not close stdin.
func ReadLayers(paths []string, stdin io.Reader) ([]composite.Layer, error) {
	if len(paths) == 0 {
		paths = []string{Stdin}
	}

	layers := make([]composite.Layer, 0, len(paths))
	usedStdin := false
	for _, path := range paths {
		if path == Stdin {
			if usedStdin {
				return nil, errors.New(errors.ErrCodeInvalidInput, "stdin can only be read once")
			}
			usedStdin = true
			data, err := readStdin(stdin)
			if err != nil {
				return nil, err
			}
			layers = append(layers, composite.Bytes(data))
			continue
		}

		data, err := ReadLayer(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, composite.Bytes(data))
	}
	return layers, nil
}

// ReadLayer reads a single layer file.
func ReadLayer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layer file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return data, nil
}

func readStdin(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input: pass layer files or pipe an SVG on stdin")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read stdin")
	}
	return data, nil
}
