// Package composite stacks SVG layers into a single master document.
//
// Every layer becomes a child <svg> of a 100x100 root, in input order, so the
// first layer is painted at the bottom and the last on top. Each child is
// forced to fill the root viewport; its own viewBox decides how its content
// is scaled into that square.
//
// # Layers
//
// Callers supply layers as a [Layer], a tagged union of text and raw bytes.
// [Normalize] turns them into immutable byte slices once, at the pipeline's
// entry point, rejecting an empty set or an empty layer.
package composite

import (
	"bytes"
	"strings"

	"github.com/matzehuels/appicon/pkg/errors"
)

// Layer is one SVG document supplied as either text or bytes.
type Layer struct {
	text   string
	data   []byte
	isText bool
}

// Text returns a layer holding SVG source text.
func Text(s string) Layer { return Layer{text: s, isText: true} }

// Bytes returns a layer holding raw SVG bytes. The slice is copied.
func Bytes(b []byte) Layer { return Layer{data: bytes.Clone(b)} }

// Len returns the layer size in bytes.
func (l Layer) Len() int {
	if l.isText {
		return len(l.text)
	}
	return len(l.data)
}

// Bytes returns the layer as a fresh byte slice.
func (l Layer) Bytes() []byte {
	if l.isText {
		return []byte(l.text)
	}
	return bytes.Clone(l.data)
}

// Normalize converts layers to byte slices, validating that the set is not
// empty and that no layer is empty or whitespace only.
func Normalize(layers []Layer) ([][]byte, error) {
	if len(layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layers given")
	}
	out := make([][]byte, len(layers))
	for i, l := range layers {
		b := l.Bytes()
		if len(strings.TrimSpace(string(b))) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layer %d is empty", i)
		}
		out[i] = b
	}
	return out, nil
}
