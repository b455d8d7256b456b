package composite

import (
	"bytes"
	"fmt"

	"github.com/h2non/filetype"

	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/svg"
)

// Size is the side length of the composited document's viewBox. Every layer
// is stretched to this size.
const Size = 100

// Header is the opening tag of every composited document.
var Header = fmt.Sprintf(`<svg viewBox="0 0 %d %d" version="%s" xmlns="%s">`, Size, Size, svg.Version, svg.Namespace)

// Composite stacks the given layers into one SVG document. Layers are placed
// bottom to top in input order, one per line between the root tags.
//
// A layer that is not a well-formed SVG document fails the whole call with a
// *errors.DocumentParseError carrying its index.
func Composite(layers ...[]byte) ([]byte, error) {
	if len(layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layers given")
	}

	var b bytes.Buffer
	b.WriteString(Header)
	for i, layer := range layers {
		doc, err := NormalizeLayer(layer, i)
		if err != nil {
			return nil, err
		}
		b.WriteByte('\n')
		b.Write(doc.Bytes())
	}
	b.WriteString("\n</svg>")
	return b.Bytes(), nil
}

// NormalizeLayer parses one layer and forces it to fill the composite
// viewport. index identifies the layer in errors.
func NormalizeLayer(layer []byte, index int) (*svg.Document, error) {
	if kind, _ := filetype.Match(layer); kind != filetype.Unknown {
		return nil, &errors.DocumentParseError{
			Index: index,
			Cause: fmt.Errorf("layer is %s data, not svg", kind.MIME.Value),
		}
	}
	doc, err := svg.Parse(layer)
	if err != nil {
		return nil, &errors.DocumentParseError{Index: index, Cause: err}
	}
	doc.SetWidth(Size)
	doc.SetHeight(Size)
	doc.SetVersion(svg.Version)
	doc.SetNamespace(svg.Namespace)
	return doc, nil
}
