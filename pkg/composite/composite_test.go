package composite

import (
	"bytes"
	stderrors "errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/svg"
)

const circle = `<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="5" fill="pink"/></svg>`

const ellipses = `<svg viewBox="0 0 500 500">
  <ellipse cx="250" cy="250" rx="240" ry="120" style="fill:rgb(255,0,0)"/>
  <ellipse cx="250" cy="250" rx="200" ry="100" style="fill:rgb(255,128,0)"/>
  <ellipse cx="250" cy="250" rx="160" ry="80" style="fill:rgb(255,255,0)"/>
  <ellipse cx="250" cy="250" rx="120" ry="60" style="fill:rgb(0,255,0)"/>
  <ellipse cx="250" cy="250" rx="80" ry="40" style="fill:rgb(0,0,255)"/>
</svg>`

func TestCompositeSingleLayer(t *testing.T) {
	got, err := Composite([]byte(circle))
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	want := `<svg viewBox="0 0 100 100" version="1.1" xmlns="http://www.w3.org/2000/svg">
<svg viewBox="0 0 10 10" width="100" height="100" version="1.1" xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="5" fill="pink"/></svg>
</svg>`
	if string(got) != want {
		t.Errorf("Composite() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompositeLayerOrder(t *testing.T) {
	got, err := Composite([]byte(circle), []byte(ellipses))
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	s := string(got)
	first := strings.Index(s, `viewBox="0 0 10 10"`)
	second := strings.Index(s, `viewBox="0 0 500 500"`)
	if first < 0 || second < 0 || first > second {
		t.Errorf("layers out of order: first at %d, second at %d", first, second)
	}
	if n := strings.Count(s, "<svg"); n != 3 {
		t.Errorf("found %d <svg> elements, want 3", n)
	}
	if !strings.HasPrefix(s, Header+"\n") || !strings.HasSuffix(s, "\n</svg>") {
		t.Errorf("document not wrapped in root element:\n%s", s)
	}

	// The result must itself be a valid document.
	if _, err := svg.Parse(got); err != nil {
		t.Errorf("svg.Parse(result) error = %v", err)
	}
}

func TestCompositeKeepsExistingAttributes(t *testing.T) {
	layer := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="24" height="24" viewBox="0 0 24 24"><use xlink:href="#a"/></svg>`
	got, err := Composite([]byte(layer))
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="100" height="100" viewBox="0 0 24 24" version="1.1"><use xlink:href="#a"/></svg>`
	if !strings.Contains(string(got), want) {
		t.Errorf("Composite() =\n%s\nwant layer\n%s", got, want)
	}
}

func TestCompositeIllustratorExport(t *testing.T) {
	layer := `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 27.0.0, SVG Export Plug-In -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd" [
	<!ENTITY ns_extend "http://ns.adobe.com/Extensibility/1.0/">
	<!ENTITY ns_svg "http://www.w3.org/2000/svg">
]>
<svg xmlns:x="&ns_extend;" xmlns="&ns_svg;" viewBox="0 0 10 10"><metadata><x:sfw xmlns:x="&ns_extend;"/></metadata><circle cx="5" cy="5" r="5"/></svg>`

	got, err := Composite([]byte(circle), []byte(layer))
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	want := `<svg xmlns:x="http://ns.adobe.com/Extensibility/1.0/" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="100" height="100" version="1.1"><metadata><x:sfw xmlns:x="http://ns.adobe.com/Extensibility/1.0/"/></metadata><circle cx="5" cy="5" r="5"/></svg>`
	if !strings.Contains(string(got), want) {
		t.Errorf("Composite() =\n%s\nwant layer\n%s", got, want)
	}
	if strings.Contains(string(got), "&ns_") {
		t.Errorf("Composite() left entity references behind:\n%s", got)
	}
	if _, err := svg.Parse(got); err != nil {
		t.Errorf("svg.Parse(result) error = %v", err)
	}

	undeclared := []byte(`<svg xmlns="&ns_svg;" viewBox="0 0 10 10"/>`)
	var pe *errors.DocumentParseError
	if _, err := Composite([]byte(circle), undeclared); !stderrors.As(err, &pe) || pe.Index != 1 {
		t.Errorf("Composite() with undeclared entity error = %v, want DocumentParseError at index 1", err)
	}
}

func TestCompositeErrors(t *testing.T) {
	pngData := func() []byte {
		var b bytes.Buffer
		if err := png.Encode(&b, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
			t.Fatal(err)
		}
		return b.Bytes()
	}()

	tests := []struct {
		name      string
		layers    [][]byte
		wantIndex int
	}{
		{"malformed first", [][]byte{[]byte(`<svg><circle>`)}, 0},
		{"malformed second", [][]byte{[]byte(circle), []byte(`<svg viewBox="0 0 1 1"><rect</svg>`)}, 1},
		{"not svg", [][]byte{[]byte(circle), []byte(circle), []byte(`<html/>`)}, 2},
		{"raster image", [][]byte{pngData}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Composite(tt.layers...)
			if err == nil {
				t.Fatalf("Composite() error = nil, want DocumentParseError")
			}
			if got != nil {
				t.Errorf("Composite() returned %d bytes alongside error", len(got))
			}
			var pe *errors.DocumentParseError
			if !stderrors.As(err, &pe) {
				t.Fatalf("Composite() error = %T %v, want *DocumentParseError", err, err)
			}
			if pe.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", pe.Index, tt.wantIndex)
			}
		})
	}

	if _, err := Composite(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Composite() with no layers error = %v, want INVALID_INPUT", err)
	}
}

func TestNormalize(t *testing.T) {
	in := []byte(circle)
	layers := []Layer{Text(circle), Bytes(in)}
	in[0] = 'X' // callers may reuse their buffers

	got, err := Normalize(layers)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for i, b := range got {
		if string(b) != circle {
			t.Errorf("layer %d = %q, want %q", i, b, circle)
		}
	}
	if layers[0].Len() != len(circle) || layers[1].Len() != len(circle) {
		t.Errorf("Len() = %d, %d, want %d", layers[0].Len(), layers[1].Len(), len(circle))
	}

	tests := []struct {
		name   string
		layers []Layer
	}{
		{"no layers", nil},
		{"empty text", []Layer{Text(circle), Text("")}},
		{"blank bytes", []Layer{Bytes([]byte(" \n\t"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.layers); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Normalize() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
