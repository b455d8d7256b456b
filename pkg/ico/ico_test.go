package ico

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/h2non/filetype"

	"github.com/matzehuels/appicon/pkg/composite"
	"github.com/matzehuels/appicon/pkg/raster"
)

type fakeRenderer struct {
	err   error
	sizes []int
}

func (f *fakeRenderer) RasterizeAll(_ context.Context, _ []byte, sizes []int) ([][]byte, error) {
	f.sizes = append(f.sizes, sizes...)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]byte, len(sizes))
	for i, s := range sizes {
		out[i] = circlePNG(s)
	}
	return out, nil
}

// circlePNG draws an opaque disc on a transparent square.
func circlePNG(size int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff})
			}
		}
	}
	var b bytes.Buffer
	_ = png.Encode(&b, img)
	return b.Bytes()
}

func TestPack(t *testing.T) {
	f := &fakeRenderer{}
	data, err := Pack(context.Background(), f, []byte("<svg/>"))
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	if len(f.sizes) != len(Sizes) {
		t.Errorf("rendered sizes %v, want %v", f.sizes, Sizes)
	}
	if !filetype.Is(data, "ico") {
		t.Error("output is not detected as an ICO file")
	}

	entries, err := Entries(data)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != len(Sizes) {
		t.Fatalf("got %d entries, want %d", len(entries), len(Sizes))
	}
	for i, e := range entries {
		if e.Width != Sizes[i] || e.Height != Sizes[i] {
			t.Errorf("entry %d is %dx%d, want %dx%d", i, e.Width, e.Height, Sizes[i], Sizes[i])
		}
	}
}

func TestPackNative(t *testing.T) {
	doc, err := composite.Composite([]byte(`<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="5" fill="pink"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	data, err := Pack(context.Background(), raster.NewGenerator(raster.Native{}), doc)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	entries, err := Entries(data)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 7 || entries[6].Width != 256 {
		t.Errorf("entries = %v, want 7 ending at 256", entries)
	}
}

func TestPackFailure(t *testing.T) {
	boom := errors.New("render failed")
	data, err := Pack(context.Background(), &fakeRenderer{err: boom}, []byte("<svg/>"))
	if !errors.Is(err, boom) {
		t.Errorf("Pack() error = %v, want %v", err, boom)
	}
	if data != nil {
		t.Errorf("Pack() returned %d bytes alongside error", len(data))
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		pngs [][]byte
	}{
		{"empty", nil},
		{"not png", [][]byte{[]byte("nope")}},
		{"too large", [][]byte{circlePNG(257)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.pngs); err == nil {
				t.Error("Encode() error = nil, want error")
			}
		})
	}
}
