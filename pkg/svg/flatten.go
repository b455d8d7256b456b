package svg

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Flatten rewrites every nested <svg> element of src into a <g> element whose
// transform maps the nested viewport onto its parent's user space, honoring
// x, y, width, height, viewBox and preserveAspectRatio. The outermost <svg>
// is left untouched, as is everything else in the document.
//
// Renderers that only understand a single root viewport draw the flattened
// document the same way a full SVG renderer draws the original, except that
// nested viewports no longer clip their content.
func Flatten(src []byte) ([]byte, error) {
	type frame struct {
		svg       bool
		rewritten bool
		w, h      float64
	}

	sc := newScanner(src)
	var (
		out   bytes.Buffer
		stack []frame
		last  int
	)
	out.Grow(len(src) + 256)

	viewport := func() (float64, float64, bool) {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].svg {
				return stack[i].w, stack[i].h, true
			}
		}
		return 0, 0, false
	}

	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		switch tok.typ {
		case xmlStartTag:
			attrs, closeTok, ok := sc.attrs()
			if !ok {
				return nil, fmt.Errorf("flatten: unterminated start tag <%s>", tok.name)
			}
			void := closeTok.typ == xmlStartTagCloseVoid
			if !isSVG(tok.name) {
				if !void {
					stack = append(stack, frame{})
				}
				continue
			}

			pw, ph, nested := viewport()
			if !nested {
				w, h := rootViewport(attrs)
				if !void {
					stack = append(stack, frame{svg: true, w: w, h: h})
				}
				continue
			}

			g := nestedViewport(attrs, pw, ph)
			out.Write(src[last:tok.start])
			out.WriteString("<g")
			writeAttrs(&out, g.attrs)
			if void {
				out.WriteString("/>")
			} else {
				out.WriteByte('>')
				stack = append(stack, frame{svg: true, rewritten: true, w: g.w, h: g.h})
			}
			last = closeTok.end

		case xmlEndTag:
			if len(stack) == 0 {
				return nil, fmt.Errorf("flatten: unexpected end tag </%s>", tok.name)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.rewritten {
				out.Write(src[last:tok.start])
				out.WriteString("</g>")
				last = tok.end
			}
		}
	}
	if err := sc.err(); err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}

// viewportAttrs are consumed by the viewport transform and not carried over
// to the replacement group.
var viewportAttrs = map[string]bool{
	"x":                   true,
	"y":                   true,
	"width":               true,
	"height":              true,
	"viewBox":             true,
	"preserveAspectRatio": true,
	"version":             true,
	"baseProfile":         true,
	"transform":           true,
	"zoomAndPan":          true,
}

type group struct {
	attrs []Attr
	w, h  float64 // user-space size seen by the group's children
}

func rootViewport(attrs []Attr) (float64, float64) {
	lookup := attrLookup(attrs)
	if vb, err := ParseViewBox(lookup("viewBox")); err == nil {
		return vb.Width, vb.Height
	}
	w := parseLength(lookup("width"), 100, 100)
	h := parseLength(lookup("height"), 100, 100)
	return w, h
}

func nestedViewport(attrs []Attr, pw, ph float64) group {
	lookup := attrLookup(attrs)
	x := parseLength(lookup("x"), pw, 0)
	y := parseLength(lookup("y"), ph, 0)
	w := parseLength(lookup("width"), pw, pw)
	h := parseLength(lookup("height"), ph, ph)

	var g group
	for _, a := range attrs {
		if !viewportAttrs[a.Name] {
			g.attrs = append(g.attrs, a)
		}
	}

	parts := []string{"translate(" + formatNumber(x) + "," + formatNumber(y) + ")"}
	g.w, g.h = w, h
	if vb, err := ParseViewBox(lookup("viewBox")); err == nil {
		sx, sy, tx, ty := fitViewBox(vb, w, h, lookup("preserveAspectRatio"))
		parts = []string{
			"translate(" + formatNumber(x+tx) + "," + formatNumber(y+ty) + ")",
			"scale(" + formatNumber(sx) + "," + formatNumber(sy) + ")",
			"translate(" + formatNumber(-vb.X) + "," + formatNumber(-vb.Y) + ")",
		}
		g.w, g.h = vb.Width, vb.Height
	}
	g.attrs = append(g.attrs, Attr{Name: "transform", Value: strings.Join(parts, " ")})
	return g
}

// fitViewBox computes the scale and alignment offset that place vb inside a
// w by h viewport.
func fitViewBox(vb ViewBox, w, h float64, par string) (sx, sy, tx, ty float64) {
	sx, sy = w/vb.Width, h/vb.Height

	fields := strings.Fields(par)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	align, slice := "xMidYMid", false
	if len(fields) > 0 {
		align = fields[0]
	}
	if len(fields) > 1 {
		slice = fields[1] == "slice"
	}
	if align == "none" {
		return sx, sy, 0, 0
	}

	s := min(sx, sy)
	if slice {
		s = max(sx, sy)
	}
	dw, dh := w-vb.Width*s, h-vb.Height*s
	switch {
	case strings.HasPrefix(align, "xMid"):
		tx = dw / 2
	case strings.HasPrefix(align, "xMax"):
		tx = dw
	}
	switch {
	case strings.HasSuffix(align, "YMid"):
		ty = dh / 2
	case strings.HasSuffix(align, "YMax"):
		ty = dh
	}
	return s, s, tx, ty
}

// parseLength reads an SVG length in user units. Percentages resolve against
// ref; "px" is accepted; anything unparseable yields def.
func parseLength(s string, ref, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return def
		}
		return ref * v / 100
	}
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func attrLookup(attrs []Attr) func(string) string {
	return func(name string) string {
		for _, a := range attrs {
			if a.Name == name {
				return html.UnescapeString(a.Value)
			}
		}
		return ""
	}
}
