// Package svg provides a minimal SVG document value type.
//
// A [Document] is the outermost <svg> element of a source document: its
// element name, its attributes in source order and its body bytes. Only the
// start tag is ever rewritten; the body is carried verbatim, so namespace
// declarations, prefixed attributes and any markup the package does not
// understand survive a Parse/Bytes round trip.
//
// The typed setters cover the attributes the compositor forces on every
// layer. Existing attributes are updated in place, missing ones are appended.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"
)

// Namespace is the SVG XML namespace URI.
const Namespace = "http://www.w3.org/2000/svg"

// Version is the SVG version written by SetVersion callers.
const Version = "1.1"

// ErrNoSVGElement is returned by Parse when the document has no <svg> element.
var ErrNoSVGElement = errors.New("no <svg> element")

// Attr is an attribute of the root element. Value is kept escaped, exactly as
// it will be written between double quotes.
type Attr struct {
	Name  string
	Value string
}

// Document is the outermost <svg> element of a parsed SVG document.
type Document struct {
	name  string
	attrs []Attr
	body  []byte
	void  bool
}

// Parse checks that src is well-formed XML and extracts its first <svg>
// element. Content outside that element (prolog, doctype, comments) is
// discarded. General entities declared in an internal DOCTYPE subset are
// expanded in the root attributes and body, since the doctype is dropped.
func Parse(src []byte) (*Document, error) {
	ents, err := wellFormed(src)
	if err != nil {
		return nil, err
	}

	sc := newScanner(src)
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		if tok.typ != xmlStartTag || !isSVG(tok.name) {
			continue
		}
		attrs, closeTok, ok := sc.attrs()
		if !ok {
			break
		}
		doc := &Document{name: tok.name, attrs: attrs}
		if closeTok.typ == xmlStartTagCloseVoid {
			doc.void = true
			doc.expand(ents)
			return doc, nil
		}
		end, ok := matchingEnd(sc)
		if !ok {
			break
		}
		doc.body = bytes.Clone(src[closeTok.end:end])
		doc.expand(ents)
		return doc, nil
	}
	if err := sc.err(); err != nil {
		return nil, err
	}
	return nil, ErrNoSVGElement
}

// matchingEnd returns the start offset of the end tag closing the element
// whose start tag was just consumed.
func matchingEnd(sc *scanner) (int, bool) {
	depth := 1
	for {
		tok, ok := sc.next()
		if !ok {
			return 0, false
		}
		switch tok.typ {
		case xmlStartTagClose:
			depth++
		case xmlEndTag:
			depth--
			if depth == 0 {
				return tok.start, true
			}
		}
	}
}

// wellFormed runs the strict standard-library tokenizer over src and returns
// the general entities declared in its internal DOCTYPE subset.
func wellFormed(src []byte) (map[string]string, error) {
	d := xml.NewDecoder(bytes.NewReader(src))
	d.Strict = true
	d.Entity = maps.Clone(xml.HTMLEntity)
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var (
		depth, roots int
		ents         map[string]string
	)
	for {
		t, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := t.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.Directive:
			// The decoder consults d.Entity on every reference, so
			// declarations apply to the rest of the document.
			for name, value := range entityDecls(t) {
				if ents == nil {
					ents = make(map[string]string)
				}
				ents[name] = value
				d.Entity[name] = value
			}
		}
	}
	if roots == 0 {
		return nil, ErrNoSVGElement
	}
	return ents, nil
}

// entityDecl matches an internal general entity declaration. Parameter
// entities and external (SYSTEM/PUBLIC) entities do not match.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_:][\w.:-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// entityDecls returns the general entities declared by a DOCTYPE directive.
func entityDecls(dir xml.Directive) map[string]string {
	if !bytes.HasPrefix(dir, []byte("DOCTYPE")) {
		return nil
	}
	out := make(map[string]string)
	for _, m := range entityDecl.FindAllSubmatch(dir, -1) {
		name := string(m[1])
		if _, ok := out[name]; ok {
			continue // first declaration wins
		}
		if m[2] != nil {
			out[name] = string(m[2])
		} else {
			out[name] = string(m[3])
		}
	}
	return out
}

// expand replaces references to the given entities in the root attributes
// and body. Values inserted into attributes are escaped for double quotes.
func (d *Document) expand(ents map[string]string) {
	if len(ents) == 0 {
		return
	}
	body := make([]string, 0, 2*len(ents))
	attr := make([]string, 0, 2*len(ents))
	for name, value := range ents {
		ref := "&" + name + ";"
		body = append(body, ref, value)
		attr = append(attr, ref, attrValueEscaper.Replace(value))
	}
	ar := strings.NewReplacer(attr...)
	for i := range d.attrs {
		d.attrs[i].Value = ar.Replace(d.attrs[i].Value)
	}
	if d.body != nil {
		d.body = []byte(strings.NewReplacer(body...).Replace(string(d.body)))
	}
}

// Name returns the element name as written, e.g. "svg" or "svg:svg".
func (d *Document) Name() string { return d.name }

// Body returns the element content between the start and end tags.
func (d *Document) Body() []byte { return d.body }

// Attrs returns a copy of the root element's attributes in order.
func (d *Document) Attrs() []Attr {
	out := make([]Attr, len(d.attrs))
	copy(out, d.attrs)
	return out
}

// Attr returns the unescaped value of the named attribute.
func (d *Document) Attr(name string) (string, bool) {
	for _, a := range d.attrs {
		if a.Name == name {
			return html.UnescapeString(a.Value), true
		}
	}
	return "", false
}

// SetAttr sets an attribute to an unescaped value.
func (d *Document) SetAttr(name, value string) {
	v := attrEscaper.Replace(value)
	for i := range d.attrs {
		if d.attrs[i].Name == name {
			d.attrs[i].Value = v
			return
		}
	}
	d.attrs = append(d.attrs, Attr{Name: name, Value: v})
}

// SetWidth sets the width attribute in user units.
func (d *Document) SetWidth(w float64) { d.SetAttr("width", formatNumber(w)) }

// SetHeight sets the height attribute in user units.
func (d *Document) SetHeight(h float64) { d.SetAttr("height", formatNumber(h)) }

// SetVersion sets the version attribute.
func (d *Document) SetVersion(v string) { d.SetAttr("version", v) }

// SetNamespace sets the default namespace declaration.
func (d *Document) SetNamespace(uri string) { d.SetAttr("xmlns", uri) }

// ViewBox returns the parsed viewBox attribute, if present and valid.
func (d *Document) ViewBox() (ViewBox, bool) {
	v, ok := d.Attr("viewBox")
	if !ok {
		return ViewBox{}, false
	}
	vb, err := ParseViewBox(v)
	return vb, err == nil
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{name: d.name, attrs: d.Attrs(), body: bytes.Clone(d.body), void: d.void}
}

// Bytes serializes the element.
func (d *Document) Bytes() []byte {
	var b bytes.Buffer
	b.Grow(len(d.body) + 64*len(d.attrs))
	b.WriteByte('<')
	b.WriteString(d.name)
	writeAttrs(&b, d.attrs)
	if d.void {
		b.WriteString("/>")
		return b.Bytes()
	}
	b.WriteByte('>')
	b.Write(d.body)
	b.WriteString("</")
	b.WriteString(d.name)
	b.WriteByte('>')
	return b.Bytes()
}

// String serializes the element.
func (d *Document) String() string { return string(d.Bytes()) }

func writeAttrs(b *bytes.Buffer, attrs []Attr) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

// attrValueEscaper escapes entity replacement text, which may itself hold
// references, for use inside a double-quoted attribute.
var attrValueEscaper = strings.NewReplacer(`<`, "&lt;", `"`, "&quot;")

func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ViewBox is a parsed viewBox attribute.
type ViewBox struct {
	X, Y, Width, Height float64
}

// ParseViewBox parses "min-x min-y width height", separated by whitespace
// and/or commas. Width and height must be positive.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("viewBox %q: want 4 numbers", s)
	}
	var n [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("viewBox %q: %w", s, err)
		}
		n[i] = v
	}
	if n[2] <= 0 || n[3] <= 0 {
		return ViewBox{}, fmt.Errorf("viewBox %q: non-positive size", s)
	}
	return ViewBox{X: n[0], Y: n[1], Width: n[2], Height: n[3]}, nil
}

// String formats the view box as an attribute value.
func (v ViewBox) String() string {
	return strings.Join([]string{
		formatNumber(v.X), formatNumber(v.Y), formatNumber(v.Width), formatNumber(v.Height),
	}, " ")
}
