package svg

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantName  string
		wantBody  string
		wantAttrs []Attr
	}{
		{
			name:      "simple",
			src:       `<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="5" fill="pink"/></svg>`,
			wantName:  "svg",
			wantBody:  `<circle cx="5" cy="5" r="5" fill="pink"/>`,
			wantAttrs: []Attr{{"viewBox", "0 0 10 10"}},
		},
		{
			name: "prolog and comments dropped",
			src: `<?xml version="1.0" encoding="UTF-8"?>
<!-- exported -->
<svg xmlns="http://www.w3.org/2000/svg"><rect width="1" height="1"/></svg>
<!-- trailer -->`,
			wantName:  "svg",
			wantBody:  `<rect width="1" height="1"/>`,
			wantAttrs: []Attr{{"xmlns", Namespace}},
		},
		{
			name:     "namespaced attributes preserved",
			src:      `<svg xmlns:xlink="http://www.w3.org/1999/xlink"><defs><path id="p" d="M0 0h1"/></defs><use xlink:href="#p"/></svg>`,
			wantName: "svg",
			wantBody: `<defs><path id="p" d="M0 0h1"/></defs><use xlink:href="#p"/>`,
			wantAttrs: []Attr{
				{"xmlns:xlink", "http://www.w3.org/1999/xlink"},
			},
		},
		{
			name:      "nested svg kept in body",
			src:       `<svg width="2"><svg><g/></svg><svg/></svg>`,
			wantName:  "svg",
			wantBody:  `<svg><g/></svg><svg/>`,
			wantAttrs: []Attr{{"width", "2"}},
		},
		{
			name:      "single quotes requoted",
			src:       `<svg data-x='say "hi"'/>`,
			wantName:  "svg",
			wantBody:  "",
			wantAttrs: []Attr{{"data-x", "say &quot;hi&quot;"}},
		},
		{
			name:      "prefixed root",
			src:       `<svg:svg xmlns:svg="http://www.w3.org/2000/svg"><svg:rect/></svg:svg>`,
			wantName:  "svg:svg",
			wantBody:  `<svg:rect/>`,
			wantAttrs: []Attr{{"xmlns:svg", Namespace}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", doc.Name(), tt.wantName)
			}
			if string(doc.Body()) != tt.wantBody {
				t.Errorf("Body() = %q, want %q", doc.Body(), tt.wantBody)
			}
			attrs := doc.Attrs()
			if len(attrs) != len(tt.wantAttrs) {
				t.Fatalf("Attrs() = %v, want %v", attrs, tt.wantAttrs)
			}
			for i := range attrs {
				if attrs[i] != tt.wantAttrs[i] {
					t.Errorf("Attrs()[%d] = %v, want %v", i, attrs[i], tt.wantAttrs[i])
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"text only", "hello"},
		{"unclosed", `<svg><circle r="1"></svg>`},
		{"mismatched", `<svg></g>`},
		{"no svg element", `<html><body/></html>`},
		{"unquoted attribute", `<svg width=10></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Errorf("Parse(%q) error = nil, want error", tt.src)
			}
		})
	}

	if _, err := Parse([]byte(`<html/>`)); !errors.Is(err, ErrNoSVGElement) {
		t.Errorf("Parse(<html/>) error = %v, want ErrNoSVGElement", err)
	}
}

const illustratorExport = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd" [
	<!ENTITY ns_extend "http://ns.adobe.com/Extensibility/1.0/">
	<!ENTITY ns_svg "http://www.w3.org/2000/svg">
	<!ENTITY label 'say "hi"'>
]>
<svg xmlns:x="&ns_extend;" xmlns="&ns_svg;" aria-label="&label;" viewBox="0 0 10 10"><title>&label; &amp; bye</title><metadata><x:a href="&ns_extend;"/></metadata></svg>`

func TestParseDoctypeEntities(t *testing.T) {
	doc, err := Parse([]byte(illustratorExport))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Attr{
		{"xmlns:x", "http://ns.adobe.com/Extensibility/1.0/"},
		{"xmlns", Namespace},
		{"aria-label", "say &quot;hi&quot;"},
		{"viewBox", "0 0 10 10"},
	}
	attrs := doc.Attrs()
	if len(attrs) != len(want) {
		t.Fatalf("Attrs() = %v, want %v", attrs, want)
	}
	for i := range attrs {
		if attrs[i] != want[i] {
			t.Errorf("Attrs()[%d] = %v, want %v", i, attrs[i], want[i])
		}
	}

	wantBody := `<title>say "hi" &amp; bye</title><metadata><x:a href="http://ns.adobe.com/Extensibility/1.0/"/></metadata>`
	if string(doc.Body()) != wantBody {
		t.Errorf("Body() = %q, want %q", doc.Body(), wantBody)
	}

	// The expanded element must stand on its own without the doctype.
	if _, err := Parse(doc.Bytes()); err != nil {
		t.Errorf("Parse(Bytes()) error = %v", err)
	}
}

func TestParseUndeclaredEntity(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no doctype", `<svg xmlns="&ns_svg;"/>`},
		{"declared elsewhere", `<!DOCTYPE svg [<!ENTITY ns_other "x">]><svg xmlns="&ns_svg;"/>`},
		{"parameter entity", `<!DOCTYPE svg [<!ENTITY % ns_svg "x">]><svg xmlns="&ns_svg;"/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Errorf("Parse(%q) error = nil, want error", tt.src)
			}
		})
	}
}

func TestSetters(t *testing.T) {
	doc, err := Parse([]byte(`<svg height="5" viewBox="0 0 10 10"><g/></svg>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	doc.SetWidth(100)
	doc.SetHeight(100)
	doc.SetVersion(Version)
	doc.SetNamespace(Namespace)

	want := `<svg height="100" viewBox="0 0 10 10" width="100" version="1.1" xmlns="http://www.w3.org/2000/svg"><g/></svg>`
	if got := doc.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	doc.SetAttr("data-title", `a "b" & <c>`)
	if v, _ := doc.Attr("data-title"); v != `a "b" & <c>` {
		t.Errorf("Attr() = %q after SetAttr", v)
	}
	if !strings.Contains(doc.String(), `data-title="a &quot;b&quot; &amp; &lt;c>"`) {
		t.Errorf("String() = %s, want escaped attribute", doc)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc, err := Parse([]byte(`<svg width="1"><g/></svg>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := doc.Clone()
	c.SetWidth(2)
	if v, _ := doc.Attr("width"); v != "1" {
		t.Errorf("original width = %q after modifying clone", v)
	}
}

func TestSelfClosingRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 1 1"/>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc.SetWidth(100)
	if got, want := doc.String(), `<svg viewBox="0 0 1 1" width="100"/>`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewBox
		wantErr bool
	}{
		{"0 0 100 100", ViewBox{0, 0, 100, 100}, false},
		{"-5,10, 20 ,30", ViewBox{-5, 10, 20, 30}, false},
		{" 0\t0\n500 500 ", ViewBox{0, 0, 500, 500}, false},
		{"0 0 100", ViewBox{}, true},
		{"0 0 0 100", ViewBox{}, true},
		{"a b c d", ViewBox{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseViewBox(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseViewBox() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseViewBox() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (ViewBox{0, 0, 100, 100}).String(); got != "0 0 100 100" {
		t.Errorf("String() = %q", got)
	}
}
