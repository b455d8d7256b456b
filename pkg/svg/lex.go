package svg

import (
	"bytes"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Token types used outside this file, aliased so those files can import
// encoding/xml without a name clash.
const (
	xmlStartTag          = xml.StartTagToken
	xmlStartTagClose     = xml.StartTagCloseToken
	xmlStartTagCloseVoid = xml.StartTagCloseVoidToken
	xmlEndTag            = xml.EndTagToken
)

// token is one lexer token with its byte span in the source document.
type token struct {
	typ   xml.TokenType
	name  string // tag or attribute name
	val   []byte // raw attribute value including quotes
	start int
	end   int
}

// scanner walks an XML document token by token, reporting source offsets so
// callers can splice the original bytes instead of re-serializing them.
type scanner struct {
	in  *parse.Input
	lex *xml.Lexer
}

func newScanner(src []byte) *scanner {
	// The lexer normalizes whitespace inside attribute values in place.
	in := parse.NewInputBytes(bytes.Clone(src))
	return &scanner{in: in, lex: xml.NewLexer(in)}
}

func (s *scanner) next() (token, bool) {
	tt, data := s.lex.Next()
	if tt == xml.ErrorToken {
		return token{}, false
	}
	end := s.in.Offset()
	tok := token{typ: tt, start: end - len(data), end: end}
	switch tt {
	case xml.StartTagToken, xml.EndTagToken, xml.AttributeToken:
		tok.name = string(s.lex.Text())
	}
	if tt == xml.AttributeToken {
		tok.val = bytes.Clone(s.lex.AttrVal())
	}
	return tok, true
}

// attrs consumes attribute tokens up to and including the tag close.
func (s *scanner) attrs() ([]Attr, token, bool) {
	var attrs []Attr
	for {
		tok, ok := s.next()
		if !ok {
			return nil, token{}, false
		}
		switch tok.typ {
		case xml.AttributeToken:
			attrs = append(attrs, Attr{Name: tok.name, Value: rawValue(tok.val)})
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken, xml.StartTagClosePIToken:
			return attrs, tok, true
		default:
			return nil, token{}, false
		}
	}
}

func (s *scanner) err() error {
	if err := s.lex.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// rawValue strips the quotes from a lexed attribute value, keeping entity
// references as written. Single-quoted values are re-quoted for emission
// between double quotes.
func rawValue(v []byte) string {
	if len(v) < 2 {
		return string(v)
	}
	switch q := v[0]; q {
	case '"':
		return string(v[1 : len(v)-1])
	case '\'':
		return string(bytes.ReplaceAll(v[1:len(v)-1], []byte(`"`), []byte("&quot;")))
	}
	return string(v)
}

func isSVG(name string) bool {
	if name == "svg" {
		return true
	}
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:] == "svg"
	}
	return false
}
