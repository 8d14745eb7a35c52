// Package printer implements canonical CSS text output with an optional
// minified form. All serialization in the program funnels through it so
// whitespace and indentation decisions live in exactly one place.
package printer

import (
	"io"
	"strings"
)

// Printer writes CSS text to an underlying writer. When Minify is set
// all optional whitespace is dropped; otherwise output is indented with
// two spaces per level.
type Printer struct {
	w      io.Writer
	Minify bool

	// OnIdent, when set, is invoked once per identifier reference
	// written through WriteIdent. Used for source-map style bookkeeping.
	OnIdent func(name string)

	indent int
}

// New returns a printer writing to w.
func New(w io.Writer, minify bool) *Printer {
	return &Printer{w: w, Minify: minify}
}

// WriteString writes s verbatim.
func (p *Printer) WriteString(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

// WriteByte writes a single byte verbatim.
func (p *Printer) WriteByte(c byte) error {
	_, err := p.w.Write([]byte{c})
	return err
}

// Whitespace writes a single space unless minifying.
func (p *Printer) Whitespace() error {
	if p.Minify {
		return nil
	}
	return p.WriteByte(' ')
}

// Delim writes a delimiter such as ',' or ':', followed by a space in
// non-minified output.
func (p *Printer) Delim(c byte) error {
	if err := p.WriteByte(c); err != nil {
		return err
	}
	return p.Whitespace()
}

// Newline writes a line break plus current indentation unless minifying.
func (p *Printer) Newline() error {
	if p.Minify {
		return nil
	}
	if err := p.WriteByte('\n'); err != nil {
		return err
	}
	return p.WriteString(strings.Repeat("  ", p.indent))
}

// Indent increases the indentation level.
func (p *Printer) Indent() { p.indent++ }

// Dedent decreases the indentation level.
func (p *Printer) Dedent() {
	if p.indent > 0 {
		p.indent--
	}
}

// WriteIdent serializes a CSS identifier, escaping characters that are
// not valid in an unquoted ident, and fires the OnIdent hook.
func (p *Printer) WriteIdent(name string) error {
	if p.OnIdent != nil {
		p.OnIdent(name)
	}
	return p.WriteString(EscapeIdent(name))
}

// EscapeIdent returns name in valid CSS identifier form.
func EscapeIdent(name string) string {
	if isValidIdent(name) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		switch {
		case isIdentChar(r) && !(i == 0 && r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isValidIdent(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, r := range name {
		if !isIdentChar(r) {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

func isIdentChar(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r >= 0x80
}
