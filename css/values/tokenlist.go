package values

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/compat"
	"cssc/css/printer"
)

// TokenList is the raw token form of a declaration value that was not
// (or could not be) parsed into a typed representation. It still takes
// part in color fallback generation: color notations inside it are
// recognized and rewritten in place.
type TokenList struct {
	Tokens []RawToken
}

// Clone returns an independent copy.
func (l TokenList) Clone() TokenList {
	out := make([]RawToken, len(l.Tokens))
	copy(out, l.Tokens)
	return TokenList{Tokens: out}
}

var colorFunctions = map[string]struct{}{
	"rgb": {}, "rgba": {}, "lab": {}, "oklab": {}, "color": {},
}

func isColorStart(t RawToken) bool {
	switch t.Type {
	case css.HashToken:
		return true
	case css.FunctionToken:
		_, ok := colorFunctions[strings.ToLower(strings.TrimSuffix(t.Data, "("))]
		return ok
	}
	return false
}

// eachColor calls fn for every color notation found in the list with the
// parsed color and its token span.
func (l TokenList) eachColor(fn func(c Color, start, end int)) {
	for i := 0; i < len(l.Tokens); i++ {
		if !isColorStart(l.Tokens[i]) {
			continue
		}
		s := NewTokenStream(l.Tokens[i:])
		c, err := ParseColor(s)
		if err != nil {
			continue
		}
		fn(c, i, i+s.pos)
		i += s.pos - 1
	}
}

// NecessaryFallbacks returns the union of color representations the
// targets require for every color appearing in the value.
func (l TokenList) NecessaryFallbacks(b compat.Browsers) compat.ColorFallback {
	var fallbacks compat.ColorFallback
	l.eachColor(func(c Color, _, _ int) {
		fallbacks |= c.NecessaryFallbacks(b)
	})
	return fallbacks
}

// WithFallback returns a copy of the value with every color rewritten to
// the representation named by kind. Values without colors are returned
// unchanged.
func (l TokenList) WithFallback(kind compat.ColorFallback) TokenList {
	type span struct {
		start, end int
		text       string
	}
	var spans []span
	l.eachColor(func(c Color, start, end int) {
		var b strings.Builder
		p := printer.New(&b, true)
		if err := c.ToFallback(kind).ToCSS(p); err != nil {
			return
		}
		spans = append(spans, span{start: start, end: end, text: b.String()})
	})
	if len(spans) == 0 {
		return l
	}
	out := make([]RawToken, 0, len(l.Tokens))
	prev := 0
	for _, sp := range spans {
		out = append(out, l.Tokens[prev:sp.start]...)
		out = append(out, RawToken{Type: css.IdentToken, Data: sp.text})
		prev = sp.end
	}
	out = append(out, l.Tokens[prev:]...)
	return TokenList{Tokens: out}
}

// Equal implements Value. Raw values compare textually.
func (l TokenList) Equal(other Value) bool {
	o, ok := other.(TokenList)
	if !ok || len(l.Tokens) != len(o.Tokens) {
		return false
	}
	for i := range l.Tokens {
		if l.Tokens[i] != o.Tokens[i] {
			return false
		}
	}
	return true
}

// ToCSS implements Value, writing the tokens back out. Under minify,
// whitespace around punctuation is dropped.
func (l TokenList) ToCSS(p *printer.Printer) error {
	for i, t := range l.Tokens {
		if t.Type == css.WhitespaceToken && p.Minify {
			if i > 0 && punctuation(l.Tokens[i-1]) {
				continue
			}
			if i+1 < len(l.Tokens) && punctuation(l.Tokens[i+1]) {
				continue
			}
		}
		if err := p.WriteString(t.Data); err != nil {
			return err
		}
	}
	return nil
}

func punctuation(t RawToken) bool {
	switch t.Type {
	case css.CommaToken, css.ColonToken, css.RightParenthesisToken, css.LeftParenthesisToken:
		return true
	}
	return false
}
