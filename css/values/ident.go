package values

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/printer"
)

// cssWideKeywords cannot be used as bare custom identifiers.
var cssWideKeywords = map[string]struct{}{
	"initial":      {},
	"inherit":      {},
	"unset":        {},
	"default":      {},
	"revert":       {},
	"revert-layer": {},
}

// IsCSSWideKeyword reports whether name is reserved by the cascade.
func IsCSSWideKeyword(name string) bool {
	_, ok := cssWideKeywords[strings.ToLower(name)]
	return ok
}

// CustomIdent is an author-defined identifier, e.g. a keyframes name.
type CustomIdent string

// ParseCustomIdent parses a <custom-ident>, rejecting CSS-wide keywords.
func ParseCustomIdent(s *TokenStream) (CustomIdent, error) {
	ident, err := s.ExpectIdent()
	if err != nil {
		return "", err
	}
	if IsCSSWideKeyword(ident) || strings.EqualFold(ident, "none") {
		return "", fmt.Errorf("%w: reserved identifier %q", ErrUnexpectedToken, ident)
	}
	return CustomIdent(ident), nil
}

// Equal implements Value.
func (c CustomIdent) Equal(other Value) bool {
	o, ok := other.(CustomIdent)
	return ok && c == o
}

// ToCSS implements Value.
func (c CustomIdent) ToCSS(p *printer.Printer) error {
	return p.WriteIdent(string(c))
}

// Percentage is a <percentage> value stored as a unit fraction: 1.0 is
// 100%. Values outside 0..1 are representable; this layer does not range
// check keyframe offsets.
type Percentage float64

// ParsePercentage parses a <percentage> token.
func ParsePercentage(s *TokenStream) (Percentage, error) {
	t, ok := s.Next()
	if !ok || t.Type != css.PercentageToken {
		return 0, fmt.Errorf("%w: expected percentage, got %q", ErrUnexpectedToken, t.Data)
	}
	v, _, err := SplitDimension(t.Data)
	if err != nil {
		return 0, err
	}
	return Percentage(v / 100), nil
}

// Equal implements Value.
func (pct Percentage) Equal(other Value) bool {
	o, ok := other.(Percentage)
	return ok && pct == o
}

// ToCSS implements Value.
func (pct Percentage) ToCSS(p *printer.Printer) error {
	if err := p.WriteString(FormatNumber(float64(pct)*100, p.Minify)); err != nil {
		return err
	}
	return p.WriteByte('%')
}
