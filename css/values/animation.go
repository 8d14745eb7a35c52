package values

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/printer"
)

// AnimationNameKind discriminates animation-name forms.
type AnimationNameKind uint8

const (
	AnimationNameNone AnimationNameKind = iota
	AnimationNameIdent
	AnimationNameCustom // quoted string in the source
)

// AnimationName is `none | <custom-ident> | <string>`.
type AnimationName struct {
	Kind AnimationNameKind
	Name string
}

// ParseAnimationName parses an animation-name item. CSS-wide keywords
// are rejected as bare identifiers but accepted in quoted form.
func ParseAnimationName(s *TokenStream) (AnimationName, error) {
	t, ok := s.Next()
	if !ok {
		return AnimationName{}, fmt.Errorf("%w: expected animation name", ErrUnexpectedToken)
	}
	switch t.Type {
	case css.IdentToken:
		if strings.EqualFold(t.Data, "none") {
			return AnimationName{Kind: AnimationNameNone}, nil
		}
		if IsCSSWideKeyword(t.Data) {
			return AnimationName{}, fmt.Errorf("%w: reserved identifier %q", ErrUnexpectedToken, t.Data)
		}
		return AnimationName{Kind: AnimationNameIdent, Name: t.Data}, nil
	case css.StringToken:
		unquoted, err := strconv.Unquote(strings.ReplaceAll(t.Data, `'`, `"`))
		if err != nil {
			unquoted = strings.Trim(t.Data, `"'`)
		}
		return AnimationName{Kind: AnimationNameCustom, Name: unquoted}, nil
	default:
		return AnimationName{}, fmt.Errorf("%w: expected animation name, got %q", ErrUnexpectedToken, t.Data)
	}
}

// IsNone reports the `none` keyword.
func (n AnimationName) IsNone() bool {
	return n.Kind == AnimationNameNone
}

// Text returns the literal identifier text used by the shorthand print
// collision guards, empty for `none`.
func (n AnimationName) Text() string {
	if n.Kind == AnimationNameNone {
		return ""
	}
	return n.Name
}

// Equal implements Value.
func (n AnimationName) Equal(other Value) bool {
	o, ok := other.(AnimationName)
	return ok && n == o
}

// ToCSS implements Value. Quoted names drop their quotes when the text
// is safe as an identifier; `none` and CSS-wide keywords keep them.
func (n AnimationName) ToCSS(p *printer.Printer) error {
	switch n.Kind {
	case AnimationNameNone:
		return p.WriteString("none")
	case AnimationNameIdent:
		return p.WriteIdent(n.Name)
	default:
		if IsCSSWideKeyword(n.Name) || strings.EqualFold(n.Name, "none") {
			return p.WriteString(`"` + n.Name + `"`)
		}
		return p.WriteIdent(n.Name)
	}
}

// AnimationIterationCount is `infinite | <number>`.
type AnimationIterationCount struct {
	Infinite bool
	Number   float64
}

// OneIteration returns the default iteration count.
func OneIteration() AnimationIterationCount {
	return AnimationIterationCount{Number: 1}
}

// ParseAnimationIterationCount parses an animation-iteration-count item.
func ParseAnimationIterationCount(s *TokenStream) (AnimationIterationCount, error) {
	t, ok := s.Next()
	if !ok {
		return AnimationIterationCount{}, fmt.Errorf("%w: expected iteration count", ErrUnexpectedToken)
	}
	switch t.Type {
	case css.IdentToken:
		if strings.EqualFold(t.Data, "infinite") {
			return AnimationIterationCount{Infinite: true}, nil
		}
	case css.NumberToken:
		v, err := strconv.ParseFloat(t.Data, 64)
		if err == nil && v >= 0 {
			return AnimationIterationCount{Number: v}, nil
		}
	}
	return AnimationIterationCount{}, fmt.Errorf("%w: expected iteration count, got %q", ErrUnexpectedToken, t.Data)
}

// Equal implements Value.
func (c AnimationIterationCount) Equal(other Value) bool {
	o, ok := other.(AnimationIterationCount)
	return ok && c == o
}

// ToCSS implements Value.
func (c AnimationIterationCount) ToCSS(p *printer.Printer) error {
	if c.Infinite {
		return p.WriteString("infinite")
	}
	return p.WriteString(FormatNumber(c.Number, p.Minify))
}

// Keyword is a single enumerated keyword value shared by the
// animation-direction, animation-play-state and animation-fill-mode
// grammars. Each grammar restricts the accepted set.
type Keyword string

// Equal implements Value.
func (k Keyword) Equal(other Value) bool {
	o, ok := other.(Keyword)
	return ok && k == o
}

// ToCSS implements Value.
func (k Keyword) ToCSS(p *printer.Printer) error {
	return p.WriteString(string(k))
}

func keywordParser(allowed ...string) func(*TokenStream) (Keyword, error) {
	return func(s *TokenStream) (Keyword, error) {
		ident, err := s.ExpectIdent()
		if err != nil {
			return "", err
		}
		for _, kw := range allowed {
			if strings.EqualFold(ident, kw) {
				return Keyword(kw), nil
			}
		}
		return "", fmt.Errorf("%w: unknown keyword %q", ErrUnexpectedToken, ident)
	}
}

func keywordMatcher(allowed ...string) func(string) bool {
	return func(name string) bool {
		for _, kw := range allowed {
			if strings.EqualFold(name, kw) {
				return true
			}
		}
		return false
	}
}

// Animation keyword grammars and their collision predicates. The
// predicate reports whether a literal identifier would re-parse as a
// member of the grammar, which forces the slot to print at default.
var (
	ParseAnimationDirection = keywordParser("normal", "reverse", "alternate", "alternate-reverse")
	IsDirectionIdent        = keywordMatcher("normal", "reverse", "alternate", "alternate-reverse")

	ParseAnimationPlayState = keywordParser("running", "paused")
	IsPlayStateIdent        = keywordMatcher("running", "paused")

	ParseAnimationFillMode = keywordParser("none", "forwards", "backwards", "both")
	IsFillModeIdent        = keywordMatcher("none", "forwards", "backwards", "both")
)
