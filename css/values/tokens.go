// Package values holds the parsed representations of individual CSS
// longhand values together with their parse-from-token-stream and
// serialize-to-text contracts. Each type is small and self contained;
// cross-declaration logic lives in the properties package.
package values

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/printer"
)

// ErrUnexpectedToken is wrapped by every grammar when the next token run
// cannot be consumed. Callers try the next slot grammar or give up and
// re-surface the whole declaration as an unparsed passthrough.
var ErrUnexpectedToken = errors.New("unexpected token")

// RawToken is one lexed CSS component value. Data is an owned copy of
// the lexer output since tdewolff reuses its buffers between calls.
type RawToken struct {
	Type css.TokenType
	Data string
}

// CopyTokens converts lexer output into owned raw tokens, collapsing
// whitespace runs into single spaces and dropping leading/trailing ones.
func CopyTokens(tokens []css.Token) []RawToken {
	out := make([]RawToken, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if len(out) == 0 || out[len(out)-1].Type == css.WhitespaceToken {
				continue
			}
			out = append(out, RawToken{Type: css.WhitespaceToken, Data: " "})
			continue
		}
		out = append(out, RawToken{Type: t.TokenType, Data: string(t.Data)})
	}
	for len(out) > 0 && out[len(out)-1].Type == css.WhitespaceToken {
		out = out[:len(out)-1]
	}
	return out
}

// TokenStream is a cursor over a declaration's component values. Slot
// grammars consume from it; TryParse restores the position on failure so
// the next grammar can attempt the same token run.
type TokenStream struct {
	tokens []RawToken
	pos    int
}

// NewTokenStream returns a stream over the given tokens.
func NewTokenStream(tokens []RawToken) *TokenStream {
	return &TokenStream{tokens: tokens}
}

func (s *TokenStream) skipWhitespace() {
	for s.pos < len(s.tokens) && s.tokens[s.pos].Type == css.WhitespaceToken {
		s.pos++
	}
}

// Done reports whether only whitespace remains.
func (s *TokenStream) Done() bool {
	s.skipWhitespace()
	return s.pos >= len(s.tokens)
}

// Peek returns the next non-whitespace token without consuming it.
func (s *TokenStream) Peek() (RawToken, bool) {
	s.skipWhitespace()
	if s.pos >= len(s.tokens) {
		return RawToken{}, false
	}
	return s.tokens[s.pos], true
}

// Next consumes and returns the next non-whitespace token.
func (s *TokenStream) Next() (RawToken, bool) {
	s.skipWhitespace()
	if s.pos >= len(s.tokens) {
		return RawToken{}, false
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, true
}

// ExpectIdent consumes an identifier token and returns its text.
func (s *TokenStream) ExpectIdent() (string, error) {
	t, ok := s.Next()
	if !ok || t.Type != css.IdentToken {
		return "", fmt.Errorf("%w: expected identifier, got %q", ErrUnexpectedToken, t.Data)
	}
	return t.Data, nil
}

// ExpectComma consumes a comma token.
func (s *TokenStream) ExpectComma() error {
	t, ok := s.Next()
	if !ok || t.Type != css.CommaToken {
		return fmt.Errorf("%w: expected ',', got %q", ErrUnexpectedToken, t.Data)
	}
	return nil
}

// ExpectCloseParen consumes a closing parenthesis.
func (s *TokenStream) ExpectCloseParen() error {
	t, ok := s.Next()
	if !ok || t.Type != css.RightParenthesisToken {
		return fmt.Errorf("%w: expected ')', got %q", ErrUnexpectedToken, t.Data)
	}
	return nil
}

// ExpectNumber consumes a number token.
func (s *TokenStream) ExpectNumber() (float64, error) {
	t, ok := s.Next()
	if !ok || t.Type != css.NumberToken {
		return 0, fmt.Errorf("%w: expected number, got %q", ErrUnexpectedToken, t.Data)
	}
	v, err := strconv.ParseFloat(t.Data, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrUnexpectedToken, t.Data)
	}
	return v, nil
}

// TryParse runs parse against the stream, restoring the position when it
// fails. First successful match wins; there is no global lookahead.
func TryParse[T any](s *TokenStream, parse func(*TokenStream) (T, error)) (T, bool) {
	save := s.pos
	v, err := parse(s)
	if err != nil {
		s.pos = save
		var zero T
		return zero, false
	}
	return v, true
}

// ParseCommaSeparated parses one or more items separated by commas.
func ParseCommaSeparated[T any](s *TokenStream, parse func(*TokenStream) (T, error)) ([]T, error) {
	var out []T
	for {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if t, ok := s.Peek(); !ok || t.Type != css.CommaToken {
			return out, nil
		}
		s.Next()
	}
}

// SplitDimension separates the numeric value and the unit of a dimension
// token's text.
func SplitDimension(data string) (float64, string, error) {
	end := 0
	for i, r := range data {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return 0, "", fmt.Errorf("%w: bad dimension %q", ErrUnexpectedToken, data)
	}
	v, err := strconv.ParseFloat(data[:end], 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: bad dimension %q", ErrUnexpectedToken, data)
	}
	return v, strings.ToLower(data[end:]), nil
}

// FormatNumber renders a float in canonical CSS form: no exponent,
// no trailing zeros and, under minify, no leading zero before the dot.
func FormatNumber(v float64, minify bool) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if minify {
		if strings.HasPrefix(s, "0.") {
			s = s[1:]
		} else if strings.HasPrefix(s, "-0.") {
			s = "-" + s[2:]
		}
	}
	return s
}

// Value is the common contract of every parsed longhand value: value
// equality for merge decisions and canonical serialization.
type Value interface {
	Equal(other Value) bool
	ToCSS(p *printer.Printer) error
}

// ListEqual compares two comma-separated value sequences element-wise.
func ListEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
