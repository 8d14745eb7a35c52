package values

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/printer"
)

// EasingKind discriminates the easing function forms.
type EasingKind uint8

const (
	EasingKeyword EasingKind = iota
	EasingCubicBezier
	EasingSteps
)

// StepPosition is the second argument of steps().
type StepPosition uint8

const (
	StepEnd StepPosition = iota
	StepStart
	StepJumpNone
	StepJumpBoth
)

var stepPositionNames = map[StepPosition]string{
	StepEnd:      "end",
	StepStart:    "start",
	StepJumpNone: "jump-none",
	StepJumpBoth: "jump-both",
}

// EasingFunction is a <easing-function> value: a keyword, a
// cubic-bezier() curve or a steps() timing.
type EasingFunction struct {
	Kind    EasingKind
	Keyword string // for EasingKeyword

	X1, Y1, X2, Y2 float64 // for EasingCubicBezier

	Steps    int // for EasingSteps
	Position StepPosition
}

var easingKeywords = map[string]struct{}{
	"linear":      {},
	"ease":        {},
	"ease-in":     {},
	"ease-out":    {},
	"ease-in-out": {},
	"step-start":  {},
	"step-end":    {},
}

// IsEasingIdent reports whether the literal text would parse as an
// easing keyword. Used by the shorthand print collision guard.
func IsEasingIdent(name string) bool {
	_, ok := easingKeywords[strings.ToLower(name)]
	return ok
}

// Ease returns the default easing function.
func Ease() EasingFunction {
	return EasingFunction{Kind: EasingKeyword, Keyword: "ease"}
}

// ParseEasingFunction parses a <easing-function>.
func ParseEasingFunction(s *TokenStream) (EasingFunction, error) {
	t, ok := s.Next()
	if !ok {
		return EasingFunction{}, fmt.Errorf("%w: expected easing function", ErrUnexpectedToken)
	}
	switch t.Type {
	case css.IdentToken:
		kw := strings.ToLower(t.Data)
		if !IsEasingIdent(kw) {
			return EasingFunction{}, fmt.Errorf("%w: unknown easing keyword %q", ErrUnexpectedToken, t.Data)
		}
		return EasingFunction{Kind: EasingKeyword, Keyword: kw}, nil
	case css.FunctionToken:
		switch strings.ToLower(strings.TrimSuffix(t.Data, "(")) {
		case "cubic-bezier":
			return parseCubicBezier(s)
		case "steps":
			return parseSteps(s)
		}
	}
	return EasingFunction{}, fmt.Errorf("%w: expected easing function, got %q", ErrUnexpectedToken, t.Data)
}

func parseCubicBezier(s *TokenStream) (EasingFunction, error) {
	e := EasingFunction{Kind: EasingCubicBezier}
	for i, v := range []*float64{&e.X1, &e.Y1, &e.X2, &e.Y2} {
		if i > 0 {
			if err := s.ExpectComma(); err != nil {
				return EasingFunction{}, err
			}
		}
		n, err := s.ExpectNumber()
		if err != nil {
			return EasingFunction{}, err
		}
		*v = n
	}
	if err := s.ExpectCloseParen(); err != nil {
		return EasingFunction{}, err
	}
	return e, nil
}

func parseSteps(s *TokenStream) (EasingFunction, error) {
	n, err := s.ExpectNumber()
	if err != nil {
		return EasingFunction{}, err
	}
	e := EasingFunction{Kind: EasingSteps, Steps: int(n)}
	if t, ok := s.Peek(); ok && t.Type == css.CommaToken {
		s.Next()
		ident, err := s.ExpectIdent()
		if err != nil {
			return EasingFunction{}, err
		}
		found := false
		for pos, name := range stepPositionNames {
			if strings.EqualFold(ident, name) {
				e.Position = pos
				found = true
				break
			}
		}
		if !found {
			return EasingFunction{}, fmt.Errorf("%w: bad step position %q", ErrUnexpectedToken, ident)
		}
	}
	if err := s.ExpectCloseParen(); err != nil {
		return EasingFunction{}, err
	}
	return e, nil
}

// IsEase reports whether the function is equivalent to the default ease,
// including its cubic-bezier(0.25, 0.1, 0.25, 1) spelling.
func (e EasingFunction) IsEase() bool {
	if e.Kind == EasingKeyword && e.Keyword == "ease" {
		return true
	}
	return e.Kind == EasingCubicBezier && e.X1 == 0.25 && e.Y1 == 0.1 && e.X2 == 0.25 && e.Y2 == 1
}

// Equal implements Value.
func (e EasingFunction) Equal(other Value) bool {
	o, ok := other.(EasingFunction)
	return ok && e == o
}

// ToCSS implements Value.
func (e EasingFunction) ToCSS(p *printer.Printer) error {
	switch e.Kind {
	case EasingCubicBezier:
		if err := p.WriteString("cubic-bezier("); err != nil {
			return err
		}
		for i, v := range []float64{e.X1, e.Y1, e.X2, e.Y2} {
			if i > 0 {
				if err := p.Delim(','); err != nil {
					return err
				}
			}
			if err := p.WriteString(FormatNumber(v, p.Minify)); err != nil {
				return err
			}
		}
		return p.WriteByte(')')
	case EasingSteps:
		if e.Position == StepStart && e.Steps == 1 {
			return p.WriteString("step-start")
		}
		if e.Position == StepEnd && e.Steps == 1 {
			return p.WriteString("step-end")
		}
		if err := p.WriteString(fmt.Sprintf("steps(%d", e.Steps)); err != nil {
			return err
		}
		if e.Position != StepEnd {
			if err := p.Delim(','); err != nil {
				return err
			}
			if err := p.WriteString(stepPositionNames[e.Position]); err != nil {
				return err
			}
		}
		return p.WriteByte(')')
	default:
		return p.WriteString(e.Keyword)
	}
}
