package values

import (
	"fmt"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/printer"
)

// Time is a duration value. The original unit is kept so non-minified
// output round-trips; equality and zero checks use seconds.
type Time struct {
	Seconds float64
	// Milliseconds records that the source used the ms unit.
	Milliseconds bool
}

// ParseTime parses a <time> dimension (s or ms).
func ParseTime(s *TokenStream) (Time, error) {
	t, ok := s.Next()
	if !ok || t.Type != css.DimensionToken {
		return Time{}, fmt.Errorf("%w: expected time, got %q", ErrUnexpectedToken, t.Data)
	}
	v, unit, err := SplitDimension(t.Data)
	if err != nil {
		return Time{}, err
	}
	switch unit {
	case "s":
		return Time{Seconds: v}, nil
	case "ms":
		return Time{Seconds: v / 1000, Milliseconds: true}, nil
	default:
		return Time{}, fmt.Errorf("%w: bad time unit %q", ErrUnexpectedToken, unit)
	}
}

// IsZero reports a zero duration regardless of unit.
func (t Time) IsZero() bool {
	return t.Seconds == 0
}

// Equal implements Value. Unit does not participate: 1s equals 1000ms.
func (t Time) Equal(other Value) bool {
	o, ok := other.(Time)
	return ok && t.Seconds == o.Seconds
}

// ToCSS implements Value. Minified output picks the shorter of the s and
// ms spellings; otherwise the source unit is kept.
func (t Time) ToCSS(p *printer.Printer) error {
	sec := FormatNumber(t.Seconds, p.Minify) + "s"
	ms := FormatNumber(t.Seconds*1000, p.Minify) + "ms"
	if p.Minify {
		if len(ms) < len(sec) {
			return p.WriteString(ms)
		}
		return p.WriteString(sec)
	}
	if t.Milliseconds {
		return p.WriteString(ms)
	}
	return p.WriteString(sec)
}
