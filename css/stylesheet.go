package css

import (
	"io"
	"strings"

	"cssc/css/compat"
	"cssc/css/printer"
	"cssc/css/rules"
)

// Stylesheet is a parsed CSS stylesheet. Rules keep source order;
// Warnings collects everything the parser skipped or dropped.
type Stylesheet struct {
	Rules    []rules.Rule
	Warnings []string
}

// Minify compacts every declaration block and inserts @supports-gated
// color fallback rules before the keyframes rules that need them. The
// fallback duplicates go first so the original rule wins ties in
// engines that understand both.
func (s *Stylesheet) Minify(targets compat.Browsers) {
	s.Rules = minifyRules(s.Rules, targets)
}

func minifyRules(in []rules.Rule, targets compat.Browsers) []rules.Rule {
	out := make([]rules.Rule, 0, len(in))
	for _, r := range in {
		switch v := r.(type) {
		case *rules.StyleRule:
			v.Minify(targets)
		case *rules.KeyframesRule:
			v.Minify(targets)
			out = append(out, v.Fallbacks(targets)...)
		case *rules.SupportsRule:
			v.Rules = minifyRules(v.Rules, targets)
		}
		out = append(out, r)
	}
	return out
}

// WriteTo serializes the stylesheet to w.
func (s *Stylesheet) WriteTo(w io.Writer, minify bool) error {
	p := printer.New(w, minify)
	for i, r := range s.Rules {
		if i > 0 {
			if err := p.Newline(); err != nil {
				return err
			}
			if err := p.Newline(); err != nil {
				return err
			}
		}
		if err := r.ToCSS(p); err != nil {
			return err
		}
	}
	return nil
}

// String returns the serialized stylesheet text.
func (s *Stylesheet) String(minify bool) string {
	var sb strings.Builder
	if err := s.WriteTo(&sb, minify); err != nil {
		return ""
	}
	return sb.String()
}
