package rules

import (
	"fmt"
	"strings"

	"cssc/css/compat"
	"cssc/css/printer"
	"cssc/css/properties"
	"cssc/css/values"
)

// KeyframeSelectorKind discriminates keyframe selector forms.
type KeyframeSelectorKind uint8

const (
	SelectorPercentage KeyframeSelectorKind = iota
	SelectorFrom
	SelectorTo
)

// KeyframeSelector is one offset of a keyframe: a percentage or the
// from/to aliases for 0% and 100%. Percentages are not range checked
// here.
type KeyframeSelector struct {
	Kind       KeyframeSelectorKind
	Percentage values.Percentage
}

// ParseKeyframeSelector parses a single keyframe selector.
func ParseKeyframeSelector(s *values.TokenStream) (KeyframeSelector, error) {
	if pct, ok := values.TryParse(s, values.ParsePercentage); ok {
		return KeyframeSelector{Kind: SelectorPercentage, Percentage: pct}, nil
	}
	ident, err := s.ExpectIdent()
	if err != nil {
		return KeyframeSelector{}, err
	}
	switch {
	case strings.EqualFold(ident, "from"):
		return KeyframeSelector{Kind: SelectorFrom}, nil
	case strings.EqualFold(ident, "to"):
		return KeyframeSelector{Kind: SelectorTo}, nil
	}
	return KeyframeSelector{}, fmt.Errorf("%w: bad keyframe selector %q", values.ErrUnexpectedToken, ident)
}

// ToCSS writes the selector. Minified output picks the shortest alias:
// `from` becomes `0%` and `100%` becomes `to`.
func (k KeyframeSelector) ToCSS(p *printer.Printer) error {
	switch k.Kind {
	case SelectorFrom:
		if p.Minify {
			return p.WriteString("0%")
		}
		return p.WriteString("from")
	case SelectorTo:
		return p.WriteString("to")
	default:
		if p.Minify && k.Percentage == 1 {
			return p.WriteString("to")
		}
		return k.Percentage.ToCSS(p)
	}
}

// Keyframe is one offset block within a @keyframes rule. The selector
// list is never empty.
type Keyframe struct {
	Selectors    []KeyframeSelector
	Declarations properties.DeclarationList
}

// ToCSS implements Rule-level serialization for one keyframe.
func (k Keyframe) ToCSS(p *printer.Printer) error {
	for i, sel := range k.Selectors {
		if i > 0 {
			if err := p.Delim(','); err != nil {
				return err
			}
		}
		if err := sel.ToCSS(p); err != nil {
			return err
		}
	}
	return writeBlock(p, k.Declarations)
}

// KeyframesRule is a @keyframes rule, possibly tagged with several
// vendor prefixes at once; serialization emits one prefixed block per
// set bit.
type KeyframesRule struct {
	Name      values.CustomIdent
	Prefix    compat.VendorPrefix
	Keyframes []Keyframe
}

// Minify expands the rule's prefix set for the targets and compacts
// every keyframe's declaration block. Each block gets a fresh handler:
// accumulator state never crosses block boundaries.
func (r *KeyframesRule) Minify(targets compat.Browsers) {
	if r.Prefix.Contains(compat.PrefixNone) && !targets.IsEmpty() {
		r.Prefix = r.Prefix.Or(compat.FeatureKeyframes.PrefixesFor(targets))
	}
	for i := range r.Keyframes {
		r.Keyframes[i].Declarations = r.Keyframes[i].Declarations.Minify(properties.NewAnimationHandler(targets))
	}
}

// Fallbacks computes the color representations the targets require
// across the whole rule and returns @supports-gated duplicates to emit
// before the rule: a P3 copy first, then a LAB copy. When a maximally
// compatible base representation is required, the original rule is
// rewritten in place to it. Later rules win ties, so engines fall
// through to progressively narrower capability gates.
func (r *KeyframesRule) Fallbacks(targets compat.Browsers) []Rule {
	var union compat.ColorFallback
	for _, kf := range r.Keyframes {
		for _, prop := range kf.Declarations {
			if tl, ok := rawValue(prop); ok {
				union |= tl.NecessaryFallbacks(targets)
			}
		}
	}

	lowest, working := fallbackSplit(union)

	var res []Rule
	if working.Contains(compat.FallbackP3) {
		res = append(res, r.fallback(compat.FallbackP3))
	}
	if working.Contains(compat.FallbackLAB) || (!lowest.IsEmpty() && lowest != compat.FallbackLAB) {
		res = append(res, r.fallback(compat.FallbackLAB))
	}

	if !lowest.IsEmpty() {
		for i := range r.Keyframes {
			rewriteColors(r.Keyframes[i].Declarations, lowest)
		}
	}
	return res
}

// fallbackSplit separates the representations a rule requires into the
// base rewrite target and the set emitted as gated duplicates. A lone
// advanced representation only gates a duplicate; there is no broader
// member to rewrite the base rule down to, so the original stays as is.
func fallbackSplit(union compat.ColorFallback) (lowest, working compat.ColorFallback) {
	lowest = union.Lowest()
	if lowest == union && lowest != compat.FallbackRGB {
		lowest = 0
	}
	return lowest, union.Remove(lowest)
}

// fallback clones the rule with every color-bearing raw value rewritten
// to the given representation and wraps the clone in a @supports rule
// gated on that representation's feature query.
func (r *KeyframesRule) fallback(kind compat.ColorFallback) Rule {
	clone := &KeyframesRule{
		Name:      r.Name,
		Prefix:    r.Prefix,
		Keyframes: make([]Keyframe, len(r.Keyframes)),
	}
	for i, kf := range r.Keyframes {
		decls := make(properties.DeclarationList, len(kf.Declarations))
		copy(decls, kf.Declarations)
		rewriteColors(decls, kind)
		clone.Keyframes[i] = Keyframe{Selectors: kf.Selectors, Declarations: decls}
	}
	return &SupportsRule{
		Condition: kind.SupportsCondition(),
		Rules:     []Rule{clone},
	}
}

func rawValue(prop properties.Property) (values.TokenList, bool) {
	switch v := prop.(type) {
	case properties.CustomProperty:
		return v.Value, true
	case properties.UnparsedProperty:
		return v.Value, true
	}
	return values.TokenList{}, false
}

func rewriteColors(decls properties.DeclarationList, kind compat.ColorFallback) {
	for i, prop := range decls {
		switch v := prop.(type) {
		case properties.CustomProperty:
			v.Value = v.Value.WithFallback(kind)
			decls[i] = v
		case properties.UnparsedProperty:
			v.Value = v.Value.WithFallback(kind)
			decls[i] = v
		}
	}
}

// ToCSS implements Rule, writing one @keyframes block per prefix bit in
// canonical prefix order with the standard form last.
func (r *KeyframesRule) ToCSS(p *printer.Printer) error {
	first := true
	var err error
	r.Prefix.Each(func(bit compat.VendorPrefix) {
		if err != nil {
			return
		}
		if !first {
			if err = p.Newline(); err != nil {
				return
			}
		}
		first = false
		err = r.writePrefixed(p, bit)
	})
	return err
}

func (r *KeyframesRule) writePrefixed(p *printer.Printer, bit compat.VendorPrefix) error {
	if err := p.WriteByte('@'); err != nil {
		return err
	}
	if err := p.WriteString(bit.String() + "keyframes "); err != nil {
		return err
	}
	if err := p.WriteIdent(string(r.Name)); err != nil {
		return err
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	if err := p.WriteByte('{'); err != nil {
		return err
	}
	p.Indent()
	for _, kf := range r.Keyframes {
		if err := p.Newline(); err != nil {
			return err
		}
		if err := kf.ToCSS(p); err != nil {
			return err
		}
	}
	p.Dedent()
	if err := p.Newline(); err != nil {
		return err
	}
	return p.WriteByte('}')
}
