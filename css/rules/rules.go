// Package rules models the rule level of a stylesheet: style rules,
// @keyframes and the @supports wrappers generated for progressive color
// fallbacks.
package rules

import (
	"cssc/css/compat"
	"cssc/css/printer"
	"cssc/css/properties"
)

// Rule is a top-level stylesheet rule.
type Rule interface {
	ToCSS(p *printer.Printer) error
}

// StyleRule is an ordinary ruleset. Selectors are kept as source text;
// selector matching is outside this program's scope.
type StyleRule struct {
	Selectors    string
	Declarations properties.DeclarationList
}

// Minify compacts the rule's declaration block.
func (r *StyleRule) Minify(targets compat.Browsers) {
	r.Declarations = r.Declarations.Minify(properties.NewAnimationHandler(targets))
}

// ToCSS implements Rule.
func (r *StyleRule) ToCSS(p *printer.Printer) error {
	if err := p.WriteString(r.Selectors); err != nil {
		return err
	}
	return writeBlock(p, r.Declarations)
}

func writeBlock(p *printer.Printer, decls properties.DeclarationList) error {
	if err := p.Whitespace(); err != nil {
		return err
	}
	if err := p.WriteByte('{'); err != nil {
		return err
	}
	p.Indent()
	if err := decls.ToCSS(p); err != nil {
		return err
	}
	p.Dedent()
	if err := p.Newline(); err != nil {
		return err
	}
	return p.WriteByte('}')
}
