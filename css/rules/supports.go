package rules

import "cssc/css/printer"

// SupportsRule is a @supports conditional group rule. Only the fixed
// feature-query conditions produced by color fallback generation appear
// here; the condition text itself comes from the fallback kind.
type SupportsRule struct {
	Condition string
	Rules     []Rule
}

// ToCSS implements Rule.
func (r *SupportsRule) ToCSS(p *printer.Printer) error {
	if err := p.WriteString("@supports "); err != nil {
		return err
	}
	if err := p.WriteString(r.Condition); err != nil {
		return err
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	if err := p.WriteByte('{'); err != nil {
		return err
	}
	p.Indent()
	for _, inner := range r.Rules {
		if err := p.Newline(); err != nil {
			return err
		}
		if err := inner.ToCSS(p); err != nil {
			return err
		}
	}
	p.Dedent()
	if err := p.Newline(); err != nil {
		return err
	}
	return p.WriteByte('}')
}
