// Package properties implements the declaration model of the compaction
// engine: the closed property union, the animation shorthand group and
// the single-pass accumulator that merges longhands into shorthands
// without changing which engine sees which value.
package properties

import (
	"strings"

	"cssc/css/compat"
	"cssc/css/printer"
	"cssc/css/values"
)

// PropertyID identifies a recognized property. The set is closed; new
// shorthand groups are added by extending the slot tables, not by
// runtime registration.
type PropertyID uint8

const (
	PropAnimationName PropertyID = iota
	PropAnimationDuration
	PropAnimationTimingFunction
	PropAnimationIterationCount
	PropAnimationDirection
	PropAnimationPlayState
	PropAnimationDelay
	PropAnimationFillMode
	PropAnimation
	PropUnknown
)

// IsAnimationFamily reports whether the property belongs to the
// animation shorthand group.
func (id PropertyID) IsAnimationFamily() bool {
	return id <= PropAnimation
}

// Property is one parsed declaration. The union is closed: a longhand, a
// shorthand, a custom property or an unparsed passthrough.
type Property interface {
	// PropertyName returns the unprefixed property name.
	PropertyName() string
	// VendorPrefix returns the prefix set the declaration is tagged
	// with; serialization emits one declaration per member.
	VendorPrefix() compat.VendorPrefix
	// ValueToCSS writes the canonical value text.
	ValueToCSS(p *printer.Printer) error
}

// LonghandProperty is a single-concern property carrying one value per
// comma-separated instance.
type LonghandProperty struct {
	ID     PropertyID
	Prefix compat.VendorPrefix
	Values []values.Value
}

func (l LonghandProperty) PropertyName() string              { return animationSlots[slotIndexByID[l.ID]].name }
func (l LonghandProperty) VendorPrefix() compat.VendorPrefix { return l.Prefix }

func (l LonghandProperty) ValueToCSS(p *printer.Printer) error {
	for i, v := range l.Values {
		if i > 0 {
			if err := p.Delim(','); err != nil {
				return err
			}
		}
		if err := v.ToCSS(p); err != nil {
			return err
		}
	}
	return nil
}

// AnimationProperty is the animation shorthand: one packed instance per
// comma-separated animation.
type AnimationProperty struct {
	Prefix compat.VendorPrefix
	List   []Animation
}

func (a AnimationProperty) PropertyName() string              { return "animation" }
func (a AnimationProperty) VendorPrefix() compat.VendorPrefix { return a.Prefix }

func (a AnimationProperty) ValueToCSS(p *printer.Printer) error {
	for i, anim := range a.List {
		if i > 0 {
			if err := p.Delim(','); err != nil {
				return err
			}
		}
		if err := anim.ToCSS(p); err != nil {
			return err
		}
	}
	return nil
}

// CustomProperty is a `--name` declaration kept in raw token form.
type CustomProperty struct {
	Name  string
	Value values.TokenList
}

func (c CustomProperty) PropertyName() string              { return c.Name }
func (c CustomProperty) VendorPrefix() compat.VendorPrefix { return compat.PrefixNone }
func (c CustomProperty) ValueToCSS(p *printer.Printer) error {
	return c.Value.ToCSS(p)
}

// UnparsedProperty preserves a declaration whose value grammar did not
// parse, keeping forward compatibility with syntax this program does not
// know. It is never merged.
type UnparsedProperty struct {
	Name   string
	ID     PropertyID
	Prefix compat.VendorPrefix
	Value  values.TokenList
}

func (u UnparsedProperty) PropertyName() string              { return u.Name }
func (u UnparsedProperty) VendorPrefix() compat.VendorPrefix { return u.Prefix }
func (u UnparsedProperty) ValueToCSS(p *printer.Printer) error {
	return u.Value.ToCSS(p)
}

// DeclarationList is an ordered block of declarations.
type DeclarationList []Property

// Push appends a declaration.
func (d *DeclarationList) Push(p Property) {
	*d = append(*d, p)
}

// Minify runs the accumulator over the block and returns the compacted
// declaration list. Properties outside the handler's family pass through
// in place.
func (d DeclarationList) Minify(h *AnimationHandler) DeclarationList {
	var out DeclarationList
	for _, prop := range d {
		if !h.Handle(prop, &out) {
			out.Push(prop)
		}
	}
	h.Finalize(&out)
	return out
}

// ToCSS writes the block's declarations, one per vendor prefix bit,
// each preceded by a newline at the current indent.
func (d DeclarationList) ToCSS(p *printer.Printer) error {
	type flat struct {
		name string
		prop Property
	}
	var decls []flat
	for _, prop := range d {
		prop.VendorPrefix().Each(func(bit compat.VendorPrefix) {
			decls = append(decls, flat{name: bit.String() + prop.PropertyName(), prop: prop})
		})
	}
	for i, dcl := range decls {
		if err := p.Newline(); err != nil {
			return err
		}
		if err := p.WriteString(dcl.name); err != nil {
			return err
		}
		if err := p.Delim(':'); err != nil {
			return err
		}
		if err := dcl.prop.ValueToCSS(p); err != nil {
			return err
		}
		if i < len(decls)-1 || !p.Minify {
			if err := p.WriteByte(';'); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseDeclaration turns one declaration into a Property. A failed or
// unrecognized value grammar yields an UnparsedProperty passthrough
// rather than an error: the block-level caller decides what to do with
// the whole stylesheet, never this layer.
func ParseDeclaration(name string, tokens []values.RawToken) Property {
	if strings.HasPrefix(name, "--") {
		return CustomProperty{Name: name, Value: values.TokenList{Tokens: tokens}}
	}
	prefix, base := compat.SplitPrefixedName(name)
	base = strings.ToLower(base)
	id, known := propertyIDByName[base]
	if !known {
		return UnparsedProperty{Name: base, ID: PropUnknown, Prefix: prefix, Value: values.TokenList{Tokens: tokens}}
	}

	s := values.NewTokenStream(tokens)
	if id == PropAnimation {
		list, err := values.ParseCommaSeparated(s, parseAnimation)
		if err == nil && s.Done() {
			return AnimationProperty{Prefix: prefix, List: list}
		}
	} else {
		slot := slotIndexByID[id]
		list, err := values.ParseCommaSeparated(s, animationSlots[slot].parse)
		if err == nil && s.Done() {
			return LonghandProperty{ID: id, Prefix: prefix, Values: list}
		}
	}
	return UnparsedProperty{Name: base, ID: id, Prefix: prefix, Value: values.TokenList{Tokens: tokens}}
}

// propertyIDByName maps unprefixed property names to ids.
var propertyIDByName = map[string]PropertyID{
	"animation":                 PropAnimation,
	"animation-name":            PropAnimationName,
	"animation-duration":        PropAnimationDuration,
	"animation-timing-function": PropAnimationTimingFunction,
	"animation-iteration-count": PropAnimationIterationCount,
	"animation-direction":       PropAnimationDirection,
	"animation-play-state":      PropAnimationPlayState,
	"animation-delay":           PropAnimationDelay,
	"animation-fill-mode":       PropAnimationFillMode,
}
