// Package compat models browser targets, vendor prefixes and color
// capability sets used to decide how compact output can be while still
// being understood by every configured engine.
package compat

import "strings"

// VendorPrefix is a set of vendor prefixes a declaration is tagged with.
// Ordering semantics come from declaration position in the source, never
// from prefix identity.
type VendorPrefix uint8

const (
	// PrefixNone marks the unprefixed (standard) property form.
	PrefixNone VendorPrefix = 1 << iota
	PrefixWebKit
	PrefixMoz
	PrefixMs
	PrefixO
)

// Contains reports whether every bit of other is present in p.
func (p VendorPrefix) Contains(other VendorPrefix) bool {
	return p&other == other
}

// IsEmpty reports whether no prefix bit is set.
func (p VendorPrefix) IsEmpty() bool {
	return p == 0
}

// Remove clears the bits of other from p.
func (p VendorPrefix) Remove(other VendorPrefix) VendorPrefix {
	return p &^ other
}

// And returns the intersection of two prefix sets.
func (p VendorPrefix) And(other VendorPrefix) VendorPrefix {
	return p & other
}

// Or returns the union of two prefix sets.
func (p VendorPrefix) Or(other VendorPrefix) VendorPrefix {
	return p | other
}

// prefixOrder is the canonical serialization order for multi-prefix
// declarations: experimental forms first, the standard form last so it
// wins in engines that understand both.
var prefixOrder = [...]VendorPrefix{PrefixWebKit, PrefixMoz, PrefixMs, PrefixO, PrefixNone}

// Each calls fn once per set bit in canonical serialization order.
func (p VendorPrefix) Each(fn func(VendorPrefix)) {
	for _, bit := range prefixOrder {
		if p.Contains(bit) {
			fn(bit)
		}
	}
}

// String returns the literal prefix text, e.g. "-webkit-". The unprefixed
// bit yields an empty string.
func (p VendorPrefix) String() string {
	switch p {
	case PrefixWebKit:
		return "-webkit-"
	case PrefixMoz:
		return "-moz-"
	case PrefixMs:
		return "-ms-"
	case PrefixO:
		return "-o-"
	default:
		return ""
	}
}

// SplitPrefixedName separates a vendor prefix from a property or at-rule
// name. Names without a known prefix are returned unchanged with
// PrefixNone.
func SplitPrefixedName(name string) (VendorPrefix, string) {
	if !strings.HasPrefix(name, "-") {
		return PrefixNone, name
	}
	for _, bit := range [...]VendorPrefix{PrefixWebKit, PrefixMoz, PrefixMs, PrefixO} {
		if rest, ok := strings.CutPrefix(name, bit.String()); ok {
			return bit, rest
		}
	}
	return PrefixNone, name
}
