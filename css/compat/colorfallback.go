package compat

// ColorFallback is a set of color representations that have to be
// emitted so every targeted engine sees a value it can parse. Bit
// positions define the canonical preference rank: RGB is the most
// broadly compatible representation, LAB the least.
type ColorFallback uint8

const (
	FallbackRGB ColorFallback = 1 << iota
	FallbackP3
	FallbackLAB
)

// Contains reports whether every bit of other is present in f.
func (f ColorFallback) Contains(other ColorFallback) bool {
	return f&other == other
}

// IsEmpty reports whether the set has no members.
func (f ColorFallback) IsEmpty() bool {
	return f == 0
}

// Remove clears the bits of other from f.
func (f ColorFallback) Remove(other ColorFallback) ColorFallback {
	return f &^ other
}

// Lowest returns the most broadly compatible member of the set, or the
// empty set when f is empty. The rank is the explicit bit order above,
// not anything inferred at runtime.
func (f ColorFallback) Lowest() ColorFallback {
	return f & (^f + 1)
}

// SupportsCondition returns the literal @supports feature query guarding
// the representation. Valid only for a single-member set.
func (f ColorFallback) SupportsCondition() string {
	switch f {
	case FallbackP3:
		return "(color: color(display-p3 0 0 0))"
	case FallbackLAB:
		return "(color: lab(0% 0 0))"
	default:
		return "(color: rgb(0, 0, 0))"
	}
}

// Color space support per browser: first major version understanding
// lab()/oklab() and color(display-p3 ...) notations.
var (
	labSupport = Browsers{Chrome: 111, Edge: 111, Firefox: 113, IOS: 15, Opera: 97, Safari: 15}
	p3Support  = Browsers{Chrome: 111, Edge: 111, Firefox: 113, IOS: 15, Opera: 97, Safari: 15}
)

func allSupport(b, since Browsers) bool {
	type pair struct{ target, since int }
	for _, p := range [...]pair{
		{b.Chrome, since.Chrome},
		{b.Edge, since.Edge},
		{b.Firefox, since.Firefox},
		{b.IOS, since.IOS},
		{b.Opera, since.Opera},
		{b.Safari, since.Safari},
	} {
		if p.target > 0 && p.target < p.since {
			return false
		}
	}
	return true
}

func anySupport(b, since Browsers) bool {
	type pair struct{ target, since int }
	for _, p := range [...]pair{
		{b.Chrome, since.Chrome},
		{b.Edge, since.Edge},
		{b.Firefox, since.Firefox},
		{b.IOS, since.IOS},
		{b.Opera, since.Opera},
		{b.Safari, since.Safari},
	} {
		if p.target >= p.since && p.since > 0 {
			return true
		}
	}
	return false
}

// LabFallbacksFor returns the representations required for a value
// written in a CIELAB-family color space given the targets. The original
// LAB form is kept for engines with full support, a P3 duplicate covers
// wide-gamut engines without lab() and an RGB rewrite covers the rest.
func LabFallbacksFor(b Browsers) ColorFallback {
	if b.IsEmpty() || allSupport(b, labSupport) {
		return 0
	}
	fallbacks := FallbackRGB | FallbackLAB
	if anySupport(b, p3Support) {
		fallbacks |= FallbackP3
	}
	return fallbacks
}

// P3FallbacksFor returns the representations required for a value
// written in the display-p3 color space given the targets.
func P3FallbacksFor(b Browsers) ColorFallback {
	if b.IsEmpty() || allSupport(b, p3Support) {
		return 0
	}
	return FallbackRGB | FallbackP3
}
