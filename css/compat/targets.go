package compat

// Browsers lists the minimum targeted major version per browser engine.
// Zero means the browser is not targeted at all.
type Browsers struct {
	Chrome  int `yaml:"chrome,omitempty" validate:"gte=0"`
	Edge    int `yaml:"edge,omitempty" validate:"gte=0"`
	Firefox int `yaml:"firefox,omitempty" validate:"gte=0"`
	IOS     int `yaml:"ios,omitempty" validate:"gte=0"`
	Opera   int `yaml:"opera,omitempty" validate:"gte=0"`
	Safari  int `yaml:"safari,omitempty" validate:"gte=0"`
}

// IsEmpty reports whether no browser is targeted. With empty targets no
// prefix expansion and no color fallbacks are generated.
func (b Browsers) IsEmpty() bool {
	return b == Browsers{}
}

// Feature identifies a CSS feature whose prefix requirements depend on
// the targeted browser versions.
type Feature int

const (
	FeatureAnimation Feature = iota
	FeatureKeyframes
)

// featurePrefixes records the last major version of each browser that
// still required a prefixed form of the feature. A target at or below
// that version pulls the prefix in; any target pulls the standard form.
type featureVersions struct {
	webkitChrome int // Chrome needed -webkit- up to this version
	webkitSafari int
	webkitIOS    int
	mozFirefox   int // Firefox needed -moz- up to this version
	oOpera       int // Opera needed -o- up to this version
}

var featureData = map[Feature]featureVersions{
	// CSS animations were prefixed until Chrome 42, Safari 8, iOS 8,
	// Firefox 15 and presto Opera 12.
	FeatureAnimation: {webkitChrome: 42, webkitSafari: 8, webkitIOS: 8, mozFirefox: 15, oOpera: 12},
	FeatureKeyframes: {webkitChrome: 42, webkitSafari: 8, webkitIOS: 8, mozFirefox: 15, oOpera: 12},
}

// PrefixesFor returns the set of prefixes the feature needs to cover the
// given targets. The standard form is always included.
func (f Feature) PrefixesFor(b Browsers) VendorPrefix {
	prefix := PrefixNone
	if b.IsEmpty() {
		return prefix
	}
	d, ok := featureData[f]
	if !ok {
		return prefix
	}
	if (b.Chrome > 0 && b.Chrome <= d.webkitChrome) ||
		(b.Safari > 0 && b.Safari <= d.webkitSafari) ||
		(b.IOS > 0 && b.IOS <= d.webkitIOS) {
		prefix |= PrefixWebKit
	}
	if b.Firefox > 0 && b.Firefox <= d.mozFirefox {
		prefix |= PrefixMoz
	}
	if b.Opera > 0 && b.Opera <= d.oOpera {
		prefix |= PrefixO
	}
	return prefix
}
