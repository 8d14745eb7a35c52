package values

import (
	"testing"

	"cssc/css/compat"
)

func TestParseColor_Hex(t *testing.T) {
	c, err := ParseColor(stream("#ff0000"))
	if err != nil {
		t.Fatalf("ParseColor(#ff0000) error = %v", err)
	}
	if c.Space != ColorSpaceSRGB || c.C0 != 1 || c.C1 != 0 || c.C2 != 0 || c.Alpha != 1 {
		t.Errorf("unexpected color: %+v", c)
	}

	c, err = ParseColor(stream("#ABC"))
	if err != nil {
		t.Fatalf("ParseColor(#ABC) error = %v", err)
	}
	if got := render(t, c, true); got != "#abc" {
		t.Errorf("short hex round trip = %q, want #abc", got)
	}

	if _, err := ParseColor(stream("#12345")); err == nil {
		t.Error("expected error for 5-digit hex")
	}
}

func TestParseColor_Functions(t *testing.T) {
	c, err := ParseColor(stream("rgb(100%, 0%, 0%)"))
	if err != nil {
		t.Fatalf("ParseColor(rgb) error = %v", err)
	}
	if got := render(t, c, true); got != "#f00" {
		t.Errorf("rgb(100%%, 0%%, 0%%) = %q, want #f00", got)
	}

	c, err = ParseColor(stream("lab(52% 40 60)"))
	if err != nil {
		t.Fatalf("ParseColor(lab) error = %v", err)
	}
	if c.Space != ColorSpaceLab || c.C0 != 52 || c.C1 != 40 || c.C2 != 60 {
		t.Errorf("unexpected lab color: %+v", c)
	}

	c, err = ParseColor(stream("oklab(0.5 0.1 -0.1)"))
	if err != nil {
		t.Fatalf("ParseColor(oklab) error = %v", err)
	}
	if c.Space != ColorSpaceOKLab {
		t.Errorf("unexpected oklab color: %+v", c)
	}

	c, err = ParseColor(stream("color(display-p3 1 0 0)"))
	if err != nil {
		t.Fatalf("ParseColor(color()) error = %v", err)
	}
	if c.Space != ColorSpaceP3 || c.C0 != 1 {
		t.Errorf("unexpected p3 color: %+v", c)
	}

	if _, err := ParseColor(stream("color(rec2020 1 0 0)")); err == nil {
		t.Error("expected error for unsupported color space")
	}
	if _, err := ParseColor(stream("solid")); err == nil {
		t.Error("expected error for non-color token")
	}
}

func TestColorToCSS(t *testing.T) {
	tests := []struct {
		in     Color
		minify bool
		want   string
	}{
		{Color{Space: ColorSpaceSRGB, C0: 1, C1: 0, C2: 0, Alpha: 1}, true, "#f00"},
		{Color{Space: ColorSpaceSRGB, C0: 26.0 / 255, C1: 43.0 / 255, C2: 60.0 / 255, Alpha: 1}, true, "#1a2b3c"},
		{Color{Space: ColorSpaceSRGB, Alpha: 0.5}, true, "rgba(0,0,0,.5)"},
		{Color{Space: ColorSpaceSRGB, Alpha: 0.5}, false, "rgba(0, 0, 0, 0.5)"},
		{Color{Space: ColorSpaceLab, C0: 52, C1: 40, C2: 60, Alpha: 1}, false, "lab(52% 40 60)"},
		{Color{Space: ColorSpaceOKLab, C0: 0.5, C1: 0.1, C2: -0.1, Alpha: 1}, true, "oklab(.5 .1 -.1)"},
		{Color{Space: ColorSpaceP3, C0: 1, Alpha: 1}, true, "color(display-p3 1 0 0)"},
		{Color{Space: ColorSpaceP3, C0: 1, Alpha: 0.5}, true, "color(display-p3 1 0 0/.5)"},
		{Color{Space: ColorSpaceP3, C0: 1, Alpha: 0.5}, false, "color(display-p3 1 0 0 / 0.5)"},
	}
	for _, tt := range tests {
		if got := render(t, tt.in, tt.minify); got != tt.want {
			t.Errorf("%+v (minify=%v) = %q, want %q", tt.in, tt.minify, got, tt.want)
		}
	}
}

func TestColorToFallback_RoundTrip(t *testing.T) {
	red, err := ParseColor(stream("#ff0000"))
	if err != nil {
		t.Fatal(err)
	}

	lab := red.ToFallback(compat.FallbackLAB)
	if lab.Space != ColorSpaceLab {
		t.Fatalf("expected lab space, got %+v", lab)
	}
	// CIELAB lightness of sRGB red is about 54.3
	if lab.C0 < 53 || lab.C0 > 56 {
		t.Errorf("unexpected lab lightness: %v", lab.C0)
	}
	if got := render(t, lab.ToFallback(compat.FallbackRGB), true); got != "#f00" {
		t.Errorf("lab round trip = %q, want #f00", got)
	}

	p3 := red.ToFallback(compat.FallbackP3)
	if p3.Space != ColorSpaceP3 {
		t.Fatalf("expected p3 space, got %+v", p3)
	}
	if got := render(t, p3.ToFallback(compat.FallbackRGB), true); got != "#f00" {
		t.Errorf("p3 round trip = %q, want #f00", got)
	}
}

func TestColorNecessaryFallbacks(t *testing.T) {
	lab := Color{Space: ColorSpaceLab, Alpha: 1}
	p3 := Color{Space: ColorSpaceP3, Alpha: 1}
	srgb := Color{Space: ColorSpaceSRGB, Alpha: 1}

	tests := []struct {
		name    string
		c       Color
		targets compat.Browsers
		want    compat.ColorFallback
	}{
		{"srgb needs nothing", srgb, compat.Browsers{Chrome: 90}, 0},
		{"lab, old chrome", lab, compat.Browsers{Chrome: 90}, compat.FallbackRGB | compat.FallbackLAB},
		{"lab, old chrome plus p3-capable safari", lab, compat.Browsers{Chrome: 90, Safari: 16}, compat.FallbackRGB | compat.FallbackP3 | compat.FallbackLAB},
		{"lab, modern targets", lab, compat.Browsers{Chrome: 120}, 0},
		{"p3, old chrome", p3, compat.Browsers{Chrome: 90}, compat.FallbackRGB | compat.FallbackP3},
		{"empty targets", lab, compat.Browsers{}, 0},
	}
	for _, tt := range tests {
		if got := tt.c.NecessaryFallbacks(tt.targets); got != tt.want {
			t.Errorf("%s: NecessaryFallbacks() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
