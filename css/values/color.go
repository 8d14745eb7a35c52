package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"cssc/css/compat"
	"cssc/css/printer"
)

// ColorSpace identifies the notation a color was written in.
type ColorSpace uint8

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceP3
	ColorSpaceLab
	ColorSpaceOKLab
)

// Color is a parsed color value. Component meaning depends on Space:
// sRGB and display-p3 store red/green/blue in 0..1, the Lab spaces store
// lightness plus the a/b axes.
type Color struct {
	Space      ColorSpace
	C0, C1, C2 float64
	Alpha      float64
}

// ParseColor parses a color from the stream: hex, rgb()/rgba(), lab(),
// oklab() or color(display-p3 ...).
func ParseColor(s *TokenStream) (Color, error) {
	t, ok := s.Next()
	if !ok {
		return Color{}, fmt.Errorf("%w: expected color", ErrUnexpectedToken)
	}
	switch t.Type {
	case css.HashToken:
		return parseHexColor(t.Data)
	case css.FunctionToken:
		switch strings.ToLower(strings.TrimSuffix(t.Data, "(")) {
		case "rgb", "rgba":
			return parseRGBFunc(s)
		case "lab":
			return parseLabFunc(s, ColorSpaceLab)
		case "oklab":
			return parseLabFunc(s, ColorSpaceOKLab)
		case "color":
			return parseColorFunc(s)
		}
	}
	return Color{}, fmt.Errorf("%w: expected color, got %q", ErrUnexpectedToken, t.Data)
}

func parseHexColor(data string) (Color, error) {
	hex := strings.TrimPrefix(data, "#")
	var r, g, b, a uint64
	a = 255
	var err error
	switch len(hex) {
	case 3, 4:
		if r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 16); err != nil {
			break
		}
		if g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 16); err != nil {
			break
		}
		if b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 16); err != nil {
			break
		}
		if len(hex) == 4 {
			a, err = strconv.ParseUint(strings.Repeat(hex[3:4], 2), 16, 16)
		}
	case 6, 8:
		if r, err = strconv.ParseUint(hex[0:2], 16, 16); err != nil {
			break
		}
		if g, err = strconv.ParseUint(hex[2:4], 16, 16); err != nil {
			break
		}
		if b, err = strconv.ParseUint(hex[4:6], 16, 16); err != nil {
			break
		}
		if len(hex) == 8 {
			a, err = strconv.ParseUint(hex[6:8], 16, 16)
		}
	default:
		err = fmt.Errorf("bad length")
	}
	if err != nil {
		return Color{}, fmt.Errorf("%w: bad hex color %q", ErrUnexpectedToken, data)
	}
	return Color{
		Space: ColorSpaceSRGB,
		C0:    float64(r) / 255, C1: float64(g) / 255, C2: float64(b) / 255,
		Alpha: float64(a) / 255,
	}, nil
}

// component parses one numeric color component, accepting numbers and
// percentages; percentages are scaled by pctScale.
func component(s *TokenStream, pctScale float64) (float64, error) {
	t, ok := s.Next()
	if !ok {
		return 0, fmt.Errorf("%w: expected color component", ErrUnexpectedToken)
	}
	switch t.Type {
	case css.NumberToken:
		return strconv.ParseFloat(t.Data, 64)
	case css.PercentageToken:
		v, _, err := SplitDimension(t.Data)
		return v / 100 * pctScale, err
	}
	return 0, fmt.Errorf("%w: bad color component %q", ErrUnexpectedToken, t.Data)
}

// maybeAlpha consumes an optional `/ <alpha>` or `, <alpha>` tail.
func maybeAlpha(s *TokenStream) (float64, error) {
	t, ok := s.Peek()
	if !ok {
		return 1, nil
	}
	if t.Type == css.DelimToken && t.Data == "/" || t.Type == css.CommaToken {
		s.Next()
		return component(s, 1)
	}
	return 1, nil
}

func parseRGBFunc(s *TokenStream) (Color, error) {
	var c [3]float64
	for i := range c {
		if i > 0 {
			if t, ok := s.Peek(); ok && t.Type == css.CommaToken {
				s.Next()
			}
		}
		v, err := component(s, 255)
		if err != nil {
			return Color{}, err
		}
		c[i] = v / 255
	}
	alpha, err := maybeAlpha(s)
	if err != nil {
		return Color{}, err
	}
	if err := s.ExpectCloseParen(); err != nil {
		return Color{}, err
	}
	return Color{Space: ColorSpaceSRGB, C0: c[0], C1: c[1], C2: c[2], Alpha: alpha}, nil
}

func parseLabFunc(s *TokenStream, space ColorSpace) (Color, error) {
	lScale := 100.0
	if space == ColorSpaceOKLab {
		lScale = 1.0
	}
	l, err := component(s, lScale)
	if err != nil {
		return Color{}, err
	}
	a, err := component(s, 125)
	if err != nil {
		return Color{}, err
	}
	b, err := component(s, 125)
	if err != nil {
		return Color{}, err
	}
	alpha, err := maybeAlpha(s)
	if err != nil {
		return Color{}, err
	}
	if err := s.ExpectCloseParen(); err != nil {
		return Color{}, err
	}
	return Color{Space: space, C0: l, C1: a, C2: b, Alpha: alpha}, nil
}

func parseColorFunc(s *TokenStream) (Color, error) {
	ident, err := s.ExpectIdent()
	if err != nil {
		return Color{}, err
	}
	if !strings.EqualFold(ident, "display-p3") {
		return Color{}, fmt.Errorf("%w: unsupported color space %q", ErrUnexpectedToken, ident)
	}
	var c [3]float64
	for i := range c {
		if c[i], err = component(s, 1); err != nil {
			return Color{}, err
		}
	}
	alpha, err := maybeAlpha(s)
	if err != nil {
		return Color{}, err
	}
	if err := s.ExpectCloseParen(); err != nil {
		return Color{}, err
	}
	return Color{Space: ColorSpaceP3, C0: c[0], C1: c[1], C2: c[2], Alpha: alpha}, nil
}

// NecessaryFallbacks returns the representations the configured targets
// require for this color.
func (c Color) NecessaryFallbacks(b compat.Browsers) compat.ColorFallback {
	switch c.Space {
	case ColorSpaceP3:
		return compat.P3FallbacksFor(b)
	case ColorSpaceLab, ColorSpaceOKLab:
		return compat.LabFallbacksFor(b)
	default:
		return 0
	}
}

// ToFallback converts the color to the representation named by kind.
func (c Color) ToFallback(kind compat.ColorFallback) Color {
	switch kind {
	case compat.FallbackP3:
		if c.Space == ColorSpaceP3 {
			return c
		}
		x, y, z := c.toXYZ()
		r, g, b := xyzToLinearP3(x, y, z)
		return Color{Space: ColorSpaceP3, C0: gam(clamp01(r)), C1: gam(clamp01(g)), C2: gam(clamp01(b)), Alpha: c.Alpha}
	case compat.FallbackLAB:
		if c.Space == ColorSpaceLab {
			return c
		}
		x, y, z := c.toXYZ()
		l, a, bb := xyzToLab(x, y, z)
		return Color{Space: ColorSpaceLab, C0: l, C1: a, C2: bb, Alpha: c.Alpha}
	default:
		if c.Space == ColorSpaceSRGB {
			return c
		}
		x, y, z := c.toXYZ()
		r, g, b := xyzToLinearSRGB(x, y, z)
		return Color{Space: ColorSpaceSRGB, C0: gam(clamp01(r)), C1: gam(clamp01(g)), C2: gam(clamp01(b)), Alpha: c.Alpha}
	}
}

// Equal implements Value.
func (c Color) Equal(other Value) bool {
	o, ok := other.(Color)
	return ok && c == o
}

// ToCSS implements Value.
func (c Color) ToCSS(p *printer.Printer) error {
	switch c.Space {
	case ColorSpaceSRGB:
		return c.writeSRGB(p)
	case ColorSpaceP3:
		return c.writeComponents(p, "color(display-p3 ", c.C0, c.C1, c.C2)
	case ColorSpaceLab:
		if err := p.WriteString("lab(" + FormatNumber(round4(c.C0), p.Minify) + "%"); err != nil {
			return err
		}
		return c.writeTail(p, c.C1, c.C2)
	default:
		if err := p.WriteString("oklab(" + FormatNumber(round4(c.C0), p.Minify)); err != nil {
			return err
		}
		return c.writeTail(p, c.C1, c.C2)
	}
}

func (c Color) writeSRGB(p *printer.Printer) error {
	r := int(math.Round(clamp01(c.C0) * 255))
	g := int(math.Round(clamp01(c.C1) * 255))
	b := int(math.Round(clamp01(c.C2) * 255))
	if c.Alpha < 1 {
		return p.WriteString(fmt.Sprintf("rgba(%d,%s%d,%s%d,%s%s)",
			r, sp(p), g, sp(p), b, sp(p), FormatNumber(round4(c.Alpha), p.Minify)))
	}
	hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	if hex[1] == hex[2] && hex[3] == hex[4] && hex[5] == hex[6] {
		hex = "#" + string(hex[1]) + string(hex[3]) + string(hex[5])
	}
	return p.WriteString(hex)
}

func (c Color) writeComponents(p *printer.Printer, head string, v ...float64) error {
	if err := p.WriteString(head); err != nil {
		return err
	}
	for i, f := range v {
		if i > 0 {
			if err := p.WriteByte(' '); err != nil {
				return err
			}
		}
		if err := p.WriteString(FormatNumber(round4(f), p.Minify)); err != nil {
			return err
		}
	}
	if c.Alpha < 1 {
		if err := p.WriteString(sp(p) + "/" + sp(p) + FormatNumber(round4(c.Alpha), p.Minify)); err != nil {
			return err
		}
	}
	return p.WriteByte(')')
}

func (c Color) writeTail(p *printer.Printer, a, b float64) error {
	for _, f := range [...]float64{a, b} {
		if err := p.WriteString(" " + FormatNumber(round4(f), p.Minify)); err != nil {
			return err
		}
	}
	if c.Alpha < 1 {
		if err := p.WriteString(sp(p) + "/" + sp(p) + FormatNumber(round4(c.Alpha), p.Minify)); err != nil {
			return err
		}
	}
	return p.WriteByte(')')
}

func sp(p *printer.Printer) string {
	if p.Minify {
		return ""
	}
	return " "
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// sRGB / display-p3 transfer function.
func lin(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func gam(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// D50 reference white used by CIELAB per the CSS color specification.
var d50 = [3]float64{0.3457 / 0.3585, 1, (1 - 0.3457 - 0.3585) / 0.3585}

func mul3(m [3][3]float64, a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

var (
	srgbToXYZ = [3][3]float64{
		{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
		{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
		{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
	}
	xyzToSRGB = [3][3]float64{
		{3.2409699419045226, -1.537383177570094, -0.4986107602930034},
		{-0.9692436362808796, 1.8759675015077202, 0.04155505740717559},
		{0.05563007969699366, -0.20397695888897652, 1.0569715142428786},
	}
	p3ToXYZ = [3][3]float64{
		{0.4865709486482162, 0.26566769316909306, 0.19821728523436247},
		{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
		{0, 0.04511338185890264, 1.043944368900976},
	}
	xyzToP3 = [3][3]float64{
		{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
		{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
		{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
	}
	d50ToD65 = [3][3]float64{
		{0.9554734527042182, -0.023098536874261423, 0.0632593086610217},
		{-0.028369706963208136, 1.0099954580058226, 0.021041398966943008},
		{0.012314001688319899, -0.020507696433477912, 1.3303659366080753},
	}
	d65ToD50 = [3][3]float64{
		{1.0479298208405488, 0.022946793341019088, -0.05019222954313557},
		{0.029627815688159344, 0.990434484573249, -0.01707382502938514},
		{-0.009243058152591178, 0.015055144896577895, 0.7518742899580008},
	}
	oklabLMSToXYZ = [3][3]float64{
		{1.2268798733741557, -0.5578149965554813, 0.28139105017721583},
		{-0.04057576262431372, 1.1122868293970594, -0.07171106666151701},
		{-0.07637294974672142, -0.4214933239627914, 1.5869240244272418},
	}
)

// toXYZ returns the color in CIE XYZ with a D65 white point.
func (c Color) toXYZ() (float64, float64, float64) {
	switch c.Space {
	case ColorSpaceSRGB:
		return mul3(srgbToXYZ, lin(c.C0), lin(c.C1), lin(c.C2))
	case ColorSpaceP3:
		return mul3(p3ToXYZ, lin(c.C0), lin(c.C1), lin(c.C2))
	case ColorSpaceLab:
		x, y, z := labToXYZD50(c.C0, c.C1, c.C2)
		return mul3(d50ToD65, x, y, z)
	default:
		return oklabToXYZ(c.C0, c.C1, c.C2)
	}
}

func xyzToLinearSRGB(x, y, z float64) (float64, float64, float64) {
	return mul3(xyzToSRGB, x, y, z)
}

func xyzToLinearP3(x, y, z float64) (float64, float64, float64) {
	return mul3(xyzToP3, x, y, z)
}

const (
	labEps   = 216.0 / 24389.0
	labKappa = 24389.0 / 27.0
)

func labToXYZD50(l, a, b float64) (float64, float64, float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	f := func(t float64) float64 {
		if t3 := t * t * t; t3 > labEps {
			return t3
		}
		return (116*t - 16) / labKappa
	}
	return f(fx) * d50[0], f(fy) * d50[1], f(fz) * d50[2]
}

func xyzToLab(x, y, z float64) (float64, float64, float64) {
	xd, yd, zd := mul3(d65ToD50, x, y, z)
	f := func(t float64) float64 {
		if t > labEps {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16) / 116
	}
	fx, fy, fz := f(xd/d50[0]), f(yd/d50[1]), f(zd/d50[2])
	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

func oklabToXYZ(l, a, b float64) (float64, float64, float64) {
	l2 := l + 0.3963377774*a + 0.2158037573*b
	m2 := l - 0.1055613458*a - 0.0638541728*b
	s2 := l - 0.0894841775*a - 1.2914855480*b
	return mul3(oklabLMSToXYZ, l2*l2*l2, m2*m2*m2, s2*s2*s2)
}
