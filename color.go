package sprite

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors
var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGBA8 creates a color from 8-bit components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ClampedRGBA creates a color from integer components, clamping each to [0, 255].
func ClampedRGBA(r, g, b, a int) Color {
	return Color{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: clamp255(a)}
}

// Matches reports whether every channel of c differs from o by at most tol.
func (c Color) Matches(o Color, tol int) bool {
	return absDiff(c.R, o.R) <= tol &&
		absDiff(c.G, o.G) <= tol &&
		absDiff(c.B, o.B) <= tol &&
		absDiff(c.A, o.A) <= tol
}

// NRGBA converts c to the standard library's straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex returns "#rrggbb" for opaque colors and "#rrggbbaa" otherwise.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// FromColor converts a standard color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseColor parses a hex color ("#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// leading '#' optional) or an SVG/CSS color name such as "cornflowerblue".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(c), nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("sprite: invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("sprite: invalid color %q: %w", s, err)
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
