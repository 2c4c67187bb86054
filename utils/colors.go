package utils

import (
	"fmt"
	"image/color"
	"strings"
)

// namedColors maps the color names accepted in style values to their RGB components.
var namedColors = map[string]color.NRGBA{
	"black":   {A: 0xff},
	"white":   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"red":     {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"green":   {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"blue":    {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"orange":  {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"purple":  {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"brown":   {R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	"pink":    {R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"gray":    {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"grey":    {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"olive":   {R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"cyan":    {R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	"magenta": {R: 0xff, B: 0xff, A: 0xff},
	"yellow":  {R: 0xff, G: 0xff, A: 0xff},
	"none":    {},
}

// ParseColor converts a style color value to its NRGBA components.
// It accepts the common color names and the #rgb, #rrggbb and #rrggbbaa
// hexadecimal notations. The name "none" yields a fully transparent color.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return color.NRGBA{}, fmt.Errorf("unknown color name: %q", s)
	}

	var r, g, b, a uint8
	a = 0xff
	var err error
	switch len(name) {
	case 4:
		_, err = fmt.Sscanf(name, "#%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 7:
		_, err = fmt.Sscanf(name, "#%02x%02x%02x", &r, &g, &b)
	case 9:
		_, err = fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// WithAlpha scales the color opacity by the [0, 1] factor.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	alpha = Clamp(alpha, 0.0, 1.0)
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}

// HexColor formats the color back to the #rrggbb notation, used when a
// terminal renderer needs a string form of the style color.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
