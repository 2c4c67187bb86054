package maply

import (
	"github.com/spf13/cast"
)

// Style holds free-form rendering options for a layer or a label, keyed by
// option name. Unset options fall back to the rendering defaults exposed by
// the typed getters.
type Style map[string]interface{}

// Merge copies the other style's keys over s and returns s. Keys absent
// from other keep their earlier values.
func (s Style) Merge(other Style) Style {
	for k, v := range other {
		s[k] = v
	}
	return s
}

// Clone returns an independent copy of the style.
func (s Style) Clone() Style {
	c := make(Style, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Color returns the fill color name, blue unless set.
func (s Style) Color() string {
	return s.str("color", "blue")
}

// EdgeColor returns the outline color name, black unless set.
func (s Style) EdgeColor() string {
	return s.str("edgecolor", "black")
}

// Alpha returns the fill opacity, opaque unless set.
func (s Style) Alpha() float64 {
	return s.num("alpha", 1.0)
}

// LineWidth returns the stroke width in pixels.
func (s Style) LineWidth() float64 {
	return s.num("linewidth", 2.0)
}

// PointSize returns the point marker radius in pixels.
func (s Style) PointSize() float64 {
	return s.num("pointsize", 4.0)
}

// Blend returns the layer blend mode name, empty for plain alpha
// compositing.
func (s Style) Blend() string {
	return s.str("blend", "")
}

// FontSize returns the label text size in points.
func (s Style) FontSize() float64 {
	return s.num("fontsize", 10.0)
}

// Weight returns the label font weight.
func (s Style) Weight() string {
	return s.str("weight", "normal")
}

// HAlign returns the horizontal label anchor, one of left, center or right.
func (s Style) HAlign() string {
	return s.str("ha", "center")
}

// VAlign returns the vertical label anchor, one of top, center or bottom.
func (s Style) VAlign() string {
	return s.str("va", "center")
}

func (s Style) str(key, def string) string {
	if v, ok := s[key]; ok {
		if str, err := cast.ToStringE(v); err == nil && str != "" {
			return str
		}
	}
	return def
}

func (s Style) num(key string, def float64) float64 {
	if v, ok := s[key]; ok {
		if n, err := cast.ToFloat64E(v); err == nil {
			return n
		}
	}
	return def
}

// labelDefaults returns the label text defaults: centered on the anchor,
// ten point bold black type.
func labelDefaults() Style {
	return Style{
		"ha":       "center",
		"va":       "center",
		"fontsize": 10,
		"color":    "black",
		"weight":   "bold",
	}
}
