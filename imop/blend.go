// Package imop implements the Porter-Duff composition operations used for
// merging a rendered map layer with its backdrop.
// Porter and Duff presented in their paper 12 different composition
// operations, but the image/draw core package implements only the
// source-over-destination and source. This package is aimed to overcome the
// missing composite operations, alongside the separable blend modes a layer
// style may select to mix its colors with the layers beneath it.
package imop

import "github.com/go-maply/maply/utils"

// The supported separable blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes. An unsupported name
// leaves the current mode in place.
func (o *Blend) Set(opType string) {
	if utils.Contains(Modes(), opType) {
		o.OpType = opType
	}
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// Modes lists the supported blend modes.
func Modes() []string {
	return []string{Darken, Lighten, Multiply, Screen, Overlay}
}

// blendChannel mixes a backdrop and a source channel value according to the
// blend mode formulas of the compositing specification.
func blendChannel(mode string, cb, cs float64) float64 {
	switch mode {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	}
	return cs
}
