package maply

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

type legendKind int

const (
	legendPolygon legendKind = iota
	legendLine
	legendPoint
	legendOther
)

// classify maps a geometry onto the legend proxy drawn for its layer.
// Kinds outside the three families fall back to the patch proxy.
func classify(g orb.Geometry) legendKind {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon, orb.Ring:
		return legendPolygon
	case orb.LineString, orb.MultiLineString:
		return legendLine
	case orb.Point, orb.MultiPoint:
		return legendPoint
	}
	return legendOther
}

type legendItem struct {
	name string
	kind legendKind
	fill color.NRGBA
	edge color.NRGBA
}

// legendItems builds one proxy per layer in insertion order. The proxy kind
// comes from the layer's first entry, which keeps a mixed layer under a
// single symbol.
func (m *Map) legendItems() []legendItem {
	var items []legendItem
	for _, name := range m.names {
		l := m.layers[name]
		if len(l.entries) == 0 {
			continue
		}
		items = append(items, legendItem{
			name: name,
			kind: classify(l.entries[0].firstGeometry()),
			fill: styleColor(l.style.Color(), 1),
			edge: styleColor(l.style.EdgeColor(), 1),
		})
	}
	return items
}

// Legend box geometry.
const (
	legendMargin  = 10.0
	legendPad     = 8.0
	legendRow     = 18.0
	legendSwatchW = 22.0
	legendSwatchH = 12.0
	legendGap     = 6.0
)

// drawLegend paints the legend box in the upper left corner of the figure.
func (m *Map) drawLegend(ctx *gg.Context) error {
	items := m.legendItems()
	if len(items) == 0 {
		return nil
	}

	face, err := fontFace(10, false)
	if err != nil {
		return errors.Wrap(err, "loading legend font")
	}
	ctx.SetFontFace(face)

	maxW := 0.0
	for _, it := range items {
		if w, _ := ctx.MeasureString(it.name); w > maxW {
			maxW = w
		}
	}
	boxW := legendPad*2 + legendSwatchW + legendGap + maxW
	boxH := legendPad*2 + legendRow*float64(len(items))

	ctx.SetColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xeb})
	ctx.DrawRectangle(legendMargin, legendMargin, boxW, boxH)
	ctx.FillPreserve()
	ctx.SetColor(color.NRGBA{R: 0x78, G: 0x78, B: 0x78, A: 0xff})
	ctx.SetLineWidth(1)
	ctx.Stroke()

	for i, it := range items {
		x := legendMargin + legendPad
		y := legendMargin + legendPad + legendRow*float64(i) + legendRow/2

		switch it.kind {
		case legendLine:
			ctx.SetColor(it.fill)
			ctx.SetLineWidth(2)
			ctx.DrawLine(x, y, x+legendSwatchW, y)
			ctx.Stroke()
		case legendPoint:
			ctx.SetColor(it.fill)
			ctx.DrawCircle(x+legendSwatchW/2, y, 4)
			ctx.Fill()
		default:
			ctx.SetColor(it.fill)
			ctx.DrawRectangle(x, y-legendSwatchH/2, legendSwatchW, legendSwatchH)
			ctx.FillPreserve()
			ctx.SetColor(it.edge)
			ctx.SetLineWidth(1)
			ctx.Stroke()
		}

		ctx.SetColor(color.Black)
		ctx.DrawStringAnchored(it.name, x+legendSwatchW+legendGap, y, 0, 0.35)
	}
	return nil
}
