package maply

import (
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/resample"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/go-maply/maply/utils"
)

// screenDPI converts point sizes to pixels when rasterizing text.
const screenDPI = 100

// marginFrac leaves breathing room between the drawn extent and the figure
// edges.
const marginFrac = 0.05

// projection maps world coordinates onto the figure's pixel grid with a
// uniform scale and a flipped y axis.
type projection struct {
	bound         orb.Bound
	cx, cy        float64
	scale         float64
	width, height int
}

// newProjection fits the world bound into the figure, padding degenerate
// spans so a single point still projects onto the canvas center.
func newProjection(b orb.Bound, width, height int) projection {
	if b.Max.X() == b.Min.X() {
		b.Min[0] -= 0.5
		b.Max[0] += 0.5
	}
	if b.Max.Y() == b.Min.Y() {
		b.Min[1] -= 0.5
		b.Max[1] += 0.5
	}

	spanX := b.Max.X() - b.Min.X()
	spanY := b.Max.Y() - b.Min.Y()
	innerW := float64(width) * (1 - 2*marginFrac)
	innerH := float64(height) * (1 - 2*marginFrac)

	return projection{
		bound:  b,
		cx:     (b.Min.X() + b.Max.X()) / 2,
		cy:     (b.Min.Y() + b.Max.Y()) / 2,
		scale:  math.Min(innerW/spanX, innerH/spanY),
		width:  width,
		height: height,
	}
}

// project returns the pixel position of a world coordinate. World y grows
// upwards, pixel y downwards.
func (p projection) project(q orb.Point) (float64, float64) {
	x := float64(p.width)/2 + (q.X()-p.cx)*p.scale
	y := float64(p.height)/2 - (q.Y()-p.cy)*p.scale
	return x, y
}

// Render draws every layer in insertion order onto its own canvas,
// composites the canvases over a white backdrop honoring the layer blend
// modes, then places the legend and the title. A map without any drawable
// geometry fails with ErrEmptyMap.
func (m *Map) Render() (*Figure, error) {
	width, height := m.Width, m.Height
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 700
	}

	bound, ok := m.bound()
	if !ok {
		return nil, ErrEmptyMap
	}
	proj := newProjection(bound, width, height)

	bg := gg.NewContext(width, height)
	bg.SetColor(color.White)
	bg.Clear()
	base := newBackdrop(bg)

	for _, name := range m.names {
		l := m.layers[name]
		if len(l.entries) == 0 {
			continue
		}
		ctx := gg.NewContext(width, height)
		for _, e := range l.entries {
			m.drawEntry(ctx, proj, l, e)
		}
		compositeLayer(base, ctx, l.style.Blend())
	}

	fin := gg.NewContextForImage(base.Img)
	if err := m.drawLegend(fin); err != nil {
		return nil, err
	}
	if m.Title != "" {
		if err := m.drawTitle(fin); err != nil {
			return nil, err
		}
	}

	return &Figure{img: rasterize(fin), proj: proj}, nil
}

// bound accumulates the world bound over every drawable entry.
func (m *Map) bound() (orb.Bound, bool) {
	var b orb.Bound
	found := false
	for _, name := range m.names {
		for _, e := range m.layers[name].entries {
			var gb orb.Bound
			switch e.kind {
			case entryShape:
				gb = e.shape.Geom().Bound()
			case entryFrame:
				if e.frame.Len() == 0 {
					continue
				}
				gb = e.frame.Bound()
			}
			if !found {
				b = gb
				found = true
			} else {
				b = b.Union(gb)
			}
		}
	}
	return b, found
}

// drawEntry renders a single layer entry plus its label request.
func (m *Map) drawEntry(ctx *gg.Context, proj projection, l *layer, e *entry) {
	switch e.kind {
	case entryShape:
		drawGeometry(ctx, proj, l.style, e.shape.Geom())
		if e.label != "" {
			drawLabel(ctx, proj, e.labelStyle, e.label, labelAnchor(e.shape.Geom()))
		}
	case entryFrame:
		for _, feat := range e.frame.Features() {
			drawGeometry(ctx, proj, l.style, feat.Geometry)
		}
		if e.label == "" {
			return
		}
		for _, feat := range e.frame.Features() {
			if classify(feat.Geometry) == legendOther {
				continue
			}
			text := cellString(feat.Properties[e.label])
			if text == "" {
				continue
			}
			drawLabel(ctx, proj, e.labelStyle, text, labelAnchor(feat.Geometry))
		}
	}
}

// drawGeometry dispatches on the geometry kind. Kinds outside the point,
// line and polygon families cannot be drawn and are logged and skipped.
func drawGeometry(ctx *gg.Context, proj projection, st Style, g orb.Geometry) {
	if g == nil {
		logger.Warn("cannot plot geometry", zap.String("type", "null"))
		return
	}
	switch t := g.(type) {
	case orb.Point:
		drawPoint(ctx, proj, st, t)
	case orb.MultiPoint:
		for _, p := range t {
			drawPoint(ctx, proj, st, p)
		}
	case orb.LineString:
		drawLine(ctx, proj, st, t)
	case orb.MultiLineString:
		for _, ls := range t {
			drawLine(ctx, proj, st, ls)
		}
	case orb.Ring:
		drawPolygon(ctx, proj, st, orb.Polygon{t})
	case orb.Polygon:
		drawPolygon(ctx, proj, st, t)
	case orb.MultiPolygon:
		for _, poly := range t {
			drawPolygon(ctx, proj, st, poly)
		}
	default:
		logger.Warn("cannot plot geometry",
			zap.String("type", string(g.GeoJSONType())))
	}
}

func drawPoint(ctx *gg.Context, proj projection, st Style, p orb.Point) {
	x, y := proj.project(p)
	ctx.DrawCircle(x, y, st.PointSize())
	ctx.SetColor(styleColor(st.Color(), st.Alpha()))
	ctx.FillPreserve()
	ctx.SetColor(styleColor(st.EdgeColor(), 1))
	ctx.SetLineWidth(1)
	ctx.Stroke()
}

func drawLine(ctx *gg.Context, proj projection, st Style, ls orb.LineString) {
	if len(ls) < 2 {
		return
	}
	x, y := proj.project(ls[0])
	ctx.MoveTo(x, y)
	for _, q := range ls[1:] {
		x, y = proj.project(q)
		ctx.LineTo(x, y)
	}
	ctx.SetColor(styleColor(st.Color(), st.Alpha()))
	ctx.SetLineWidth(st.LineWidth())
	ctx.Stroke()
}

// drawPolygon fills the outer ring with the even-odd rule so interior hole
// rings stay empty, then strokes every ring with the edge color.
func drawPolygon(ctx *gg.Context, proj projection, st Style, poly orb.Polygon) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return
	}
	for _, ring := range poly {
		if len(ring) == 0 {
			continue
		}
		ctx.NewSubPath()
		x, y := proj.project(ring[0])
		ctx.MoveTo(x, y)
		for _, q := range ring[1:] {
			x, y = proj.project(q)
			ctx.LineTo(x, y)
		}
		ctx.ClosePath()
	}
	ctx.SetFillRule(gg.FillRuleEvenOdd)
	ctx.SetColor(styleColor(st.Color(), st.Alpha()))
	ctx.FillPreserve()
	ctx.SetColor(styleColor(st.EdgeColor(), 1))
	ctx.SetLineWidth(st.LineWidth())
	ctx.Stroke()
}

// drawLabel places the text at the anchor coordinate, merging the entry
// override into the label defaults.
func drawLabel(ctx *gg.Context, proj projection, override Style, text string, at orb.Point) {
	st := labelDefaults()
	if override != nil {
		st.Merge(override)
	}

	face, err := fontFace(st.FontSize(), st.Weight() == "bold")
	if err != nil {
		logger.Warn("cannot load label font", zap.Error(err))
		return
	}
	ctx.SetFontFace(face)
	ctx.SetColor(styleColor(st.str("color", "black"), 1))

	x, y := proj.project(at)
	ctx.DrawStringAnchored(text, x, y, hAnchor(st.HAlign()), vAnchor(st.VAlign()))
}

func hAnchor(ha string) float64 {
	switch ha {
	case "left":
		return 0
	case "right":
		return 1
	}
	return 0.5
}

func vAnchor(va string) float64 {
	switch va {
	case "top":
		return 1
	case "bottom":
		return 0
	}
	return 0.5
}

// labelAnchor picks the label position of a geometry: the halfway point
// along a line, the area centroid otherwise.
func labelAnchor(g orb.Geometry) orb.Point {
	if ls, ok := g.(orb.LineString); ok {
		return lineMidpoint(ls)
	}
	c, _ := planar.CentroidArea(g)
	return c
}

// lineMidpoint resamples the path to three evenly spaced coordinates, whose
// middle one sits halfway along the path length.
func lineMidpoint(ls orb.LineString) orb.Point {
	if len(ls) == 0 {
		return orb.Point{}
	}
	if len(ls) == 1 {
		return ls[0]
	}
	res := resample.Resample(ls.Clone(), planar.Distance, 3)
	if len(res) == 3 {
		return res[1]
	}
	return ls[0]
}

// drawTitle centers the title over the drawing area.
func (m *Map) drawTitle(ctx *gg.Context) error {
	face, err := fontFace(14, true)
	if err != nil {
		return errors.Wrap(err, "loading title font")
	}
	ctx.SetFontFace(face)
	ctx.SetColor(color.Black)
	ctx.DrawStringAnchored(m.Title, float64(ctx.Width())/2, 22, 0.5, 0.35)
	return nil
}

// styleColor resolves a style color name, falling back to black on colors
// the parser does not know.
func styleColor(name string, alpha float64) color.NRGBA {
	c, err := utils.ParseColor(name)
	if err != nil {
		logger.Warn("unknown style color", zap.String("color", name))
		c = color.NRGBA{A: 0xff}
	}
	if alpha < 1 {
		c = utils.WithAlpha(c, alpha)
	}
	return c
}

// cellString renders an attribute cell as label text. Cells without a
// string form yield no label.
func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

var (
	fontOnce    sync.Once
	fontRegular *sfnt.Font
	fontBold    *sfnt.Font
	fontErr     error
)

func loadFonts() {
	fontRegular, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		fontErr = errors.Wrap(fontErr, "parsing regular font")
		return
	}
	fontBold, fontErr = opentype.Parse(gobold.TTF)
	if fontErr != nil {
		fontErr = errors.Wrap(fontErr, "parsing bold font")
	}
}

// fontFace builds a scalable face of the embedded Go font at the given
// point size.
func fontFace(points float64, bold bool) (font.Face, error) {
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}
	f := fontRegular
	if bold {
		f = fontBold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     screenDPI,
		Hinting: font.HintingFull,
	})
}
