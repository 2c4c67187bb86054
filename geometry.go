package maply

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// Attributes holds the tabular attribute fields attached to a shape.
type Attributes map[string]interface{}

// Shape is the common interface of the 2-D vector geometries. A shape wraps
// its coordinate list, optional attribute data and the geometry derived from
// them. Shapes are immutable once constructed: the derived geometry can
// always be recomputed from the coordinates alone.
type Shape interface {
	// Geom returns the derived geometry.
	Geom() orb.Geometry

	// Coords returns the defining coordinates: a single element for a
	// point, the path for a line, the outer ring for a polygon and the
	// flattened member coordinates for the multi variants. The returned
	// slice is shared and must be treated as read-only.
	Coords() []orb.Point

	// Attrs returns the attribute fields set at construction time.
	Attrs() Attributes

	// Frame converts the shape to a single-row GeoFrame carrying the
	// attribute fields plus the derived geometry.
	Frame() *GeoFrame

	// WKT returns the well-known-text form of the derived geometry.
	WKT() string
}

type shapeOpts struct {
	attrs Attributes
	holes [][]orb.Point
}

// ShapeOption configures a shape at construction time.
type ShapeOption func(*shapeOpts)

// WithAttrs attaches attribute fields to the shape.
func WithAttrs(attrs Attributes) ShapeOption {
	return func(o *shapeOpts) {
		o.attrs = attrs
	}
}

// WithHoles adds interior rings to a polygon. The option is ignored by the
// non-polygon constructors.
func WithHoles(rings ...[]orb.Point) ShapeOption {
	return func(o *shapeOpts) {
		o.holes = append(o.holes, rings...)
	}
}

func buildOpts(opts []ShapeOption) *shapeOpts {
	so := &shapeOpts{}
	for _, opt := range opts {
		opt(so)
	}
	if so.attrs == nil {
		so.attrs = Attributes{}
	}
	return so
}

// Point is a single 2-D coordinate.
type Point struct {
	pt    orb.Point
	attrs Attributes
}

// NewPoint constructs a point shape at the given coordinate.
func NewPoint(pt orb.Point, opts ...ShapeOption) *Point {
	so := buildOpts(opts)
	return &Point{pt: pt, attrs: so.attrs}
}

func (p *Point) Geom() orb.Geometry  { return p.pt }
func (p *Point) Coords() []orb.Point { return []orb.Point{p.pt} }
func (p *Point) Attrs() Attributes   { return p.attrs }
func (p *Point) Frame() *GeoFrame    { return frameShape(p) }
func (p *Point) WKT() string         { return wkt.MarshalString(p.pt) }

// Line is an open path through two or more coordinates.
type Line struct {
	ls    orb.LineString
	attrs Attributes
}

// NewLine constructs a line shape through the given path. At least two
// coordinates are required.
func NewLine(pts []orb.Point, opts ...ShapeOption) (*Line, error) {
	if len(pts) < 2 {
		return nil, errors.Wrap(ErrMissingCoords, "a line needs at least two coordinates")
	}
	so := buildOpts(opts)
	ls := make(orb.LineString, len(pts))
	copy(ls, pts)
	return &Line{ls: ls, attrs: so.attrs}, nil
}

func (l *Line) Geom() orb.Geometry  { return l.ls }
func (l *Line) Coords() []orb.Point { return l.ls }
func (l *Line) Attrs() Attributes   { return l.attrs }
func (l *Line) Frame() *GeoFrame    { return frameShape(l) }
func (l *Line) WKT() string         { return wkt.MarshalString(l.ls) }

// Polygon is a closed ring with optional interior hole rings. A polygon
// built from an origin and size through NewRect additionally supports grid
// splitting.
type Polygon struct {
	poly  orb.Polygon
	attrs Attributes

	// rectangle bookkeeping, set only by NewRect
	isRect        bool
	origin        orb.Point
	width, height float64
}

// NewPolygon constructs a polygon from its outer ring. Open rings are closed
// automatically. Interior rings are added with WithHoles.
func NewPolygon(ring []orb.Point, opts ...ShapeOption) (*Polygon, error) {
	if len(ring) == 0 {
		return nil, errors.Wrap(ErrMissingCoords, "polygon")
	}
	if len(ring) < 3 {
		return nil, errors.Wrap(ErrMissingCoords, "a polygon ring needs at least three coordinates")
	}
	so := buildOpts(opts)

	poly := orb.Polygon{closeRing(ring)}
	for _, hole := range so.holes {
		poly = append(poly, closeRing(hole))
	}
	return &Polygon{poly: poly, attrs: so.attrs}, nil
}

// NewRect constructs an axis-aligned rectangle polygon from its lower-left
// origin and size. The result supports SplitGrid.
func NewRect(origin orb.Point, width, height float64, opts ...ShapeOption) (*Polygon, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrMissingCoords, "rectangle size %gx%g", width, height)
	}
	ring := []orb.Point{
		origin,
		{origin.X() + width, origin.Y()},
		{origin.X() + width, origin.Y() + height},
		{origin.X(), origin.Y() + height},
	}
	p, err := NewPolygon(ring, opts...)
	if err != nil {
		return nil, err
	}
	p.isRect = true
	p.origin = origin
	p.width = width
	p.height = height
	return p, nil
}

// SplitGrid partitions a rectangle polygon into rows by cols equal
// sub-rectangles, returned in row-major order. Each sub-rectangle keeps the
// rectangle bookkeeping, so the result can be split again. Polygons not
// built through NewRect cannot be split.
func (p *Polygon) SplitGrid(rows, cols int) ([]*Polygon, error) {
	if !p.isRect {
		return nil, ErrNotRect
	}
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrNotRect, "invalid grid %dx%d", rows, cols)
	}

	subW := p.width / float64(cols)
	subH := p.height / float64(rows)

	grid := make([]*Polygon, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			origin := orb.Point{
				p.origin.X() + float64(col)*subW,
				p.origin.Y() + float64(row)*subH,
			}
			sub, err := NewRect(origin, subW, subH)
			if err != nil {
				return nil, err
			}
			grid = append(grid, sub)
		}
	}
	return grid, nil
}

func (p *Polygon) Geom() orb.Geometry  { return p.poly }
func (p *Polygon) Coords() []orb.Point { return p.poly[0] }
func (p *Polygon) Attrs() Attributes   { return p.attrs }
func (p *Polygon) Frame() *GeoFrame    { return frameShape(p) }
func (p *Polygon) WKT() string         { return wkt.MarshalString(p.poly) }

// closeRing copies the coordinates into a ring, appending the first
// coordinate when the ring is open.
func closeRing(pts []orb.Point) orb.Ring {
	ring := make(orb.Ring, len(pts), len(pts)+1)
	copy(ring, pts)
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}
