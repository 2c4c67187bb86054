package maply

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// MultiPoint is a set of point coordinates.
type MultiPoint struct {
	mp    orb.MultiPoint
	attrs Attributes
}

// NewMultiPoint constructs a multi-point from a sequence of elements, each
// either an already-built *Point or a raw orb.Point coordinate. Any other
// element kind fails with a ShapeTypeError.
func NewMultiPoint(elems []interface{}, opts ...ShapeOption) (*MultiPoint, error) {
	if len(elems) == 0 {
		return nil, errors.Wrap(ErrMissingCoords, "multi-point")
	}
	so := buildOpts(opts)

	mp := make(orb.MultiPoint, 0, len(elems))
	for i, el := range elems {
		switch v := el.(type) {
		case *Point:
			mp = append(mp, v.pt)
		case orb.Point:
			mp = append(mp, v)
		default:
			return nil, &ShapeTypeError{Index: i, Value: el, Want: "*Point or orb.Point"}
		}
	}
	return &MultiPoint{mp: mp, attrs: so.attrs}, nil
}

func (m *MultiPoint) Geom() orb.Geometry  { return m.mp }
func (m *MultiPoint) Coords() []orb.Point { return m.mp }
func (m *MultiPoint) Attrs() Attributes   { return m.attrs }
func (m *MultiPoint) Frame() *GeoFrame    { return frameShape(m) }
func (m *MultiPoint) WKT() string         { return wkt.MarshalString(m.mp) }

// MultiLine is a set of open paths.
type MultiLine struct {
	mls    orb.MultiLineString
	coords []orb.Point
	attrs  Attributes
}

// NewMultiLine constructs a multi-line from a sequence of elements, each
// either an already-built *Line, a raw coordinate path or an
// orb.LineString. Any other element kind fails with a ShapeTypeError.
func NewMultiLine(elems []interface{}, opts ...ShapeOption) (*MultiLine, error) {
	if len(elems) == 0 {
		return nil, errors.Wrap(ErrMissingCoords, "multi-line")
	}
	so := buildOpts(opts)

	m := &MultiLine{mls: make(orb.MultiLineString, 0, len(elems)), attrs: so.attrs}
	for i, el := range elems {
		switch v := el.(type) {
		case *Line:
			m.append(v.ls)
		case []orb.Point:
			line, err := NewLine(v)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			m.append(line.ls)
		case orb.LineString:
			line, err := NewLine(v)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			m.append(line.ls)
		default:
			return nil, &ShapeTypeError{Index: i, Value: el, Want: "*Line or path coordinates"}
		}
	}
	return m, nil
}

func (m *MultiLine) append(ls orb.LineString) {
	m.mls = append(m.mls, ls)
	m.coords = append(m.coords, ls...)
}

func (m *MultiLine) Geom() orb.Geometry  { return m.mls }
func (m *MultiLine) Coords() []orb.Point { return m.coords }
func (m *MultiLine) Attrs() Attributes   { return m.attrs }
func (m *MultiLine) Frame() *GeoFrame    { return frameShape(m) }
func (m *MultiLine) WKT() string         { return wkt.MarshalString(m.mls) }

// MultiPolygon is a set of polygons.
type MultiPolygon struct {
	mpoly  orb.MultiPolygon
	coords []orb.Point
	attrs  Attributes
}

// NewMultiPolygon constructs a multi-polygon from a sequence of elements,
// each either an already-built *Polygon, a raw outer ring or an
// orb.Polygon. Any other element kind fails with a ShapeTypeError.
func NewMultiPolygon(elems []interface{}, opts ...ShapeOption) (*MultiPolygon, error) {
	if len(elems) == 0 {
		return nil, errors.Wrap(ErrMissingCoords, "multi-polygon")
	}
	so := buildOpts(opts)

	m := &MultiPolygon{mpoly: make(orb.MultiPolygon, 0, len(elems)), attrs: so.attrs}
	for i, el := range elems {
		switch v := el.(type) {
		case *Polygon:
			m.append(v.poly)
		case []orb.Point:
			poly, err := NewPolygon(v)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			m.append(poly.poly)
		case orb.Polygon:
			m.append(v)
		default:
			return nil, &ShapeTypeError{Index: i, Value: el, Want: "*Polygon or ring coordinates"}
		}
	}
	return m, nil
}

func (m *MultiPolygon) append(poly orb.Polygon) {
	m.mpoly = append(m.mpoly, poly)
	if len(poly) > 0 {
		m.coords = append(m.coords, poly[0]...)
	}
}

func (m *MultiPolygon) Geom() orb.Geometry  { return m.mpoly }
func (m *MultiPolygon) Coords() []orb.Point { return m.coords }
func (m *MultiPolygon) Attrs() Attributes   { return m.attrs }
func (m *MultiPolygon) Frame() *GeoFrame    { return frameShape(m) }
func (m *MultiPolygon) WKT() string         { return wkt.MarshalString(m.mpoly) }

// Members reports the number of member geometries of a multi shape.
func (m *MultiPolygon) Members() int { return len(m.mpoly) }

func (m *MultiLine) Members() int { return len(m.mls) }

func (m *MultiPoint) Members() int { return len(m.mp) }
