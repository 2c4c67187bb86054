package maply

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// GeoFrame is a row-oriented attribute table with a geometry column. Rows
// are GeoJSON features: the attribute cells live in the feature properties
// and the geometry column in the feature geometry.
type GeoFrame struct {
	columns  []string
	features []*geojson.Feature
}

// NewGeoFrame creates an empty frame with the given attribute columns.
// Appending rows carrying additional attribute fields extends the column set.
func NewGeoFrame(cols ...string) *GeoFrame {
	f := &GeoFrame{}
	f.columns = append(f.columns, cols...)
	return f
}

// frameShape converts a shape to its single-row frame.
func frameShape(s Shape) *GeoFrame {
	f := NewGeoFrame()
	f.Append(s.Attrs(), s.Geom())
	return f
}

// FrameShapes builds a frame with one row per shape from column-oriented
// data. Every column must hold exactly one cell per shape; the columns are
// laid out in lexical order.
func FrameShapes(data map[string][]interface{}, shapes ...Shape) (*GeoFrame, error) {
	names := make([]string, 0, len(data))
	for name, cells := range data {
		if len(cells) != len(shapes) {
			return nil, errors.Wrapf(ErrColumnLength,
				"column %q has %d cells for %d shapes", name, len(cells), len(shapes))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	f := NewGeoFrame(names...)
	for i, s := range shapes {
		attrs := Attributes{}
		for _, name := range names {
			attrs[name] = data[name][i]
		}
		f.Append(attrs, s.Geom())
	}
	return f, nil
}

// Append adds a row with the given attribute cells and geometry.
func (f *GeoFrame) Append(attrs Attributes, geom orb.Geometry) {
	feat := geojson.NewFeature(geom)
	for k, v := range attrs {
		feat.Properties[k] = v
	}
	f.features = append(f.features, feat)
	f.extendColumns(feat.Properties)
}

// extendColumns records attribute fields not seen before, in lexical order.
func (f *GeoFrame) extendColumns(props geojson.Properties) {
	seen := make(map[string]bool, len(f.columns))
	for _, c := range f.columns {
		seen[c] = true
	}
	added := make([]string, 0, len(props))
	for k := range props {
		if !seen[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	f.columns = append(f.columns, added...)
}

// Len reports the number of rows.
func (f *GeoFrame) Len() int { return len(f.features) }

// Columns returns the attribute column names in their frame order.
func (f *GeoFrame) Columns() []string {
	cols := make([]string, len(f.columns))
	copy(cols, f.columns)
	return cols
}

// Features exposes the underlying feature rows.
func (f *GeoFrame) Features() []*geojson.Feature { return f.features }

// Geometries returns the geometry column.
func (f *GeoFrame) Geometries() []orb.Geometry {
	geoms := make([]orb.Geometry, 0, len(f.features))
	for _, feat := range f.features {
		geoms = append(geoms, feat.Geometry)
	}
	return geoms
}

// Union combines the geometry column into a single geometry: the geometry
// itself for a single row, a collection otherwise. It returns nil for an
// empty frame.
func (f *GeoFrame) Union() orb.Geometry {
	geoms := f.Geometries()
	switch len(geoms) {
	case 0:
		return nil
	case 1:
		return geoms[0]
	}
	return orb.Collection(geoms)
}

// Centroid locates the geometric center of the geometry column: the
// area-weighted mean of the row centroids, or their plain mean when no row
// encloses any area. An empty frame yields the zero point.
func (f *GeoFrame) Centroid() orb.Point {
	var wx, wy, area float64
	var sx, sy float64
	n := 0
	for _, g := range f.Geometries() {
		if g == nil {
			continue
		}
		c, a := planar.CentroidArea(g)
		if math.IsNaN(c.X()) || math.IsNaN(c.Y()) {
			continue
		}
		wx += c.X() * a
		wy += c.Y() * a
		area += a
		sx += c.X()
		sy += c.Y()
		n++
	}
	if area > 0 {
		return orb.Point{wx / area, wy / area}
	}
	if n > 0 {
		return orb.Point{sx / float64(n), sy / float64(n)}
	}
	return orb.Point{}
}

// Bound returns the bounding box around all row geometries.
func (f *GeoFrame) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, g := range f.Geometries() {
		if g == nil {
			continue
		}
		if first {
			b = g.Bound()
			first = false
			continue
		}
		b = b.Union(g.Bound())
	}
	return b
}

// MarshalGeoJSON encodes the frame as a GeoJSON feature collection.
func (f *GeoFrame) MarshalGeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	fc.Features = f.features
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "encoding feature collection")
	}
	return data, nil
}

// UnmarshalGeoFrame decodes a GeoJSON feature collection into a frame.
func UnmarshalGeoFrame(data []byte) (*GeoFrame, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "decoding feature collection")
	}
	f := NewGeoFrame()
	for _, feat := range fc.Features {
		f.features = append(f.features, feat)
		f.extendColumns(feat.Properties)
	}
	return f, nil
}
