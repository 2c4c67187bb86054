package maply

import (
	"github.com/paulmach/orb"
)

type entryKind int

const (
	entryShape entryKind = iota
	entryFrame
)

// entry is a single renderable item of a layer: a shape or an attribute
// frame, plus its optional label request.
type entry struct {
	kind       entryKind
	shape      Shape
	frame      *GeoFrame
	label      string
	labelStyle Style
}

// firstGeometry returns the geometry the legend classifier inspects: the
// shape geometry, or the first row geometry of a frame entry.
func (e *entry) firstGeometry() orb.Geometry {
	switch e.kind {
	case entryShape:
		return e.shape.Geom()
	case entryFrame:
		if e.frame.Len() > 0 {
			return e.frame.Features()[0].Geometry
		}
	}
	return nil
}

type layer struct {
	name    string
	entries []*entry
	style   Style
}

// Map is a named collection of styled layers rendered into a single figure.
// Layers keep their insertion order, both when drawing and in the legend.
type Map struct {
	Title  string
	Width  int
	Height int

	names  []string
	layers map[string]*layer
}

// MapOption configures a map at construction time.
type MapOption func(*Map)

// WithTitle sets the figure title.
func WithTitle(title string) MapOption {
	return func(m *Map) {
		m.Title = title
	}
}

// WithSize sets the figure size in pixels.
func WithSize(width, height int) MapOption {
	return func(m *Map) {
		m.Width = width
		m.Height = height
	}
}

// NewMap creates an empty map of the default 900 by 700 pixel size.
func NewMap(opts ...MapOption) *Map {
	m := &Map{
		Width:  900,
		Height: 700,
		layers: make(map[string]*layer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type addOpts struct {
	style      Style
	label      string
	labelStyle Style
}

// AddOption configures a single added entry.
type AddOption func(*addOpts)

// WithStyle merges the given keys into the layer style. Later calls
// overwrite only the keys they specify, preserving earlier keys.
func WithStyle(st Style) AddOption {
	return func(o *addOpts) {
		o.style = st
	}
}

// WithLabel requests a label for the entry: the text itself for a shape,
// the attribute column to read for a frame.
func WithLabel(text string) AddOption {
	return func(o *addOpts) {
		o.label = text
	}
}

// WithLabelStyle overrides the label text defaults for the entry.
func WithLabelStyle(st Style) AddOption {
	return func(o *addOpts) {
		o.labelStyle = st
	}
}

// layerFor returns the named layer, creating it on first use.
func (m *Map) layerFor(name string) *layer {
	if l, ok := m.layers[name]; ok {
		return l
	}
	l := &layer{name: name, style: Style{}}
	m.layers[name] = l
	m.names = append(m.names, name)
	return l
}

func (m *Map) add(e *entry, layerName string, opts []AddOption) {
	ao := &addOpts{}
	for _, opt := range opts {
		opt(ao)
	}

	l := m.layerFor(layerName)
	e.label = ao.label
	e.labelStyle = ao.labelStyle
	l.entries = append(l.entries, e)
	if ao.style != nil {
		l.style.Merge(ao.style)
	}
}

// AddShape appends a shape entry to the named layer, creating the layer if
// absent.
func (m *Map) AddShape(s Shape, layerName string, opts ...AddOption) {
	m.add(&entry{kind: entryShape, shape: s}, layerName, opts)
}

// AddFrame appends a frame entry to the named layer, creating the layer if
// absent. A label option names the attribute column whose cell value is
// drawn at each row's centroid.
func (m *Map) AddFrame(f *GeoFrame, layerName string, opts ...AddOption) {
	m.add(&entry{kind: entryFrame, frame: f}, layerName, opts)
}

// Remove deletes every shape entry whose geometry equals one of the frame's
// row geometries. Layers left without entries are dropped.
func (m *Map) Remove(f *GeoFrame) {
	geoms := f.Geometries()

	names := make([]string, len(m.names))
	copy(names, m.names)
	for _, name := range names {
		l := m.layers[name]
		kept := l.entries[:0]
		for _, e := range l.entries {
			if e.kind == entryShape && geomIn(geoms, e.shape.Geom()) {
				continue
			}
			kept = append(kept, e)
		}
		l.entries = kept
		if len(l.entries) == 0 {
			m.RemoveLayer(name)
		}
	}
}

func geomIn(geoms []orb.Geometry, g orb.Geometry) bool {
	for _, h := range geoms {
		if orb.Equal(g, h) {
			return true
		}
	}
	return false
}

// RemoveLayer drops the named layer and its entries.
func (m *Map) RemoveLayer(name string) {
	if _, ok := m.layers[name]; !ok {
		return
	}
	delete(m.layers, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}
}

// Layers returns the layer names in insertion order.
func (m *Map) Layers() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// LayerStyle returns the merged style of the named layer, nil when the
// layer does not exist.
func (m *Map) LayerStyle(name string) Style {
	if l, ok := m.layers[name]; ok {
		return l.style
	}
	return nil
}

// Len reports the total number of entries across all layers.
func (m *Map) Len() int {
	n := 0
	for _, l := range m.layers {
		n += len(l.entries)
	}
	return n
}
