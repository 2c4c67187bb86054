package maply

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestMap_LayerOrder(t *testing.T) {
	assert := assert.New(t)

	m := NewMap()
	m.AddShape(NewPoint(orb.Point{0, 0}), "roads")
	m.AddShape(NewPoint(orb.Point{1, 1}), "buildings")
	m.AddShape(NewPoint(orb.Point{2, 2}), "roads")

	// Layers keep their first-seen order, entries accumulate per layer.
	assert.Equal([]string{"roads", "buildings"}, m.Layers())
	assert.Equal(3, m.Len())
	assert.Len(m.layers["roads"].entries, 2)
}

func TestMap_StyleAccumulates(t *testing.T) {
	assert := assert.New(t)

	m := NewMap()
	m.AddShape(NewPoint(orb.Point{0, 0}), "parks", WithStyle(Style{"color": "green"}))
	m.AddShape(NewPoint(orb.Point{1, 1}), "parks", WithStyle(Style{"edgecolor": "black", "alpha": 0.4}))

	st := m.LayerStyle("parks")
	assert.Equal("green", st.Color())
	assert.Equal("black", st.EdgeColor())
	assert.Equal(0.4, st.Alpha())

	assert.Nil(m.LayerStyle("no such layer"))
}

func TestMap_Options(t *testing.T) {
	m := NewMap(WithTitle("districts"), WithSize(400, 300))
	assert.Equal(t, "districts", m.Title)
	assert.Equal(t, 400, m.Width)
	assert.Equal(t, 300, m.Height)

	assert.Equal(t, 900, NewMap().Width)
	assert.Equal(t, 700, NewMap().Height)
}

func TestMap_Labels(t *testing.T) {
	assert := assert.New(t)

	m := NewMap()
	m.AddShape(NewPoint(orb.Point{0, 0}), "stations",
		WithLabel("central"),
		WithLabelStyle(Style{"fontsize": 14}),
	)

	e := m.layers["stations"].entries[0]
	assert.Equal("central", e.label)
	assert.Equal(14.0, e.labelStyle.FontSize())
}

func TestMap_AddFrame(t *testing.T) {
	assert := assert.New(t)

	f := NewGeoFrame()
	f.Append(Attributes{"name": "north"}, orb.Point{0, 10})
	f.Append(Attributes{"name": "south"}, orb.Point{0, -10})

	m := NewMap()
	m.AddFrame(f, "zones", WithLabel("name"))

	assert.Equal(1, m.Len())
	e := m.layers["zones"].entries[0]
	assert.Equal(entryFrame, e.kind)
	assert.Equal("name", e.label)
}

func TestMap_Remove(t *testing.T) {
	assert := assert.New(t)

	keep := NewPoint(orb.Point{0, 0})
	drop := NewPoint(orb.Point{9, 9})

	m := NewMap()
	m.AddShape(keep, "layer")
	m.AddShape(drop, "layer")
	assert.Equal(2, m.Len())

	m.Remove(drop.Frame())
	assert.Equal(1, m.Len())
	assert.Equal([]string{"layer"}, m.Layers())

	// Removing the last entry drops the layer itself.
	m.Remove(keep.Frame())
	assert.Equal(0, m.Len())
	assert.Empty(m.Layers())
}

func TestMap_RemoveLayer(t *testing.T) {
	m := NewMap()
	m.AddShape(NewPoint(orb.Point{0, 0}), "a")
	m.AddShape(NewPoint(orb.Point{1, 1}), "b")

	m.RemoveLayer("a")
	assert.Equal(t, []string{"b"}, m.Layers())

	// Unknown layers are ignored.
	m.RemoveLayer("a")
	assert.Equal(t, []string{"b"}, m.Layers())
}

func TestMap_RemoveKeepsFrameEntries(t *testing.T) {
	assert := assert.New(t)

	f := NewGeoFrame()
	f.Append(nil, orb.Point{5, 5})

	m := NewMap()
	m.AddFrame(f, "frames")
	m.AddShape(NewPoint(orb.Point{5, 5}), "shapes")

	// Remove matches shape entries only, frame entries stay.
	m.Remove(f)
	assert.Equal([]string{"frames"}, m.Layers())
	assert.Equal(1, m.Len())
}
