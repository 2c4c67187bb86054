package maply

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRender_EmptyMap(t *testing.T) {
	_, err := NewMap().Render()
	assert.True(t, errors.Is(err, ErrEmptyMap))

	// A frame without rows carries nothing drawable either.
	m := NewMap()
	m.AddFrame(NewGeoFrame(), "empty")
	_, err = m.Render()
	assert.True(t, errors.Is(err, ErrEmptyMap))
}

func TestRender_Projection(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRect(orb.Point{0, 0}, 100, 100)
	assert.NoError(err)

	m := NewMap()
	m.AddShape(r, "extent")

	fig, err := m.Render()
	assert.NoError(err)
	assert.Equal(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}, fig.Bound())

	// A 900x700 figure with a 5% margin fits a 100x100 extent at 6.3
	// pixels per unit, centered.
	x, y := fig.Project(orb.Point{50, 50})
	assert.InDelta(450, x, 1e-9)
	assert.InDelta(350, y, 1e-9)

	// World y grows upwards, pixel y downwards.
	x, y = fig.Project(orb.Point{0, 0})
	assert.InDelta(135, x, 1e-9)
	assert.InDelta(665, y, 1e-9)
}

func TestRender_SinglePointPadding(t *testing.T) {
	m := NewMap()
	m.AddShape(NewPoint(orb.Point{5, 5}), "spot")

	fig, err := m.Render()
	assert.NoError(t, err)

	// A degenerate extent still projects onto the canvas center.
	x, y := fig.Project(orb.Point{5, 5})
	assert.InDelta(t, 450, x, 1e-9)
	assert.InDelta(t, 350, y, 1e-9)
}

func TestRender_FillColor(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRect(orb.Point{0, 0}, 100, 100)
	assert.NoError(err)

	m := NewMap()
	m.AddShape(r, "area")

	fig, err := m.Render()
	assert.NoError(err)

	img := fig.Image()
	assert.Equal(900, img.Bounds().Dx())
	assert.Equal(700, img.Bounds().Dy())

	// The polygon interior carries the default fill over the white
	// backdrop, well away from the legend box.
	x, y := fig.Project(orb.Point{50, 50})
	c := img.NRGBAAt(int(x), int(y))
	assert.EqualValues(0x1f, c.R)
	assert.EqualValues(0x77, c.G)
	assert.EqualValues(0xb4, c.B)
	assert.EqualValues(0xff, c.A)

	// Outside the drawn extent the backdrop stays white.
	c = img.NRGBAAt(890, 690)
	assert.EqualValues(0xff, c.R)
	assert.EqualValues(0xff, c.G)
	assert.EqualValues(0xff, c.B)
}

func TestRender_StyleColors(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRect(orb.Point{0, 0}, 10, 10)
	assert.NoError(err)

	m := NewMap()
	m.AddShape(r, "zones", WithStyle(Style{"color": "#00ff00", "edgecolor": "none"}))

	fig, err := m.Render()
	assert.NoError(err)

	x, y := fig.Project(orb.Point{5, 5})
	c := fig.Image().NRGBAAt(int(x), int(y))
	assert.EqualValues(0x00, c.R)
	assert.EqualValues(0xff, c.G)
	assert.EqualValues(0x00, c.B)
}

func TestRender_TitleDrawn(t *testing.T) {
	r, err := NewRect(orb.Point{0, 0}, 10, 10)
	assert.NoError(t, err)

	plain := NewMap()
	plain.AddShape(r, "area")
	titled := NewMap(WithTitle("Overview"))
	titled.AddShape(r, "area")

	a, err := plain.Render()
	assert.NoError(t, err)
	b, err := titled.Render()
	assert.NoError(t, err)

	assert.False(t, bytes.Equal(a.Image().Pix, b.Image().Pix))
}

func TestRender_LabelDrawn(t *testing.T) {
	r, err := NewRect(orb.Point{0, 0}, 10, 10)
	assert.NoError(t, err)

	plain := NewMap()
	plain.AddShape(r, "area")
	labeled := NewMap()
	labeled.AddShape(r, "area", WithLabel("city block"))

	a, err := plain.Render()
	assert.NoError(t, err)
	b, err := labeled.Render()
	assert.NoError(t, err)

	assert.False(t, bytes.Equal(a.Image().Pix, b.Image().Pix))
}

func TestRender_FrameLabels(t *testing.T) {
	assert := assert.New(t)

	f := NewGeoFrame()
	f.Append(Attributes{"name": "north"}, orb.Point{0, 10})
	f.Append(Attributes{"name": "south"}, orb.Point{0, -10})

	plain := NewMap()
	plain.AddFrame(f, "zones")
	labeled := NewMap()
	labeled.AddFrame(f, "zones", WithLabel("name"))

	a, err := plain.Render()
	assert.NoError(err)
	b, err := labeled.Render()
	assert.NoError(err)

	assert.False(bytes.Equal(a.Image().Pix, b.Image().Pix))
}

func TestRender_LineLabelAnchor(t *testing.T) {
	assert := assert.New(t)

	// A line label anchors halfway along the path length, not at a vertex.
	at := labelAnchor(orb.LineString{{0, 0}, {10, 0}})
	assert.InDelta(5.0, at.X(), 1e-9)
	assert.InDelta(0.0, at.Y(), 1e-9)

	// An elbow path of two equal segments has its midpoint at the corner.
	at = labelAnchor(orb.LineString{{0, 0}, {4, 0}, {4, 4}})
	assert.InDelta(4.0, at.X(), 1e-9)
	assert.InDelta(0.0, at.Y(), 1e-9)

	// A zero length path keeps its own coordinate.
	at = labelAnchor(orb.LineString{{1, 1}, {1, 1}})
	assert.InDelta(1.0, at.X(), 1e-9)
	assert.InDelta(1.0, at.Y(), 1e-9)
}

func TestRender_LineLabelDrawn(t *testing.T) {
	l, err := NewLine([]orb.Point{{0, 0}, {10, 10}})
	assert.NoError(t, err)

	plain := NewMap()
	plain.AddShape(l, "roads")
	labeled := NewMap()
	labeled.AddShape(l, "roads", WithLabel("ring road"))

	a, err := plain.Render()
	assert.NoError(t, err)
	b, err := labeled.Render()
	assert.NoError(t, err)

	assert.False(t, bytes.Equal(a.Image().Pix, b.Image().Pix))
}

func TestRender_FrameLineLabels(t *testing.T) {
	assert := assert.New(t)

	f := NewGeoFrame()
	f.Append(Attributes{"name": "canal"}, orb.LineString{{0, 0}, {10, 0}})

	plain := NewMap()
	plain.AddFrame(f, "waterways")
	labeled := NewMap()
	labeled.AddFrame(f, "waterways", WithLabel("name"))

	a, err := plain.Render()
	assert.NoError(err)
	b, err := labeled.Render()
	assert.NoError(err)

	assert.False(bytes.Equal(a.Image().Pix, b.Image().Pix))
}

func TestRender_BlendModeLayers(t *testing.T) {
	assert := assert.New(t)

	lower, err := NewRect(orb.Point{0, 0}, 10, 10)
	assert.NoError(err)
	upper, err := NewRect(orb.Point{5, 5}, 10, 10)
	assert.NoError(err)

	m := NewMap()
	m.AddShape(lower, "base", WithStyle(Style{"color": "#ff0000", "edgecolor": "none"}))
	m.AddShape(upper, "tint", WithStyle(Style{"color": "#00ff00", "edgecolor": "none", "blend": "multiply"}))

	fig, err := m.Render()
	assert.NoError(err)

	// Where pure green multiplies over pure red every channel drops to zero.
	x, y := fig.Project(orb.Point{7.5, 7.5})
	c := fig.Image().NRGBAAt(int(x), int(y))
	assert.EqualValues(0x00, c.R)
	assert.EqualValues(0x00, c.G)
	assert.EqualValues(0x00, c.B)

	// An unknown blend mode falls back to plain alpha compositing.
	m2 := NewMap()
	m2.AddShape(lower, "base", WithStyle(Style{"color": "#ff0000", "edgecolor": "none"}))
	m2.AddShape(upper, "tint", WithStyle(Style{"color": "#00ff00", "edgecolor": "none", "blend": "sparkle"}))

	fig2, err := m2.Render()
	assert.NoError(err)
	c = fig2.Image().NRGBAAt(int(x), int(y))
	assert.EqualValues(0x00, c.R)
	assert.EqualValues(0xff, c.G)
	assert.EqualValues(0x00, c.B)
}

func TestFigure_SaveAndEncode(t *testing.T) {
	assert := assert.New(t)

	m := NewMap()
	m.AddShape(NewPoint(orb.Point{1, 1}), "spot")

	fig, err := m.Render()
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "map.png")
	assert.NoError(fig.Save(path))
	info, err := os.Stat(path)
	assert.NoError(err)
	assert.Greater(info.Size(), int64(0))

	var buf bytes.Buffer
	assert.NoError(fig.Encode(&buf, imaging.PNG))
	assert.True(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
