package maply

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMultiPoint_Basic(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMultiPoint([]interface{}{
		NewPoint(orb.Point{0, 0}),
		orb.Point{5, 5},
		orb.Point{10, 0},
	})
	assert.NoError(err)
	assert.Equal(3, m.Members())
	assert.Len(m.Coords(), 3)
	assert.Equal("MultiPoint", string(m.Geom().GeoJSONType()))
}

func TestMultiLine_Basic(t *testing.T) {
	assert := assert.New(t)

	l, err := NewLine([]orb.Point{{0, 0}, {1, 1}})
	assert.NoError(err)

	m, err := NewMultiLine([]interface{}{
		l,
		[]orb.Point{{2, 2}, {3, 3}, {4, 4}},
	})
	assert.NoError(err)
	assert.Equal(2, m.Members())
	// The coordinates flatten across the members.
	assert.Len(m.Coords(), 5)
}

func TestMultiPolygon_Basic(t *testing.T) {
	assert := assert.New(t)

	a, err := NewRect(orb.Point{0, 0}, 2, 2)
	assert.NoError(err)
	b, err := NewRect(orb.Point{5, 5}, 2, 2)
	assert.NoError(err)

	m, err := NewMultiPolygon([]interface{}{a, b})
	assert.NoError(err)
	assert.Equal(2, m.Members())
	// Two closed rings of five coordinates each.
	assert.Len(m.Coords(), 10)
	assert.Equal(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{7, 7}}, m.Geom().Bound())
}

func TestMulti_RejectsForeignElements(t *testing.T) {
	assert := assert.New(t)

	_, err := NewMultiPoint([]interface{}{orb.Point{0, 0}, "not a point"})
	assert.Error(err)

	var typeErr *ShapeTypeError
	assert.True(errors.As(err, &typeErr))
	assert.Equal(1, typeErr.Index)

	// A point has no place in a line collection.
	_, err = NewMultiLine([]interface{}{NewPoint(orb.Point{1, 1})})
	assert.True(errors.As(err, &typeErr))
	assert.Equal(0, typeErr.Index)

	_, err = NewMultiPolygon([]interface{}{42})
	assert.True(errors.As(err, &typeErr))
}

func TestMulti_RejectsBadRawElements(t *testing.T) {
	// Raw coordinate elements go through the same validation as the
	// single-shape constructors.
	_, err := NewMultiLine([]interface{}{[]orb.Point{{1, 1}}})
	assert.True(t, errors.Is(err, ErrMissingCoords))

	_, err = NewMultiPolygon([]interface{}{[]orb.Point{{1, 1}, {2, 2}}})
	assert.True(t, errors.Is(err, ErrMissingCoords))
}

func TestMulti_Empty(t *testing.T) {
	_, err := NewMultiPoint(nil)
	assert.True(t, errors.Is(err, ErrMissingCoords))

	_, err = NewMultiLine([]interface{}{})
	assert.True(t, errors.Is(err, ErrMissingCoords))

	_, err = NewMultiPolygon(nil)
	assert.True(t, errors.Is(err, ErrMissingCoords))
}
