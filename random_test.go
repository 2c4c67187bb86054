package maply

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRandom_Point(t *testing.T) {
	Seed(1)

	for range 25 {
		s, err := Random(KindPoint, DefaultBounds)
		assert.NoError(t, err)

		p, ok := s.(*Point)
		assert.True(t, ok)
		assert.True(t, DefaultBounds.Contains(p.Geom().(orb.Point)))
	}
}

func TestRandom_LineCoordCount(t *testing.T) {
	Seed(2)

	for range 25 {
		s, err := Random(KindLine, DefaultBounds)
		assert.NoError(t, err)

		coords := s.Coords()
		assert.GreaterOrEqual(t, len(coords), 2)
		assert.LessOrEqual(t, len(coords), 5)
		for _, c := range coords {
			assert.True(t, DefaultBounds.Contains(c))
		}
	}
}

func TestRandom_PolygonIsConvexHull(t *testing.T) {
	assert := assert.New(t)
	Seed(3)

	for range 25 {
		s, err := Random(KindPolygon, DefaultBounds)
		assert.NoError(err)

		ring := s.Geom().(orb.Polygon)[0]
		assert.True(ring.Closed())
		assert.GreaterOrEqual(len(ring), 4)
		assert.Greater(planar.Area(s.Geom()), 0.0)
		for _, c := range ring {
			assert.True(DefaultBounds.Contains(c))
		}
	}
}

func TestRandom_IntegerCoords(t *testing.T) {
	Seed(4)

	s, err := Random(KindLine, DefaultBounds)
	assert.NoError(t, err)
	for _, c := range s.Coords() {
		assert.Equal(t, float64(int(c.X())), c.X())
		assert.Equal(t, float64(int(c.Y())), c.Y())
	}
}

func TestRandom_PicksAKind(t *testing.T) {
	Seed(5)

	seen := map[string]bool{}
	for range 100 {
		s, err := Random("", DefaultBounds)
		assert.NoError(t, err)

		switch s.(type) {
		case *Point:
			seen[KindPoint] = true
		case *Line:
			seen[KindLine] = true
		case *Polygon:
			seen[KindPolygon] = true
		default:
			t.Fatalf("unexpected shape type %T", s)
		}
	}
	// A hundred draws should hit all three kinds.
	assert.Len(t, seen, 3)
}

func TestRandom_UnknownKind(t *testing.T) {
	_, err := Random("blob", DefaultBounds)
	assert.Error(t, err)

	var typeErr *ShapeTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestRandom_Deterministic(t *testing.T) {
	Seed(42)
	a, err := Random(KindPolygon, DefaultBounds)
	assert.NoError(t, err)

	Seed(42)
	b, err := Random(KindPolygon, DefaultBounds)
	assert.NoError(t, err)

	assert.True(t, orb.Equal(a.Geom(), b.Geom()))
}

func TestConvexHull(t *testing.T) {
	assert := assert.New(t)

	hull := ConvexHull([]orb.Point{
		{0, 0}, {4, 0}, {4, 4}, {0, 4},
		{2, 2}, // interior, must not survive
	})
	assert.Len(hull, 5)
	assert.Equal(hull[0], hull[len(hull)-1])
	assert.NotContains(hull, orb.Point{2, 2})

	// Collinear input collapses below a triangle.
	degenerate := ConvexHull([]orb.Point{{0, 0}, {1, 1}, {2, 2}})
	assert.Less(len(degenerate), 4)
}
