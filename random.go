package maply

import (
	"math/rand/v2"
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Shape kinds accepted by Random.
const (
	KindPoint   = "point"
	KindLine    = "line"
	KindPolygon = "polygon"
)

// DefaultBounds is the coordinate range used for random shapes when the
// caller has no particular extent in mind.
var DefaultBounds = orb.Bound{Max: orb.Point{100, 100}}

// maxHullTries bounds the retries against degenerate random picks.
const maxHullTries = 100

var rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

// Seed makes the random shape generator deterministic.
func Seed(seed uint64) {
	rng = rand.New(rand.NewPCG(seed, seed))
}

// Random generates a shape of the given kind with integer coordinates drawn
// uniformly from bounds: a point, a line of two to five coordinates, or a
// polygon formed by the convex hull of three to six coordinates. An empty
// kind picks one of the three uniformly; any other kind fails with a
// ShapeTypeError.
func Random(kind string, bounds orb.Bound) (Shape, error) {
	kinds := []string{KindPoint, KindLine, KindPolygon}
	if kind == "" {
		kind = kinds[rng.IntN(len(kinds))]
	}

	switch kind {
	case KindPoint:
		return NewPoint(randPoint(bounds)), nil
	case KindLine:
		n := 2 + rng.IntN(4) // 2 to 5 coordinates
		pts := make([]orb.Point, n)
		for i := range pts {
			pts[i] = randPoint(bounds)
		}
		return NewLine(pts)
	case KindPolygon:
		return randPolygon(bounds)
	}
	return nil, &ShapeTypeError{Value: kind, Want: "point, line or polygon"}
}

func randPoint(bounds orb.Bound) orb.Point {
	return orb.Point{
		randCoord(bounds.Min.X(), bounds.Max.X()),
		randCoord(bounds.Min.Y(), bounds.Max.Y()),
	}
}

// randCoord draws an integer coordinate from the [min, max] interval.
func randCoord(min, max float64) float64 {
	lo, hi := int(min), int(max)
	if hi <= lo {
		return float64(lo)
	}
	return float64(lo + rng.IntN(hi-lo+1))
}

// randPolygon builds the convex hull of three to six random coordinates,
// retrying whenever collinear picks collapse the hull below a triangle.
func randPolygon(bounds orb.Bound) (*Polygon, error) {
	for try := 0; try < maxHullTries; try++ {
		n := 3 + rng.IntN(4) // 3 to 6 coordinates
		pts := make([]orb.Point, n)
		for i := range pts {
			pts[i] = randPoint(bounds)
		}
		hull := ConvexHull(pts)
		if len(hull) >= 4 {
			return NewPolygon(hull)
		}
	}
	return nil, errors.Wrap(ErrMissingCoords, "bounds too small for a random polygon")
}

// ConvexHull returns the smallest convex ring containing the given points,
// computed with the monotone chain algorithm. The ring is counter-clockwise
// and closed. Inputs with fewer than three distinct, non-collinear points
// return fewer than four coordinates.
func ConvexHull(points []orb.Point) []orb.Point {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] == pts[j][0] {
			return pts[i][1] < pts[j][1]
		}
		return pts[i][0] < pts[j][0]
	})

	uniq := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	var lower []orb.Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []orb.Point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// The two chains share their endpoints, so dropping the last coordinate
	// of the lower chain yields a single closed ring.
	return append(lower[:len(lower)-1], upper...)
}
