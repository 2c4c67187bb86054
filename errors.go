package maply

import (
	"errors"
	"fmt"
)

// Validation errors returned by the shape constructors and the map renderer.
var (
	// ErrMissingCoords is returned when a constructor receives no usable coordinates.
	ErrMissingCoords = errors.New("maply: missing coordinates")

	// ErrNotRect is returned when a grid split is requested on a polygon
	// that was not built from an origin and size.
	ErrNotRect = errors.New("maply: polygon was not built from an origin and size")

	// ErrEmptyMap is returned when a map without any drawable geometry is rendered.
	ErrEmptyMap = errors.New("maply: nothing to draw")

	// ErrColumnLength is returned when an attribute column length does not
	// match the number of geometry rows.
	ErrColumnLength = errors.New("maply: column length does not match the number of rows")
)

// ShapeTypeError reports an element of an unsupported kind passed to one of
// the multi-shape constructors.
type ShapeTypeError struct {
	Index int
	Value interface{}
	Want  string
}

func (e *ShapeTypeError) Error() string {
	return fmt.Sprintf("maply: element %d has unsupported type %T, want %s", e.Index, e.Value, e.Want)
}
