package maply

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Figure is a rendered map image together with the projection that
// produced it.
type Figure struct {
	img  *image.NRGBA
	proj projection
}

// Image returns the rendered pixels.
func (f *Figure) Image() *image.NRGBA { return f.img }

// Project returns the pixel position a world coordinate was drawn at,
// useful for locating features on the rendered image.
func (f *Figure) Project(q orb.Point) (float64, float64) {
	return f.proj.project(q)
}

// Bound returns the world extent the figure covers.
func (f *Figure) Bound() orb.Bound { return f.proj.bound }

// Save writes the figure to a file, deriving the image format from the
// path extension. PNG, JPEG, GIF, TIFF and BMP are supported.
func (f *Figure) Save(path string) error {
	if err := imaging.Save(f.img, path); err != nil {
		return errors.Wrapf(err, "saving figure to %s", path)
	}
	return nil
}

// Encode writes the figure to the writer in the given format.
func (f *Figure) Encode(w io.Writer, format imaging.Format) error {
	if err := imaging.Encode(w, f.img, format); err != nil {
		return errors.Wrap(err, "encoding figure")
	}
	return nil
}
