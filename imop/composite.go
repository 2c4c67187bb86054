package imop

import (
	"image"
	"image/color"
)

// The supported Porter-Duff composition operations.
const (
	Copy    = "copy"
	SrcOver = "src-over"
	DstOver = "dst-over"
	SrcIn   = "src-in"
	DstIn   = "dst-in"
	SrcOut  = "src-out"
	DstOut  = "dst-out"
	SrcAtop = "src-atop"
	DstAtop = "dst-atop"
	Xor     = "xor"
)

// Bitmap wraps the backdrop image the composition operations draw onto.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap initializes a fully transparent backdrop of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// fraction holds the source and backdrop weights of a composition
// operation, each a function of the source and backdrop alphas.
type fraction struct {
	fs func(as, ab float64) float64
	fb func(as, ab float64) float64
}

var (
	one  = func(as, ab float64) float64 { return 1 }
	zero = func(as, ab float64) float64 { return 0 }
	srcA = func(as, ab float64) float64 { return as }
	dstA = func(as, ab float64) float64 { return ab }
	invS = func(as, ab float64) float64 { return 1 - as }
	invD = func(as, ab float64) float64 { return 1 - ab }
)

// fractions implements the alpha composition formula co = Fs*as*cs + Fb*ab*cb.
var fractions = map[string]fraction{
	Copy:    {fs: one, fb: zero},
	SrcOver: {fs: one, fb: invS},
	DstOver: {fs: invD, fb: one},
	SrcIn:   {fs: dstA, fb: zero},
	DstIn:   {fs: zero, fb: srcA},
	SrcOut:  {fs: invD, fb: zero},
	DstOut:  {fs: zero, fb: invS},
	SrcAtop: {fs: dstA, fb: invS},
	DstAtop: {fs: invD, fb: srcA},
	Xor:     {fs: invD, fb: invS},
}

// Composite applies one of the supported composition operations when
// merging a source image into a backdrop.
type Composite struct {
	current string
}

// InitOp initializes the default source-over composition.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates one of the supported composition operations. An
// unsupported name leaves the current operation in place.
func (op *Composite) Set(cop string) {
	if _, ok := fractions[cop]; ok {
		op.current = cop
	}
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Ops lists the supported composition operations.
func Ops() []string {
	return []string{
		Copy,
		SrcOver,
		DstOver,
		SrcIn,
		DstIn,
		SrcOut,
		DstOut,
		SrcAtop,
		DstAtop,
		Xor,
	}
}

// Draw merges the source image into the backdrop in place, applying the
// active composition operation pixel by pixel over the overlapping region.
// A non-nil blend first mixes each source channel with its backdrop
// counterpart through the active blend mode.
func (op *Composite) Draw(dst *Bitmap, src *image.NRGBA, blend *Blend) {
	fr, ok := fractions[op.current]
	if !ok {
		return
	}

	bounds := dst.Img.Bounds().Intersect(src.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			d := dst.Img.NRGBAAt(x, y)

			asn := float64(s.A) / 255
			abn := float64(d.A) / 255

			rsn, gsn, bsn := float64(s.R)/255, float64(s.G)/255, float64(s.B)/255
			rbn, gbn, bbn := float64(d.R)/255, float64(d.G)/255, float64(d.B)/255

			if blend != nil && blend.Get() != "" {
				// The backdrop shines through the blended source in
				// proportion to its own coverage.
				rsn = (1-abn)*rsn + abn*blendChannel(blend.Get(), rbn, rsn)
				gsn = (1-abn)*gsn + abn*blendChannel(blend.Get(), gbn, gsn)
				bsn = (1-abn)*bsn + abn*blendChannel(blend.Get(), bbn, bsn)
			}

			fs, fb := fr.fs(asn, abn), fr.fb(asn, abn)

			an := asn*fs + abn*fb
			var rn, gn, bn float64
			if an > 0 {
				rn = (fs*asn*rsn + fb*abn*rbn) / an
				gn = (fs*asn*gsn + fb*abn*gbn) / an
				bn = (fs*asn*bsn + fb*abn*bbn) / an
			}

			dst.Img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rn*255 + 0.5),
				G: uint8(gn*255 + 0.5),
				B: uint8(bn*255 + 0.5),
				A: uint8(an*255 + 0.5),
			})
		}
	}
}
