package maply

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/go-maply/maply/imop"
)

// rasterize converts a drawing canvas to the NRGBA form the compositor and
// the image encoders work on.
func rasterize(ctx *gg.Context) *image.NRGBA {
	return imaging.Clone(ctx.Image())
}

// newBackdrop wraps a finished canvas as the compositing backdrop.
func newBackdrop(ctx *gg.Context) *imop.Bitmap {
	return &imop.Bitmap{Img: rasterize(ctx)}
}

// compositeLayer merges a layer canvas into the backdrop. A recognized
// blend mode premixes the layer colors with the backdrop before the
// source-over composition; an unknown mode is logged and ignored.
func compositeLayer(base *imop.Bitmap, layerCtx *gg.Context, mode string) {
	var blend *imop.Blend
	if mode != "" {
		blend = imop.NewBlend()
		blend.Set(mode)
		if blend.Get() == "" {
			logger.Warn("unknown blend mode", zap.String("blend", mode))
			blend = nil
		}
	}
	comp := imop.InitOp()
	comp.Draw(base, rasterize(layerCtx), blend)
}
