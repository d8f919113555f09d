package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale resamples src to w×h with Catmull-Rom filtering.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
