package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// LineHeight is the unscaled text line height in pixels.
const LineHeight = 13

// TextWidth measures s at the given scale.
func TextWidth(s string, scale float64) int {
	return int(float64(font.MeasureString(face, s).Ceil()) * scale)
}

// TextHeight is the line height at the given scale.
func TextHeight(scale float64) int {
	return int(LineHeight * scale)
}

// Text draws s with its top-left corner at (x, y). Scales other than 1 are
// rendered at native size and then nearest-neighbour scaled for a crisp
// pixel look.
func (c *Canvas) Text(s string, x, y int, scale float64, col color.Color) error {
	if s == "" || scale <= 0 {
		return ErrDegenerate
	}
	w, h := TextWidth(s, 1), LineHeight
	dr := image.Rect(x, y, x+int(float64(w)*scale), y+int(float64(h)*scale))
	if dr.Empty() {
		return ErrDegenerate
	}
	if dr.Intersect(c.Dst.Bounds()).Empty() {
		return ErrOffscreen
	}

	if scale == 1 {
		d := font.Drawer{
			Dst:  c.Dst,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(x, y+face.Ascent),
		}
		d.DrawString(s)
		return nil
	}

	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)
	xdraw.NearestNeighbor.Scale(c.Dst, dr, tmp, tmp.Bounds(), xdraw.Over, nil)
	return nil
}

// TextCentered draws s centred horizontally on cx with its top at y.
func (c *Canvas) TextCentered(s string, cx, y int, scale float64, col color.Color) error {
	return c.Text(s, cx-TextWidth(s, scale)/2, y, scale, col)
}
