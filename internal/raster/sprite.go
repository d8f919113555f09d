package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// clipBlit computes the destination rectangle and matching source point for
// drawing src with its top-left at (x, y).
func (c *Canvas) clipBlit(src image.Image, x, y int) (image.Rectangle, image.Point, error) {
	if src == nil {
		return image.Rectangle{}, image.Point{}, ErrNoSprite
	}
	b := src.Bounds()
	if b.Empty() {
		return image.Rectangle{}, image.Point{}, ErrDegenerate
	}
	dr := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	clipped := dr.Intersect(c.Dst.Bounds())
	if clipped.Empty() {
		return image.Rectangle{}, image.Point{}, ErrOffscreen
	}
	sp := b.Min.Add(clipped.Min.Sub(dr.Min))
	return clipped, sp, nil
}

// Blit composites src over the canvas at (x, y), scaled by alpha in [0, 1].
func (c *Canvas) Blit(src image.Image, x, y int, alpha float64) error {
	dr, sp, err := c.clipBlit(src, x, y)
	if err != nil {
		return err
	}
	if alpha >= 1 {
		draw.Draw(c.Dst, dr, src, sp, draw.Over)
		return nil
	}
	if alpha <= 0 {
		return nil
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha * 255)})
	draw.DrawMask(c.Dst, dr, src, sp, mask, image.Point{}, draw.Over)
	return nil
}

// Silhouette paints col through src's alpha channel: a solid-colour copy of
// the sprite's shape.
func (c *Canvas) Silhouette(src image.Image, x, y int, col color.Color) error {
	dr, sp, err := c.clipBlit(src, x, y)
	if err != nil {
		return err
	}
	draw.DrawMask(c.Dst, dr, image.NewUniform(col), image.Point{}, src, sp, draw.Over)
	return nil
}
