// Package raster draws shapes, sprites and text onto an *image.RGBA. Every
// call clips to the destination and reports, rather than panics on, shapes
// it cannot draw.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

var (
	// ErrOffscreen means the shape lies entirely outside the canvas.
	ErrOffscreen = errors.New("raster: shape is offscreen")
	// ErrDegenerate means the shape has no area (zero or negative size).
	ErrDegenerate = errors.New("raster: degenerate shape")
	// ErrNoSprite means a blit was asked to draw a nil image.
	ErrNoSprite = errors.New("raster: no sprite")
)

// Canvas wraps a destination image and a reusable rasterizer.
type Canvas struct {
	Dst *image.RGBA
	z   *vector.Rasterizer
}

func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{Dst: dst, z: vector.NewRasterizer(1, 1)}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.Dst.Bounds() }

// Clear fills the whole canvas, replacing what was there.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.Dst, c.Dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// shapeRect is the integer bounding box of a float box, clipped to the
// canvas. It also returns the unclipped box for path offsets.
func (c *Canvas) shapeRect(x0, y0, x1, y1 float64) (full, clipped image.Rectangle, err error) {
	if !(x1 > x0) || !(y1 > y0) || math.IsNaN(x0+y0+x1+y1) {
		return image.Rectangle{}, image.Rectangle{}, ErrDegenerate
	}
	full = image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	clipped = full.Intersect(c.Dst.Bounds())
	if clipped.Empty() {
		return full, clipped, ErrOffscreen
	}
	return full, clipped, nil
}

// fillPath rasterizes the closed polygons into a coverage mask the size of
// full, then composites col through it onto the clipped part of the canvas.
// Overlapping rings with opposite winding cancel out.
func (c *Canvas) fillPath(full, clipped image.Rectangle, col color.Color, polys ...[]pt) {
	c.z.Reset(full.Dx(), full.Dy())
	ox, oy := float64(full.Min.X), float64(full.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		c.z.MoveTo(float32(poly[0].x-ox), float32(poly[0].y-oy))
		for _, p := range poly[1:] {
			c.z.LineTo(float32(p.x-ox), float32(p.y-oy))
		}
		c.z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, full.Dx(), full.Dy()))
	c.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.Dst, clipped, image.NewUniform(col), image.Point{}, mask, clipped.Min.Sub(full.Min), draw.Over)
}

type pt struct{ x, y float64 }

// circleSegments picks a polygon resolution that looks round at radius r.
func circleSegments(r float64) int {
	return int(math.Max(16, math.Min(96, r*0.75)))
}

func ellipsePoly(cx, cy, rx, ry float64, reverse bool) []pt {
	n := circleSegments(math.Max(rx, ry))
	poly := make([]pt, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		if reverse {
			a = -a
		}
		poly[i] = pt{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	return poly
}

// FillCircle draws a solid disc.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) error {
	return c.FillEllipse(cx, cy, r, r, col)
}

// FillEllipse draws a solid axis-aligned ellipse.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col color.Color) error {
	full, clipped, err := c.shapeRect(cx-rx, cy-ry, cx+rx, cy+ry)
	if err != nil {
		return err
	}
	c.fillPath(full, clipped, col, ellipsePoly(cx, cy, rx, ry, false))
	return nil
}

// StrokeCircle draws a ring of the given width centred on radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.Color) error {
	if width <= 0 || r <= 0 {
		return ErrDegenerate
	}
	outer := r + width/2
	inner := math.Max(0, r-width/2)
	full, clipped, err := c.shapeRect(cx-outer, cy-outer, cx+outer, cy+outer)
	if err != nil {
		return err
	}
	if inner == 0 {
		c.fillPath(full, clipped, col, ellipsePoly(cx, cy, outer, outer, false))
		return nil
	}
	// The reversed inner ring cancels the outer winding, leaving a hole.
	c.fillPath(full, clipped, col, ellipsePoly(cx, cy, outer, outer, false), ellipsePoly(cx, cy, inner, inner, true))
	return nil
}

// FillRect fills the box [x0,x1)×[y0,y1) with alpha blending.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, col color.Color) error {
	_, clipped, err := c.shapeRect(x0, y0, x1, y1)
	if err != nil {
		return err
	}
	draw.Draw(c.Dst, clipped, image.NewUniform(col), image.Point{}, draw.Over)
	return nil
}

// StrokeRect outlines a box with lines of the given width drawn inside it.
func (c *Canvas) StrokeRect(x0, y0, x1, y1, width float64, col color.Color) error {
	if width <= 0 {
		return ErrDegenerate
	}
	if _, _, err := c.shapeRect(x0, y0, x1, y1); err != nil {
		return err
	}
	w := math.Min(width, math.Min(x1-x0, y1-y0)/2)
	// Edges may be individually offscreen; only the whole box matters.
	_ = c.FillRect(x0, y0, x1, y0+w, col)
	_ = c.FillRect(x0, y1-w, x1, y1, col)
	_ = c.FillRect(x0, y0+w, x0+w, y1-w, col)
	_ = c.FillRect(x1-w, y0+w, x1, y1-w, col)
	return nil
}

// StrokeLine draws a segment of the given width as a quad.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.Color) error {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return ErrDegenerate
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	quad := []pt{{x0 + nx, y0 + ny}, {x1 + nx, y1 + ny}, {x1 - nx, y1 - ny}, {x0 - nx, y0 - ny}}
	minX, minY, maxX, maxY := bbox(quad)
	full, clipped, err := c.shapeRect(minX, minY, maxX, maxY)
	if err != nil {
		return err
	}
	c.fillPath(full, clipped, col, quad)
	return nil
}

func bbox(ps []pt) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range ps {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return
}
