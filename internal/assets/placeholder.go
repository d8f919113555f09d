package assets

import (
	"image"
	"image/color"

	"github.com/Garsondee/Vision-Hero/internal/raster"
)

var (
	skyColor     = color.RGBA{R: 100, G: 180, B: 230, A: 255}
	fieldColor   = color.RGBA{R: 50, G: 190, B: 100, A: 255}
	sunColor     = color.RGBA{R: 255, G: 200, B: 80, A: 255}
	cloudColor   = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	soilColor    = color.RGBA{R: 100, G: 170, B: 50, A: 255}
	stalkColor   = color.RGBA{R: 30, G: 120, B: 20, A: 255}
	leafColor    = color.RGBA{R: 50, G: 200, B: 20, A: 255}
	invaderColor = color.RGBA{R: 255, A: 255}
)

// PlaceholderBackground paints sky over the top two thirds, a field below,
// a sun and three clouds.
func PlaceholderBackground(w, h int) *image.RGBA {
	c := raster.NewCanvas(image.NewRGBA(image.Rect(0, 0, w, h)))
	c.Clear(skyColor)
	horizon := float64(h) * 2 / 3
	_ = c.FillRect(0, horizon, float64(w), float64(h), fieldColor)
	_ = c.FillCircle(100, 100, 60, sunColor)
	_ = c.FillEllipse(300, 150, 100, 40, cloudColor)
	_ = c.FillEllipse(500, 100, 120, 50, cloudColor)
	_ = c.FillEllipse(800, 180, 150, 60, cloudColor)
	return c.Dst
}

// PlaceholderFarmer is a 120 px figure: body block and round head.
func PlaceholderFarmer() *image.RGBA {
	c := raster.NewCanvas(image.NewRGBA(image.Rect(0, 0, 120, 120)))
	_ = c.FillRect(40, 40, 81, 91, invaderColor)
	_ = c.FillCircle(60, 30, 20, invaderColor)
	return c.Dst
}

// PlaceholderCrop is an opaque 80 px soil tile with a plant.
func PlaceholderCrop() *image.RGBA {
	c := raster.NewCanvas(image.NewRGBA(image.Rect(0, 0, 80, 80)))
	c.Clear(soilColor)
	_ = c.FillRect(20, 40, 61, 71, stalkColor)
	_ = c.FillRect(30, 20, 51, 41, leafColor)
	return c.Dst
}

// PlaceholderEnemy is an 80 px transparent tile with a red disc.
func PlaceholderEnemy() *image.RGBA {
	c := raster.NewCanvas(image.NewRGBA(image.Rect(0, 0, 80, 80)))
	_ = c.FillCircle(40, 40, 30, invaderColor)
	return c.Dst
}
