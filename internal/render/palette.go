package render

import (
	"image/color"
	"math"
)

var (
	colWhite       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack       = color.RGBA{A: 255}
	colRed         = color.RGBA{R: 255, A: 255}
	colGreen       = color.RGBA{G: 255, A: 255}
	colYellow      = color.RGBA{R: 255, G: 255, A: 255}
	colAmber       = color.RGBA{R: 255, G: 200, A: 255}
	colField       = color.RGBA{R: 30, G: 120, B: 30, A: 255}
	colBarBack     = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	colTrail       = color.RGBA{R: 255, G: 100, B: 50, A: 255}
	colHUDBack     = color.RGBA{A: 128} // 50% black, premultiplied
	colGameOverDim = color.RGBA{A: 178} // 70% black
)

// fade scales a straight colour by alpha into premultiplied form.
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// timeColor escalates the clock from white to amber under 30 s and red
// under 10 s.
func timeColor(remaining float64) color.RGBA {
	switch {
	case remaining < 10:
		return colRed
	case remaining < 30:
		return colAmber
	default:
		return colWhite
	}
}

// pulse oscillates between lo and hi with the given angular step per tick.
func pulse(tick int, step, lo, hi float64) float64 {
	return lo + (hi-lo)*(0.5+0.5*math.Sin(float64(tick)*step))
}
