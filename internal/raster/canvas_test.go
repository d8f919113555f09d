package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func newTestCanvas(w, h int) *Canvas {
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, w, h)))
	c.Clear(black)
	return c
}

func TestFillCircle_CoversCentreNotCorner(t *testing.T) {
	c := newTestCanvas(100, 100)
	if err := c.FillCircle(50, 50, 20, red); err != nil {
		t.Fatal(err)
	}
	if got := c.Dst.RGBAAt(50, 50); got != red {
		t.Fatalf("centre should be red, got %v", got)
	}
	if got := c.Dst.RGBAAt(50+19, 50+19); got != black {
		t.Fatalf("bbox corner should be untouched, got %v", got)
	}
}

func TestFillCircle_PartiallyOffscreenClips(t *testing.T) {
	c := newTestCanvas(50, 50)
	if err := c.FillCircle(0, 0, 20, red); err != nil {
		t.Fatalf("partially visible circle should draw: %v", err)
	}
	if got := c.Dst.RGBAAt(2, 2); got != red {
		t.Fatalf("visible part should be drawn, got %v", got)
	}
}

func TestFillCircle_Offscreen(t *testing.T) {
	c := newTestCanvas(50, 50)
	if err := c.FillCircle(-100, -100, 10, red); !errors.Is(err, ErrOffscreen) {
		t.Fatalf("expected ErrOffscreen, got %v", err)
	}
	if err := c.FillCircle(10, 10, 0, red); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}
}

func TestStrokeCircle_LeavesHole(t *testing.T) {
	c := newTestCanvas(100, 100)
	if err := c.StrokeCircle(50, 50, 30, 4, red); err != nil {
		t.Fatal(err)
	}
	if got := c.Dst.RGBAAt(50, 50); got != black {
		t.Fatalf("ring centre should stay empty, got %v", got)
	}
	if got := c.Dst.RGBAAt(80, 50); got.R < 200 {
		t.Fatalf("ring edge should be red, got %v", got)
	}
}

func TestFillRect_AlphaBlends(t *testing.T) {
	c := newTestCanvas(10, 10)
	half := color.RGBA{R: 128, A: 128} // premultiplied 50% red
	if err := c.FillRect(0, 0, 10, 10, half); err != nil {
		t.Fatal(err)
	}
	got := c.Dst.RGBAAt(5, 5)
	if got.R < 126 || got.R > 130 || got.A != 255 {
		t.Fatalf("expected ~50%% red over black, got %v", got)
	}
}

func TestStrokeLine_Degenerate(t *testing.T) {
	c := newTestCanvas(10, 10)
	if err := c.StrokeLine(5, 5, 5, 5, 2, red); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("zero-length line should be degenerate, got %v", err)
	}
	if err := c.StrokeLine(0, 5, 10, 5, 2, red); err != nil {
		t.Fatal(err)
	}
	if got := c.Dst.RGBAAt(5, 5); got != red {
		t.Fatalf("line pixel should be red, got %v", got)
	}
}

func TestBlit_ClipsAtEdges(t *testing.T) {
	c := newTestCanvas(20, 20)
	sprite := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			sprite.SetRGBA(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), A: 255})
		}
	}
	if err := c.Blit(sprite, -5, -5, 1); err != nil {
		t.Fatal(err)
	}
	// Canvas (0,0) shows sprite pixel (5,5).
	if got := c.Dst.RGBAAt(0, 0); got.R != 100 || got.G != 100 {
		t.Fatalf("expected sprite pixel (5,5), got %v", got)
	}
	if err := c.Blit(sprite, 50, 50, 1); !errors.Is(err, ErrOffscreen) {
		t.Fatalf("expected ErrOffscreen, got %v", err)
	}
	if err := c.Blit(nil, 0, 0, 1); !errors.Is(err, ErrNoSprite) {
		t.Fatalf("expected ErrNoSprite, got %v", err)
	}
}

func TestBlit_AlphaFade(t *testing.T) {
	c := newTestCanvas(4, 4)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	if err := c.Blit(src, 0, 0, 0.5); err != nil {
		t.Fatal(err)
	}
	got := c.Dst.RGBAAt(1, 1)
	if got.R < 120 || got.R > 135 {
		t.Fatalf("half alpha white over black should be mid grey, got %v", got)
	}
}

func TestSilhouette_UsesSpriteShape(t *testing.T) {
	c := newTestCanvas(4, 4)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 1, color.RGBA{R: 10, A: 255})
	if err := c.Silhouette(src, 0, 0, white); err != nil {
		t.Fatal(err)
	}
	if got := c.Dst.RGBAAt(1, 1); got != white {
		t.Fatalf("opaque sprite pixel should turn white, got %v", got)
	}
	if got := c.Dst.RGBAAt(2, 2); got != black {
		t.Fatalf("transparent sprite pixel should leave the canvas, got %v", got)
	}
}

func TestText_DrawsAndScales(t *testing.T) {
	c := newTestCanvas(200, 60)
	if err := c.Text("SCORE", 2, 2, 1, white); err != nil {
		t.Fatal(err)
	}
	if err := c.Text("X", 100, 10, 3, red); err != nil {
		t.Fatal(err)
	}
	lit := 0
	for y := 10; y < 10+TextHeight(3); y++ {
		for x := 100; x < 100+TextWidth("X", 3); x++ {
			if c.Dst.RGBAAt(x, y).R > 200 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("scaled glyph drew nothing")
	}
	if err := c.Text("gone", 500, 500, 1, white); !errors.Is(err, ErrOffscreen) {
		t.Fatalf("expected ErrOffscreen, got %v", err)
	}
}

func TestScale_Size(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 7, 3))
	dst := Scale(src, 40, 20)
	if dst.Bounds().Dx() != 40 || dst.Bounds().Dy() != 20 {
		t.Fatalf("unexpected size %v", dst.Bounds())
	}
}
