// Package render turns a game snapshot into a frame. It only reads the
// snapshot; every draw call that fails is skipped and listed in the frame's
// Report so one bad element never costs the whole frame.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/Garsondee/Vision-Hero/internal/assets"
	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/raster"
)

// Draw errors, re-exported so callers need not import raster.
var (
	ErrOffscreen  = raster.ErrOffscreen
	ErrDegenerate = raster.ErrDegenerate
	ErrNoSprite   = raster.ErrNoSprite
)

// DrawError names the frame element a draw call failed for.
type DrawError struct {
	Element string
	Err     error
}

func (e DrawError) Error() string { return fmt.Sprintf("render %s: %v", e.Element, e.Err) }
func (e DrawError) Unwrap() error { return e.Err }

// Report lists the elements skipped while drawing one frame.
type Report struct {
	Skipped []DrawError
}

// OK is true when every element was drawn.
func (r Report) OK() bool { return len(r.Skipped) == 0 }

// Count returns how many skipped elements failed with target.
func (r Report) Count(target error) int {
	n := 0
	for _, d := range r.Skipped {
		if errors.Is(d, target) {
			n++
		}
	}
	return n
}

type spriteKind int

const (
	spriteBackground spriteKind = iota
	spriteFarmer
	spriteCrop
	spriteEnemy
)

type spriteKey struct {
	kind    spriteKind
	variant int
	w, h    int
}

// Renderer owns the frame buffer and a cache of sprites scaled to the sizes
// entities are drawn at. It is not safe for concurrent use.
type Renderer struct {
	set    *assets.Set
	frame  *image.RGBA
	canvas *raster.Canvas
	cache  map[spriteKey]*image.RGBA
	report Report
}

// New builds a renderer for a field of w×h pixels.
func New(set *assets.Set, w, h int) *Renderer {
	r := &Renderer{set: set, cache: make(map[spriteKey]*image.RGBA)}
	r.resize(w, h)
	return r
}

func (r *Renderer) resize(w, h int) {
	r.frame = image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	r.canvas = raster.NewCanvas(r.frame)
}

// Render draws s into the frame buffer. board holds optional leaderboard
// lines for the game-over panel. The returned image is reused by the next
// call.
func (r *Renderer) Render(s *game.Snapshot, board []string) (*image.RGBA, Report) {
	if b := r.frame.Bounds(); b.Dx() != s.Width || b.Dy() != s.Height {
		r.resize(s.Width, s.Height)
	}
	r.report = Report{}

	r.drawBackground(s)
	r.drawField(s)
	r.drawSuperpowerBanner(s)
	r.drawBullets(s)
	r.drawSmoke(s)
	r.drawCrops(s)
	r.drawEnemies(s)
	r.drawFarmer(s)
	r.drawHUD(s)
	r.drawNotifications(s)
	if s.GameOver {
		r.drawGameOver(s, board)
	}
	return r.frame, r.report
}

// skip records a failed draw call.
func (r *Renderer) skip(element string, err error) {
	if err != nil {
		r.report.Skipped = append(r.report.Skipped, DrawError{Element: element, Err: err})
	}
}

// sprite returns the source image for kind scaled to w×h, caching the result.
func (r *Renderer) sprite(kind spriteKind, variant, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrDegenerate
	}
	key := spriteKey{kind: kind, variant: variant, w: w, h: h}
	if img, ok := r.cache[key]; ok {
		return img, nil
	}
	src := r.source(kind, variant)
	if src == nil {
		return nil, ErrNoSprite
	}
	img := src
	if b := src.Bounds(); b.Dx() != w || b.Dy() != h {
		img = raster.Scale(src, w, h)
	}
	r.cache[key] = img
	return img, nil
}

func (r *Renderer) source(kind spriteKind, variant int) *image.RGBA {
	if r.set == nil {
		return nil
	}
	switch kind {
	case spriteBackground:
		return r.set.Background
	case spriteFarmer:
		return r.set.Farmer
	case spriteCrop:
		return r.set.Crop
	case spriteEnemy:
		if len(r.set.Enemies) == 0 {
			return nil
		}
		return r.set.Enemies[variant%len(r.set.Enemies)]
	}
	return nil
}
