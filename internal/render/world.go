package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

const (
	fieldStripHeight = 50
	healthBarWidth   = 60
	healthBarHeight  = 8
	healthBarOffset  = 15 // px above the crop
	targetRingWidth  = 2
	hitBorderWidth   = 2
	attackRingRadius = 60
	attackRingWidth  = 2
)

func (r *Renderer) drawBackground(s *game.Snapshot) {
	bg, err := r.sprite(spriteBackground, 0, s.Width, s.Height)
	if err != nil {
		r.canvas.Clear(colBlack)
		r.skip("background", err)
		return
	}
	r.skip("background", r.canvas.Blit(bg, 0, 0, 1))
}

func (r *Renderer) drawField(s *game.Snapshot) {
	h := float64(s.Height)
	r.skip("field", r.canvas.FillRect(0, h-fieldStripHeight, float64(s.Width), h, colField))
}

func (r *Renderer) drawSuperpowerBanner(s *game.Snapshot) {
	if !s.SuperpowerEffect {
		return
	}
	r.skip("banner", r.canvas.TextCentered("SUPERPOWER ACTIVATED!", s.Width/2, 80, 3, colRed))
}

func (r *Renderer) drawBullets(s *game.Snapshot) {
	for i, b := range s.Bullets {
		r.skip(fmt.Sprintf("bullet[%d]", i), r.canvas.FillCircle(b.X, b.Y, b.Radius, b.Color))
	}
}

// drawSmoke shrinks each particle with its remaining life.
func (r *Renderer) drawSmoke(s *game.Snapshot) {
	for i, p := range s.Smoke {
		radius := float64(int(p.Size * p.LifeFraction()))
		if radius <= 0 {
			continue
		}
		r.skip(fmt.Sprintf("smoke[%d]", i), r.canvas.FillCircle(p.X, p.Y, radius, p.Color))
	}
}

func (r *Renderer) drawCrops(s *game.Snapshot) {
	for i, c := range s.Crops {
		if c.IsDestroyed() {
			continue
		}
		name := fmt.Sprintf("crop[%d]", i)
		x, y := int(c.X), int(c.Y)
		w, h := int(c.Width), int(c.Height)

		if c.Targeted {
			cx, cy := float64(x+w/2), float64(y+h/2)
			radius := float64(w/2 + 5 + int(3*math.Sin(float64(c.Pulse())*0.2)))
			r.skip(name+".ring", r.canvas.StrokeCircle(cx, cy, radius, targetRingWidth, colRed))
		}

		if img, err := r.sprite(spriteCrop, 0, w, h); err != nil {
			r.skip(name, err)
		} else {
			r.skip(name, r.canvas.Blit(img, x, y, 1))
		}

		// Health bar: grey track, filled in the tier colour.
		bx := float64(x + (w-healthBarWidth)/2)
		by := float64(y - healthBarOffset)
		r.skip(name+".health", r.canvas.FillRect(bx, by, bx+healthBarWidth, by+healthBarHeight, colBarBack))
		if c.MaxHealth > 0 && c.Health > 0 {
			fill := float64(int(float64(c.Health) / float64(c.MaxHealth) * healthBarWidth))
			r.skip(name+".health", r.canvas.FillRect(bx, by, bx+fill, by+healthBarHeight, c.HealthColor()))
		}

		if c.IsBeingHit() && c.HitTimer()%3 < 2 {
			r.skip(name+".hit", r.canvas.StrokeRect(float64(x), float64(y), float64(x+w), float64(y+h), hitBorderWidth, colRed))
		}
	}
}

func (r *Renderer) drawEnemies(s *game.Snapshot) {
	for _, e := range s.Enemies {
		if e.State == game.EnemyRemoved {
			continue
		}
		name := fmt.Sprintf("enemy[%d]", e.ID)
		r.drawTrail(name, e.Trail())

		size := int(e.Size)
		img, err := r.sprite(spriteEnemy, e.Variant, size, size)
		if err != nil {
			r.skip(name, err)
			continue
		}
		x, y := int(e.X), int(e.Y)
		alpha := 1 - e.DeathFraction()
		if e.IsFlashing() && e.FlashTimer()%2 == 0 {
			err = r.canvas.Silhouette(img, x, y, colWhite)
		} else {
			err = r.canvas.Blit(img, x, y, alpha)
		}
		r.skip(name, err)
	}
}

// drawTrail joins the trail points oldest first; older segments are thinner
// and more transparent.
func (r *Renderer) drawTrail(name string, pts []game.Point) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n-1; i++ {
		thickness := float64(max(1, (i+1)*3/n))
		col := fade(colTrail, 0.7*float64(i+1)/float64(n))
		p, q := pts[i], pts[i+1]
		err := r.canvas.StrokeLine(p.X, p.Y, q.X, q.Y, thickness, col)
		if errors.Is(err, ErrDegenerate) {
			// Stationary enemies repeat points.
			continue
		}
		r.skip(name+".trail", err)
	}
}

func (r *Renderer) drawFarmer(s *game.Snapshot) {
	f := s.Farmer
	if f.IsAttacking() {
		cx := float64(int(f.X + f.Width/2))
		cy := float64(int(f.Y + f.Height/2))
		r.skip("farmer.ring", r.canvas.StrokeCircle(cx, cy, attackRingRadius, attackRingWidth, colYellow))
	}
	img, err := r.sprite(spriteFarmer, 0, int(f.Width), int(f.Height))
	if err != nil {
		r.skip("farmer", err)
		return
	}
	r.skip("farmer", r.canvas.Blit(img, int(f.X), int(f.Y), 1))
}
