package game

import (
	"image/color"
	"math/rand"
)

const (
	bulletRadius = 50
	bulletLife   = 10

	smokeMinSize  = 5
	smokeMaxSize  = 15
	smokeMinLife  = 20
	smokeMaxLife  = 40
	smokeMinGrey  = 150
	smokeMaxGrey  = 200
	smokeMaxSpeed = 2.0
	smokeDrag     = 0.95
)

var (
	bulletColor           = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	superpowerBulletColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Bullet is a short-lived circular hit area placed at the aim point.
type Bullet struct {
	X, Y       float64
	Radius     float64
	Life       int
	Color      color.RGBA
	Superpower bool
}

// LifeFraction is the share of the bullet's lifetime still remaining.
func (b Bullet) LifeFraction() float64 {
	return float64(b.Life) / bulletLife
}

// SmokeParticle is one puff of a kill or impact burst.
type SmokeParticle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Life    int
	MaxLife int
	Color   color.RGBA
}

// LifeFraction scales the particle's drawn radius as it expires.
func (p SmokeParticle) LifeFraction() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// spawnSmoke appends count particles at (x, y) to ps.
func spawnSmoke(rng *rand.Rand, ps []SmokeParticle, x, y float64, count int) []SmokeParticle {
	for i := 0; i < count; i++ {
		life := smokeMinLife + rng.Intn(smokeMaxLife-smokeMinLife+1)
		grey := uint8(smokeMinGrey + rng.Intn(smokeMaxGrey-smokeMinGrey+1))
		ps = append(ps, SmokeParticle{
			X:       x,
			Y:       y,
			VX:      (rng.Float64()*2 - 1) * smokeMaxSpeed,
			VY:      (rng.Float64()*2 - 1) * smokeMaxSpeed,
			Size:    float64(smokeMinSize + rng.Intn(smokeMaxSize-smokeMinSize+1)),
			Life:    life,
			MaxLife: life,
			Color:   color.RGBA{R: grey, G: grey, B: grey, A: 255},
		})
	}
	return ps
}

// updateSmoke ages every particle and drops the expired ones in place.
func updateSmoke(ps []SmokeParticle) []SmokeParticle {
	kept := ps[:0]
	for _, p := range ps {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.VX *= smokeDrag
		p.VY *= smokeDrag
		kept = append(kept, p)
	}
	return kept
}
