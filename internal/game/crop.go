package game

import "image/color"

const (
	cropSize        = 80
	cropMaxHealth   = 3
	cropHitDuration = 8  // ticks of border flash after damage
	cropPulsePeriod = 30 // target ring pulse wraps at this count
	cropRingRadius  = 250
	cropRingOffset  = -40 // ring centre sits slightly above field centre
	cropCount       = 4
)

// cropHealthColors is indexed by min(health, 2): critical, damaged, healthy.
var cropHealthColors = [3]color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
}

// CropPlot is one of the four defended plots. A destroyed plot stays in the
// engine's slice so crop indices held by enemies stay stable.
type CropPlot struct {
	X, Y      float64
	Width     float64
	Height    float64
	Health    int
	MaxHealth int

	hit      bool
	hitTimer int
	pulse    int
}

func NewCropPlot(x, y float64) CropPlot {
	return CropPlot{
		X:         x,
		Y:         y,
		Width:     cropSize,
		Height:    cropSize,
		Health:    cropMaxHealth,
		MaxHealth: cropMaxHealth,
	}
}

// Update advances the hit flash and, while targeted, the target pulse.
func (c *CropPlot) Update(targeted bool) {
	if c.hit {
		c.hitTimer++
		if c.hitTimer >= cropHitDuration {
			c.hit = false
			c.hitTimer = 0
		}
	}
	if targeted {
		c.pulse = (c.pulse + 1) % cropPulsePeriod
	}
}

// TakeDamage removes one health point and starts the hit flash. It reports
// true only for the call that takes health to zero.
func (c *CropPlot) TakeDamage() bool {
	if c.Health <= 0 {
		return false
	}
	c.Health--
	c.hit = true
	c.hitTimer = 0
	return c.Health == 0
}

// Heal restores up to n health points, capped at MaxHealth. Destroyed plots
// stay destroyed.
func (c *CropPlot) Heal(n int) {
	if c.Health <= 0 || n <= 0 {
		return
	}
	c.Health = min(c.Health+n, c.MaxHealth)
}

func (c CropPlot) IsDestroyed() bool { return c.Health <= 0 }
func (c CropPlot) IsBeingHit() bool  { return c.hit }
func (c CropPlot) HitTimer() int     { return c.hitTimer }
func (c CropPlot) Pulse() int        { return c.pulse }

func (c CropPlot) Center() (float64, float64) {
	return c.X + c.Width/2, c.Y + c.Height/2
}

// HealthColor is the tier colour for the plot's health bar.
func (c CropPlot) HealthColor() color.RGBA {
	return cropHealthColors[max(0, min(c.Health, len(cropHealthColors)-1))]
}
