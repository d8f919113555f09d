package game

import "math"

const (
	farmerSize           = 120
	farmerMoveDuration   = 10  // ticks for one hop-and-return
	farmerMoveStep       = 3.0 // px per tick during the outbound half
	farmerAttackDuration = 5
	superpowerDuration   = 300 // ~10 s at 30 fps
	superpowerMultiplier = 3.0
)

// Direction is the facing used by the farmer's move animation.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

func (d Direction) delta() (float64, float64) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Farmer is the player avatar. Position is the top-left corner of its square.
type Farmer struct {
	X, Y   float64
	Width  float64
	Height float64

	fieldW, fieldH float64

	// anchor is where a move animation returns to.
	anchorX, anchorY float64

	moving    bool
	moveTimer int
	moveDir   Direction

	attacking   bool
	attackTimer int

	superpower      bool
	superpowerTimer int
	Multiplier      float64
}

// NewFarmer places the farmer centred on a field of the given size.
func NewFarmer(fieldW, fieldH float64) Farmer {
	f := Farmer{
		Width:      farmerSize,
		Height:     farmerSize,
		fieldW:     fieldW,
		fieldH:     fieldH,
		Multiplier: superpowerMultiplier,
	}
	f.X = fieldW/2 - f.Width/2
	f.Y = fieldH/2 - f.Height/2
	f.anchorX, f.anchorY = f.X, f.Y
	return f
}

// Update advances the move, attack and superpower timers by one tick.
func (f *Farmer) Update() {
	if f.moving {
		f.moveTimer++
		half := float64(farmerMoveDuration) / 2
		switch {
		case float64(f.moveTimer) < half:
			dx, dy := f.moveDir.delta()
			f.X += dx * farmerMoveStep
			f.Y += dy * farmerMoveStep
		case f.moveTimer < farmerMoveDuration:
			k := 1 - (float64(f.moveTimer)-half)/half
			f.X = f.anchorX + (f.X-f.anchorX)*k
			f.Y = f.anchorY + (f.Y-f.anchorY)*k
		default:
			f.moving = false
			f.moveTimer = 0
			f.X, f.Y = f.anchorX, f.anchorY
		}
	}

	if f.attacking {
		f.attackTimer++
		if f.attackTimer >= farmerAttackDuration {
			f.attacking = false
			f.attackTimer = 0
		}
	}

	if f.superpower {
		f.superpowerTimer++
		if f.superpowerTimer >= superpowerDuration {
			f.superpower = false
			f.superpowerTimer = 0
		}
	}
}

// SetPosition moves the farmer, clamped so the whole sprite stays on the
// field, and makes the new position the animation anchor.
func (f *Farmer) SetPosition(x, y float64) {
	f.X = math.Max(0, math.Min(x, f.fieldW-f.Width))
	f.Y = math.Max(0, math.Min(y, f.fieldH-f.Height))
	f.anchorX, f.anchorY = f.X, f.Y
}

// StartMoveAnimation begins a hop in dir. Ignored while a hop is running.
func (f *Farmer) StartMoveAnimation(dir Direction) {
	if f.moving {
		return
	}
	f.moving = true
	f.moveTimer = 0
	f.moveDir = dir
	f.anchorX, f.anchorY = f.X, f.Y
}

func (f *Farmer) StartAttackAnimation() {
	f.attacking = true
	f.attackTimer = 0
}

// ActivateSuperpower arms the superpower; cooldown gating is the engine's job.
func (f *Farmer) ActivateSuperpower() {
	f.superpower = true
	f.superpowerTimer = 0
}

func (f Farmer) Center() (float64, float64) {
	return f.X + f.Width/2, f.Y + f.Height/2
}

func (f Farmer) IsMoving() bool         { return f.moving }
func (f Farmer) IsAttacking() bool      { return f.attacking }
func (f Farmer) HasSuperpower() bool    { return f.superpower }
func (f Farmer) Facing() Direction      { return f.moveDir }
func (f Farmer) Anchor() (x, y float64) { return f.anchorX, f.anchorY }

// SuperpowerTicksLeft is zero when the superpower is not active.
func (f Farmer) SuperpowerTicksLeft() int {
	if !f.superpower {
		return 0
	}
	return superpowerDuration - f.superpowerTimer
}
