package game

import (
	"math"
	"math/rand"
)

const (
	enemyMinSize       = 80
	enemyMaxSize       = 120
	enemyHitDuration   = 5
	enemyDeathDuration = 10
	enemyTrailLength   = 5
	enemyExitMargin    = 100 // px past a field edge before an enemy is dropped

	zigzagPeriod    = 30
	spiralStep      = 0.1 // rad per tick
	spiralAmplitude = 2.0

	cropContactFactor = 0.6
)

// Target values other than a crop index.
const (
	TargetFarmer = -1
	TargetNone   = -2 // released, e.g. while dying
)

// EnemyState is the enemy lifecycle. The hit flash is tracked separately
// because it overlaps both Active and Dying.
type EnemyState int

const (
	EnemySpawning EnemyState = iota // still outside the field
	EnemyActive
	EnemyDying
	EnemyRemoved
)

func (s EnemyState) String() string {
	switch s {
	case EnemySpawning:
		return "spawning"
	case EnemyActive:
		return "active"
	case EnemyDying:
		return "dying"
	case EnemyRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MovementPattern overlays the heading toward the target.
type MovementPattern int

const (
	PatternDirect MovementPattern = iota
	PatternZigzag
	PatternSpiral
	patternCount
)

func (p MovementPattern) String() string {
	switch p {
	case PatternDirect:
		return "direct"
	case PatternZigzag:
		return "zigzag"
	case PatternSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// Point is a field position.
type Point struct{ X, Y float64 }

// Enemy is a single attacker. Position is the top-left corner of its square.
type Enemy struct {
	ID      int
	X, Y    float64
	VX, VY  float64 // velocity applied on the last tick
	Size    float64
	Pattern MovementPattern
	Target  int // crop index, TargetFarmer or TargetNone
	State   EnemyState
	Variant int // sprite variant

	// TimeReward is the seconds added to the clock when a bullet kills it.
	TimeReward float64

	baseVX, baseVY float64 // heading toward the target
	speed          float64 // magnitude kept across retargeting
	patternTimer   int

	flashing   bool
	flashTimer int
	deathTimer int

	trail    [enemyTrailLength]Point
	trailLen int
	trailPos int

	scored bool

	fieldW, fieldH float64
}

// newEnemy places an enemy just outside a random field edge, heading toward
// the field centre.
func newEnemy(rng *rand.Rand, id int, fieldW, fieldH float64, target, variants int) *Enemy {
	size := float64(enemyMinSize + rng.Intn(enemyMaxSize-enemyMinSize+1))
	e := &Enemy{
		ID:      id,
		Size:    size,
		Target:  target,
		State:   EnemySpawning,
		fieldW:  fieldW,
		fieldH:  fieldH,
		Pattern: MovementPattern(rng.Intn(int(patternCount))),
	}
	if variants > 1 {
		e.Variant = rng.Intn(variants)
	}

	spanX := max(0, int(fieldW-size))
	spanY := max(0, int(fieldH-size))
	switch rng.Intn(4) {
	case 0: // left
		e.X = -size
		e.Y = float64(rng.Intn(spanY + 1))
	case 1: // right
		e.X = fieldW
		e.Y = float64(rng.Intn(spanY + 1))
	case 2: // top
		e.X = float64(rng.Intn(spanX + 1))
		e.Y = -size
	default: // bottom
		e.X = float64(rng.Intn(spanX + 1))
		e.Y = fieldH
	}

	dx := fieldW/2 - e.X
	dy := fieldH/2 - e.Y
	dist := math.Max(1, math.Hypot(dx, dy))
	e.VX = dx/dist*(1+rng.Float64()*2) + (rng.Float64() - 0.5)
	e.VY = dy/dist*(1+rng.Float64()*2) + (rng.Float64() - 0.5)
	e.baseVX, e.baseVY = e.VX, e.VY
	e.speed = math.Hypot(e.VX, e.VY)

	e.TimeReward = 1 + rng.Float64()
	return e
}

// Update advances the enemy one tick. crops is read to retarget away from
// destroyed plots; it is never modified.
func (e *Enemy) Update(rng *rand.Rand, farmer Farmer, crops []CropPlot) {
	if e.State == EnemyRemoved {
		return
	}
	e.pushTrail()
	e.advanceFlash()

	if e.State == EnemyDying {
		e.deathTimer++
		if e.deathTimer >= enemyDeathDuration {
			e.State = EnemyRemoved
		}
		return
	}

	e.steer(rng, farmer, crops)
	e.applyPattern(rng)
	e.X += e.VX
	e.Y += e.VY

	if e.State == EnemySpawning && e.onField() {
		e.State = EnemyActive
	}
	if e.outOfBounds() {
		e.State = EnemyRemoved
		e.Target = TargetNone
	}
}

// steer retargets away from destroyed crops and recomputes the heading toward
// the live target at the enemy's fixed speed.
func (e *Enemy) steer(rng *rand.Rand, farmer Farmer, crops []CropPlot) {
	if e.Target >= 0 && (e.Target >= len(crops) || crops[e.Target].IsDestroyed()) {
		e.Target = randomLiveCrop(rng, crops)
	}
	var tx, ty float64
	if e.Target >= 0 {
		tx, ty = crops[e.Target].Center()
	} else {
		tx, ty = farmer.Center()
	}
	cx, cy := e.Center()
	dx, dy := tx-cx, ty-cy
	dist := math.Max(1, math.Hypot(dx, dy))
	e.baseVX = dx / dist * e.speed
	e.baseVY = dy / dist * e.speed
}

func (e *Enemy) applyPattern(rng *rand.Rand) {
	switch e.Pattern {
	case PatternZigzag:
		e.patternTimer++
		if e.patternTimer%zigzagPeriod == 0 {
			e.VX = e.baseVX * (0.8 + rng.Float64()*0.4)
			e.VY = e.baseVY * (0.8 + rng.Float64()*0.4)
		}
	case PatternSpiral:
		e.patternTimer++
		a := float64(e.patternTimer) * spiralStep
		e.VX = e.baseVX + math.Sin(a)*spiralAmplitude
		e.VY = e.baseVY + math.Cos(a)*spiralAmplitude
	default:
		e.VX, e.VY = e.baseVX, e.baseVY
	}
}

func (e *Enemy) advanceFlash() {
	if !e.flashing {
		return
	}
	e.flashTimer++
	if e.flashTimer >= enemyHitDuration {
		e.flashing = false
		e.flashTimer = 0
	}
}

func (e *Enemy) pushTrail() {
	cx, cy := e.Center()
	e.trail[e.trailPos] = Point{X: math.Trunc(cx), Y: math.Trunc(cy)}
	e.trailPos = (e.trailPos + 1) % enemyTrailLength
	if e.trailLen < enemyTrailLength {
		e.trailLen++
	}
}

// Trail returns the recorded centres, oldest first.
func (e Enemy) Trail() []Point {
	out := make([]Point, e.trailLen)
	for i := range out {
		out[i] = e.trail[(e.trailPos-e.trailLen+i+enemyTrailLength)%enemyTrailLength]
	}
	return out
}

func (e *Enemy) StartHitAnimation() {
	e.flashing = true
	e.flashTimer = 0
}

// StartDeathAnimation stops the enemy and releases its target.
func (e *Enemy) StartDeathAnimation() {
	if e.State == EnemyDying || e.State == EnemyRemoved {
		return
	}
	e.State = EnemyDying
	e.deathTimer = 0
	e.VX, e.VY = 0, 0
	e.Target = TargetNone
}

// IsHit reports whether (x, y) is strictly within radius of the centre.
// Dying and removed enemies cannot be hit.
func (e Enemy) IsHit(x, y, radius float64) bool {
	if !e.Alive() {
		return false
	}
	cx, cy := e.Center()
	return math.Hypot(cx-x, cy-y) < radius
}

// CollidesWithCrop uses a shrunken sum of half-widths so sprites visibly
// overlap before contact.
func (e Enemy) CollidesWithCrop(c CropPlot) bool {
	if !e.Alive() || c.IsDestroyed() {
		return false
	}
	ex, ey := e.Center()
	cx, cy := c.Center()
	return math.Hypot(ex-cx, ey-cy) < (e.Size/2+c.Width/2)*cropContactFactor
}

// Alive is true for enemies that can still move, collide and be hit.
func (e Enemy) Alive() bool {
	return e.State == EnemySpawning || e.State == EnemyActive
}

func (e Enemy) Center() (float64, float64) {
	return e.X + e.Size/2, e.Y + e.Size/2
}

func (e Enemy) IsFlashing() bool { return e.flashing }
func (e Enemy) FlashTimer() int  { return e.flashTimer }
func (e Enemy) DeathTimer() int  { return e.deathTimer }
func (e Enemy) Scored() bool     { return e.scored }

// DeathFraction runs from 0 at the start of the death countdown to 1.
func (e Enemy) DeathFraction() float64 {
	if e.State != EnemyDying {
		return 0
	}
	return float64(e.deathTimer) / enemyDeathDuration
}

func (e Enemy) onField() bool {
	return e.X+e.Size > 0 && e.X < e.fieldW && e.Y+e.Size > 0 && e.Y < e.fieldH
}

func (e Enemy) outOfBounds() bool {
	return e.X > e.fieldW+enemyExitMargin || e.X < -e.Size-enemyExitMargin ||
		e.Y > e.fieldH+enemyExitMargin || e.Y < -e.Size-enemyExitMargin
}

// randomLiveCrop picks a surviving crop index, or TargetFarmer when none is left.
func randomLiveCrop(rng *rand.Rand, crops []CropPlot) int {
	live := make([]int, 0, len(crops))
	for i := range crops {
		if !crops[i].IsDestroyed() {
			live = append(live, i)
		}
	}
	if len(live) == 0 {
		return TargetFarmer
	}
	return live[rng.Intn(len(live))]
}
