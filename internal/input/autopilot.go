package input

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

const (
	defaultShotEvery       = 15  // ticks, matching ShotCooldown at 30 fps
	defaultLead            = 4.0 // ticks of velocity lead when aiming
	defaultJitter          = 12.0
	defaultSuperpowerCrowd = 3
)

// Action records what an autopilot step asked for.
type Action struct {
	Moved, Shot, Superpower bool
	Target                  int // enemy ID, or -1
}

// Autopilot is a scripted player. Each step it picks the enemy closest to
// its own target, walks the farmer toward it, shoots at it on a fixed
// cadence and fires the superpower into a crowd.
type Autopilot struct {
	rng *rand.Rand

	ShotEvery       int     // minimum ticks between shots
	Lead            float64 // ticks of velocity lead
	Jitter          float64 // max aim error in field pixels
	SuperpowerCrowd int     // live enemies needed before using the superpower

	lastShot int
	shotOnce bool
}

func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:             rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		ShotEvery:       defaultShotEvery,
		Lead:            defaultLead,
		Jitter:          defaultJitter,
		SuperpowerCrowd: defaultSuperpowerCrowd,
	}
}

// Step issues this tick's commands.
func (a *Autopilot) Step(s *game.Snapshot, cmd Commander) Action {
	act := Action{Target: -1}
	if s.GameOver {
		return act
	}
	m := NewMapper(s)

	threat, live := a.pickThreat(s)
	if threat == nil {
		return act
	}
	act.Target = threat.ID
	cx, cy := threat.Center()

	act.Moved = cmd.MoveTarget(m.ToInput(cx, cy))

	if !a.shotOnce || s.Tick-a.lastShot >= a.ShotEvery {
		ax := cx + threat.VX*a.Lead + (a.rng.Float64()*2-1)*a.Jitter
		ay := cy + threat.VY*a.Lead + (a.rng.Float64()*2-1)*a.Jitter
		ax = math.Max(0, math.Min(float64(s.Width-1), ax))
		ay = math.Max(0, math.Min(float64(s.Height-1), ay))
		if cmd.Shoot(m.ToInput(ax, ay)) {
			act.Shot = true
			a.lastShot = s.Tick
			a.shotOnce = true
		}
	}

	if live >= a.SuperpowerCrowd && s.SuperpowerReady() {
		act.Superpower = cmd.UseSuperpower()
	}
	return act
}

// pickThreat returns the live on-field enemy nearest its target and the
// number of live enemies.
func (a *Autopilot) pickThreat(s *game.Snapshot) (*game.Enemy, int) {
	var best *game.Enemy
	bestDist := math.Inf(1)
	live := 0
	fx, fy := s.Farmer.Center()
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive() {
			continue
		}
		live++
		cx, cy := e.Center()
		if cx < 0 || cy < 0 || cx >= float64(s.Width) || cy >= float64(s.Height) {
			continue
		}
		tx, ty := fx, fy
		if e.Target >= 0 && e.Target < len(s.Crops) {
			tx, ty = s.Crops[e.Target].Center()
		}
		if d := math.Hypot(cx-tx, cy-ty); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, live
}
