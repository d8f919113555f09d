package game

import "time"

// CropView is a crop plot plus its derived targeting flag.
type CropView struct {
	CropPlot
	Targeted bool
}

// Snapshot is a read-only copy of everything a renderer or reporter needs.
// Mutating it has no effect on the engine.
type Snapshot struct {
	Width, Height           int
	InputWidth, InputHeight int // coordinate space of MoveTarget and Shoot
	Tick                    int
	WallTime                time.Time

	Farmer        Farmer
	Crops         []CropView
	Enemies       []Enemy
	Bullets       []Bullet
	Smoke         []SmokeParticle
	Notifications []Notification

	Score         int
	RemainingTime float64
	Duration      time.Duration
	GameOver      bool
	GameWon       bool
	Outcome       Outcome
	CropsAlive    int

	SuperpowerEffect       bool
	SuperpowerCooldownLeft time.Duration
	SuperpowerCooldown     time.Duration

	FPS   float64
	Stats Stats
}

// SuperpowerReady is true when UseSuperpower would succeed.
func (s *Snapshot) SuperpowerReady() bool {
	return !s.GameOver && s.SuperpowerCooldownLeft <= 0
}

// Snapshot copies the current state.
func (g *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:                  int(g.width),
		Height:                 int(g.height),
		InputWidth:             int(g.inputW),
		InputHeight:            int(g.inputH),
		Tick:                   g.tick,
		WallTime:               g.clock.Now(),
		Farmer:                 g.farmer,
		Crops:                  make([]CropView, len(g.crops)),
		Enemies:                make([]Enemy, len(g.enemies)),
		Bullets:                make([]Bullet, len(g.bullets)),
		Smoke:                  make([]SmokeParticle, len(g.smoke)),
		Notifications:          g.notes.Items(),
		Score:                  g.score,
		RemainingTime:          g.remaining,
		Duration:               g.duration,
		GameOver:               g.gameOver,
		GameWon:                g.gameWon,
		Outcome:                g.Outcome(),
		CropsAlive:             g.CropsAlive(),
		SuperpowerEffect:       g.effectActive,
		SuperpowerCooldownLeft: g.SuperpowerCooldownLeft(),
		SuperpowerCooldown:     g.superCooldown,
		FPS:                    g.fps,
		Stats:                  g.stats,
	}
	for i, c := range g.crops {
		s.Crops[i] = CropView{CropPlot: c, Targeted: g.CropTargeted(i)}
	}
	for i, e := range g.enemies {
		s.Enemies[i] = *e
	}
	copy(s.Bullets, g.bullets)
	copy(s.Smoke, g.smoke)
	return s
}
