package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// TickRate is the number of Update calls per second the timings assume.
const TickRate = 30

// TickDuration is the wall time one tick stands for.
const TickDuration = time.Second / TickRate

const (
	defaultFieldWidth  = 1280
	defaultFieldHeight = 720
	defaultInputWidth  = 640
	defaultInputHeight = 480
	defaultDuration    = 90 * time.Second
	defaultSensitivity = 0.5

	clockCommitInterval = 250 * time.Millisecond

	spawnMinInterval = 2 * time.Second
	spawnMaxInterval = 4 * time.Second
	spawnJitter      = 0.2 // ± fraction applied to the interval
	maxEnemies       = 8
	cropTargetChance = 0.8

	superpowerCooldown       = 30 * time.Second
	superpowerEffectDuration = 20 // ticks

	farmerContactRadius = 70
	winBonusPerCrop     = 50
)

var (
	colorGreen  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorRed    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorOrange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colorYellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Engine owns the whole session: entities, the score and time economy, the
// spawner and the notification queue. It is not safe for concurrent use; a
// driver calls the command methods and Update from a single goroutine.
type Engine struct {
	width, height  float64
	inputW, inputH float64
	sensitivity    float64
	duration       time.Duration
	enemyVariants  int
	superCooldown  time.Duration

	farmer  Farmer
	crops   []CropPlot
	enemies []*Enemy
	bullets []Bullet
	smoke   []SmokeParticle
	notes   Notifications

	score     int
	remaining float64 // seconds
	gameOver  bool
	gameWon   bool
	tick      int

	clock          Clock
	lastTimeUpdate time.Time
	framesSince    int
	fps            float64

	lastSpawn      time.Time
	lastSuperpower time.Time
	effectActive   bool
	effectTimer    int

	hasMoveTarget bool
	nextEnemyID   int

	rng    *rand.Rand
	log    zerolog.Logger
	events []Event
	stats  Stats
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSeed fixes the RNG seed for deterministic sessions.
func WithSeed(seed int64) Option {
	return func(g *Engine) {
		g.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	}
}

// WithClock replaces the wall clock, usually with a FakeClock in tests.
func WithClock(c Clock) Option {
	return func(g *Engine) { g.clock = c }
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Engine) { g.log = l }
}

// WithDuration sets the starting time budget.
func WithDuration(d time.Duration) Option {
	return func(g *Engine) {
		if d > 0 {
			g.duration = d
		}
	}
}

// WithFieldSize sets the field resolution in pixels.
func WithFieldSize(w, h int) Option {
	return func(g *Engine) {
		if w > 0 && h > 0 {
			g.width, g.height = float64(w), float64(h)
		}
	}
}

// WithInputSize sets the coordinate space commands arrive in.
func WithInputSize(w, h int) Option {
	return func(g *Engine) {
		if w > 0 && h > 0 {
			g.inputW, g.inputH = float64(w), float64(h)
		}
	}
}

// WithSensitivity sets the smoothing factor for MoveTarget, clamped to (0, 1].
func WithSensitivity(s float64) Option {
	return func(g *Engine) {
		if s > 0 {
			g.sensitivity = math.Min(s, 1)
		}
	}
}

// WithEnemyVariants sets how many enemy sprite variants the renderer has.
func WithEnemyVariants(n int) Option {
	return func(g *Engine) { g.enemyVariants = max(1, n) }
}

// WithSuperpowerCooldown overrides the superpower cooldown.
func WithSuperpowerCooldown(d time.Duration) Option {
	return func(g *Engine) {
		if d >= 0 {
			g.superCooldown = d
		}
	}
}

// NewEngine starts a fresh session.
func NewEngine(opts ...Option) *Engine {
	g := &Engine{
		width:         defaultFieldWidth,
		height:        defaultFieldHeight,
		inputW:        defaultInputWidth,
		inputH:        defaultInputHeight,
		sensitivity:   defaultSensitivity,
		duration:      defaultDuration,
		enemyVariants: 1,
		superCooldown: superpowerCooldown,
		clock:         systemClock{},
		log:           zerolog.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
	}

	now := g.clock.Now()
	g.remaining = g.duration.Seconds()
	g.lastTimeUpdate = now
	g.lastSpawn = now
	g.lastSuperpower = now.Add(-g.superCooldown)
	g.fps = TickRate

	g.farmer = NewFarmer(g.width, g.height)
	g.crops = placeCrops(g.width, g.height)

	g.log.Debug().
		Float64("width", g.width).
		Float64("height", g.height).
		Dur("duration", g.duration).
		Msg("session started")
	return g
}

// placeCrops arranges the plots on a lower arc around the field centre.
func placeCrops(w, h float64) []CropPlot {
	crops := make([]CropPlot, 0, cropCount)
	cx, cy := math.Trunc(w/2), math.Trunc(h/2)+cropRingOffset
	for i := 0; i < cropCount; i++ {
		angle := float64(i)/3*math.Pi + math.Pi/6
		x := cx + math.Trunc(cropRingRadius*math.Cos(angle)) - cropSize/2
		y := cy + math.Trunc(cropRingRadius*math.Sin(angle)) - cropSize/2
		crops = append(crops, NewCropPlot(x, y))
	}
	return crops
}

// Update advances the session by one tick. It does nothing once the game is
// over.
func (g *Engine) Update() {
	if g.gameOver {
		return
	}
	g.tick++
	g.stats.Ticks++

	// 1. CLOCK: commit elapsed wall time in coarse steps.
	if g.updateClock() {
		return
	}

	// 2. LOSS CHECK: nothing left to defend.
	if !g.anyCropAlive() {
		g.handleGameEnd(false)
		return
	}

	// 3. TIMERS: farmer, crops, effect window, banners, particles.
	g.farmer.Update()
	for i := range g.crops {
		g.crops[i].Update(g.CropTargeted(i))
	}
	if g.effectActive {
		g.effectTimer++
		if g.effectTimer >= superpowerEffectDuration {
			g.effectActive = false
			g.effectTimer = 0
		}
	}
	g.notes.Update()
	g.smoke = updateSmoke(g.smoke)

	// 4. SPAWN
	g.spawnEnemy(false)

	// 5. ENEMIES: move, then retire removed ones with their one-time point.
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		e.Update(g.rng, g.farmer, g.crops)
		if e.State == EnemyRemoved {
			g.retireEnemy(e)
			continue
		}
		kept = append(kept, e)
	}
	clear(g.enemies[len(kept):])
	g.enemies = kept

	// 6. CROP CONTACT
	for _, e := range g.enemies {
		if g.checkCropContact(e) && g.gameOver {
			return
		}
	}

	// 7. FARMER CONTACT
	g.checkFarmerContact()

	// 8. BULLETS
	g.updateBullets()
}

// updateClock reports whether the session ended.
func (g *Engine) updateClock() bool {
	g.framesSince++
	now := g.clock.Now()
	elapsed := now.Sub(g.lastTimeUpdate)
	if elapsed < clockCommitInterval {
		return false
	}
	secs := elapsed.Seconds()
	g.fps = float64(g.framesSince) / secs
	g.remaining -= secs
	g.lastTimeUpdate = now
	g.framesSince = 0
	if g.remaining <= 0 {
		g.remaining = 0
		g.handleGameEnd(true)
		return true
	}
	return false
}

func (g *Engine) retireEnemy(e *Enemy) {
	if e.scored {
		return
	}
	e.scored = true
	g.score++
	if e.deathTimer == 0 {
		g.stats.Escaped++
		g.emit(Event{Kind: EventEnemyEscaped, EnemyID: e.ID, X: e.X, Y: e.Y, Crop: -1, Points: 1})
	}
}

// checkCropContact damages at most one crop per enemy. It reports whether
// contact happened.
func (g *Engine) checkCropContact(e *Enemy) bool {
	for i := range g.crops {
		c := &g.crops[i]
		if !e.CollidesWithCrop(*c) {
			continue
		}
		destroyed := c.TakeDamage()
		cx, cy := c.Center()
		g.smoke = spawnSmoke(g.rng, g.smoke, cx, cy, 10)
		e.StartDeathAnimation()
		g.stats.CropHits++
		g.emit(Event{Kind: EventEnemyKilled, EnemyID: e.ID, Cause: CauseCrop, X: cx, Y: cy, Crop: i})

		if destroyed {
			g.stats.CropsLost++
			g.notes.Add(NotifyCropStatus, "Crop destroyed!", colorRed, notifyDefaultDuration)
			g.emit(Event{Kind: EventCropDestroyed, X: cx, Y: cy, Crop: i})
			g.log.Debug().Int("crop", i).Int("tick", g.tick).Msg("crop destroyed")
		} else {
			g.notes.Add(NotifyCropStatus,
				fmt.Sprintf("Crop damaged! Health: %d/%d", c.Health, c.MaxHealth),
				colorOrange, notifyDefaultDuration)
			g.emit(Event{Kind: EventCropDamaged, X: cx, Y: cy, Crop: i})
		}

		if !g.anyCropAlive() {
			g.handleGameEnd(false)
		}
		return true
	}
	return false
}

func (g *Engine) checkFarmerContact() {
	fx, fy := g.farmer.Center()
	for _, e := range g.enemies {
		if !e.Alive() {
			continue
		}
		ex, ey := e.Center()
		if math.Hypot(fx-ex, fy-ey) >= farmerContactRadius {
			continue
		}
		e.StartDeathAnimation()
		g.smoke = spawnSmoke(g.rng, g.smoke, ex, ey, 15)
		g.score++
		g.stats.FarmerKills++
		g.notes.Add(NotifyCombat, "Enemy defeated!", colorGreen, 60)
		g.farmer.StartAttackAnimation()
		g.emit(Event{Kind: EventEnemyKilled, EnemyID: e.ID, Cause: CauseFarmer, X: ex, Y: ey, Crop: -1, Points: 1})
	}
}

// updateBullets resolves each bullet against at most one enemy and ages the
// rest.
func (g *Engine) updateBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if g.resolveBullet(b) {
			continue
		}
		if b.Life <= 0 {
			continue
		}
		b.Life--
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Engine) resolveBullet(b Bullet) bool {
	for _, e := range g.enemies {
		if !e.IsHit(b.X, b.Y, b.Radius) {
			continue
		}
		e.StartHitAnimation()
		e.StartDeathAnimation()
		g.smoke = spawnSmoke(g.rng, g.smoke, b.X, b.Y, 10)
		g.AddTime(e.TimeReward)

		points := 1
		if b.Superpower {
			points = 2
		}
		g.score += points
		g.stats.BulletKills++
		if points > 1 {
			g.notes.Add(NotifyCombat, fmt.Sprintf("+%d points!", points), colorGreen, 60)
		} else {
			g.notes.Add(NotifyCombat, "Enemy hit!", colorYellow, 30)
		}
		g.farmer.StartAttackAnimation()
		g.emit(Event{
			Kind: EventEnemyKilled, EnemyID: e.ID, Cause: CauseBullet,
			X: b.X, Y: b.Y, Crop: -1, Points: points, Superpower: b.Superpower,
		})
		return true
	}
	return false
}

// spawnEnemy adds an enemy when the jittered interval has elapsed and the cap
// allows it. force bypasses both checks.
func (g *Engine) spawnEnemy(force bool) *Enemy {
	now := g.clock.Now()
	interval := math.Max(spawnMinInterval.Seconds(),
		spawnMaxInterval.Seconds()*g.remaining/g.duration.Seconds())
	jittered := interval * (1 - spawnJitter + g.rng.Float64()*2*spawnJitter)
	if !force && (now.Sub(g.lastSpawn).Seconds() <= jittered || len(g.enemies) >= maxEnemies) {
		return nil
	}

	target := TargetFarmer
	if g.rng.Float64() < cropTargetChance {
		target = randomLiveCrop(g.rng, g.crops)
	}
	e := newEnemy(g.rng, g.nextEnemyID, g.width, g.height, target, g.enemyVariants)
	g.nextEnemyID++
	g.enemies = append(g.enemies, e)
	g.lastSpawn = now
	g.stats.EnemiesSpawned++

	g.emit(Event{Kind: EventEnemySpawned, EnemyID: e.ID, X: e.X, Y: e.Y, Crop: target})
	g.log.Debug().
		Int("id", e.ID).
		Str("pattern", e.Pattern.String()).
		Int("target", target).
		Float64("size", e.Size).
		Msg("enemy spawned")
	return e
}

// AddTime credits seconds to the clock and announces it. It does nothing once
// the game is over.
func (g *Engine) AddTime(seconds float64) {
	if g.gameOver {
		return
	}
	g.remaining += seconds
	g.stats.TimeBonus += seconds
	g.notes.Add(NotifyTimeBonus, fmt.Sprintf("+%.1fs", seconds), colorYellow, notifyDefaultDuration)
	g.emit(Event{Kind: EventTimeBonus, Seconds: seconds, Crop: -1})
}

// handleGameEnd closes the session. Surviving to the end of the clock with at
// least one crop standing is a win worth a bonus per crop.
func (g *Engine) handleGameEnd(timeExpired bool) {
	if g.gameOver {
		return
	}
	g.gameOver = true
	if timeExpired && g.anyCropAlive() {
		g.gameWon = true
		bonus := g.CropsAlive() * winBonusPerCrop
		g.score += bonus
		g.stats.WinBonus = bonus
		g.notes.Add(NotifyGameState, fmt.Sprintf("VICTORY! +%d BONUS POINTS!", bonus), colorGreen, 300)
	} else {
		reason := "All crops destroyed!"
		if timeExpired {
			reason = "Time's up!"
		}
		g.notes.Add(NotifyGameState, "GAME OVER! "+reason, colorRed, 300)
	}
	g.emit(Event{Kind: EventGameOver, Won: g.gameWon, Score: g.score, Crop: -1})
	g.log.Info().
		Bool("won", g.gameWon).
		Int("score", g.score).
		Int("crops_alive", g.CropsAlive()).
		Int("tick", g.tick).
		Msg("session ended")
}

// MoveTarget steers the farmer toward an input-space point. The first call
// places the farmer directly; later calls move a sensitivity fraction of the
// way.
func (g *Engine) MoveTarget(x, y float64) bool {
	if g.gameOver {
		return false
	}
	gx := x*g.width/g.inputW - g.farmer.Width/2
	gy := y*g.height/g.inputH - g.farmer.Height/2
	if g.hasMoveTarget {
		gx = g.farmer.anchorX + (gx-g.farmer.anchorX)*g.sensitivity
		gy = g.farmer.anchorY + (gy-g.farmer.anchorY)*g.sensitivity
	}
	g.hasMoveTarget = true
	g.farmer.SetPosition(gx, gy)
	return true
}

// Shoot fires at an input-space point. The farmer hops toward the dominant
// axis of the aim, horizontal on ties.
func (g *Engine) Shoot(x, y float64) bool {
	if g.gameOver {
		return false
	}
	sx := math.Trunc(x * g.width / g.inputW)
	sy := math.Trunc(y * g.height / g.inputH)

	fx, fy := g.farmer.Center()
	dx, dy := sx-fx, sy-fy
	var dir Direction
	switch {
	case math.Abs(dx) >= math.Abs(dy) && dx > 0:
		dir = DirRight
	case math.Abs(dx) >= math.Abs(dy):
		dir = DirLeft
	case dy > 0:
		dir = DirDown
	default:
		dir = DirUp
	}
	g.farmer.StartMoveAnimation(dir)
	g.farmer.StartAttackAnimation()

	super := g.farmer.HasSuperpower()
	col := bulletColor
	if super {
		col = superpowerBulletColor
	}
	g.bullets = append(g.bullets, Bullet{
		X: sx, Y: sy, Radius: bulletRadius, Life: bulletLife, Color: col, Superpower: super,
	})
	g.notes.Add(NotifyShot, "Shoot!", col, 30)
	g.stats.ShotsFired++
	g.emit(Event{Kind: EventShot, X: sx, Y: sy, Crop: -1, Superpower: super})
	return true
}

// UseSuperpower arms the farmer's superpower if the cooldown has elapsed.
func (g *Engine) UseSuperpower() bool {
	if g.gameOver {
		return false
	}
	now := g.clock.Now()
	if now.Sub(g.lastSuperpower) < g.superCooldown {
		return false
	}
	g.farmer.ActivateSuperpower()
	g.notes.Add(NotifySuperpower, "SUPERPOWER ACTIVATED!", colorYellow, notifyDefaultDuration)
	g.effectActive = true
	g.effectTimer = 0
	g.lastSuperpower = now
	g.stats.SuperpowersUsed++
	g.emit(Event{Kind: EventSuperpower, Crop: -1})
	return true
}

// CropTargeted reports whether any live enemy is heading for crop i.
func (g *Engine) CropTargeted(i int) bool {
	for _, e := range g.enemies {
		if e.Alive() && e.Target == i {
			return true
		}
	}
	return false
}

func (g *Engine) anyCropAlive() bool {
	for i := range g.crops {
		if !g.crops[i].IsDestroyed() {
			return true
		}
	}
	return false
}

// CropsAlive counts the crops that are not destroyed.
func (g *Engine) CropsAlive() int {
	n := 0
	for i := range g.crops {
		if !g.crops[i].IsDestroyed() {
			n++
		}
	}
	return n
}

// SuperpowerCooldownLeft is zero when the superpower is ready.
func (g *Engine) SuperpowerCooldownLeft() time.Duration {
	return max(0, g.superCooldown-g.clock.Now().Sub(g.lastSuperpower))
}

func (g *Engine) Score() int              { return g.score }
func (g *Engine) RemainingTime() float64  { return g.remaining }
func (g *Engine) GameOver() bool          { return g.gameOver }
func (g *Engine) GameWon() bool           { return g.gameWon }
func (g *Engine) Tick() int               { return g.tick }
func (g *Engine) FPS() float64            { return g.fps }
func (g *Engine) Stats() Stats            { return g.stats }
func (g *Engine) Duration() time.Duration { return g.duration }
func (g *Engine) FieldSize() (int, int)   { return int(g.width), int(g.height) }
func (g *Engine) InputSize() (int, int)   { return int(g.inputW), int(g.inputH) }
