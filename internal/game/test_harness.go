package game

import "time"

// TestSession is a headless engine harness used by tests and the headless
// report. It drives the engine on a FakeClock so runs are deterministic.
type TestSession struct {
	Engine *Engine
	Clock  *FakeClock
	Log    *EventLog

	engineOpts []Option
	tickDur    time.Duration
}

// sessionOptionKind controls the pass in which an option is applied.
type sessionOptionKind int

const (
	sessionOptInfra  sessionOptionKind = iota // seed, clock, duration: before the engine exists
	sessionOptEntity                          // enemies, crop health, farmer: after
)

// SessionOption is a builder function applied to a TestSession during
// construction.
type SessionOption struct {
	kind sessionOptionKind
	fn   func(*TestSession)
}

// WithSessionSeed sets the RNG seed.
func WithSessionSeed(seed int64) SessionOption {
	return SessionOption{sessionOptInfra, func(ts *TestSession) {
		ts.engineOpts = append(ts.engineOpts, WithSeed(seed))
	}}
}

// WithSessionDuration sets the starting time budget.
func WithSessionDuration(d time.Duration) SessionOption {
	return SessionOption{sessionOptInfra, func(ts *TestSession) {
		ts.engineOpts = append(ts.engineOpts, WithDuration(d))
	}}
}

// WithTickDuration sets how far RunTicks advances the clock per tick.
func WithTickDuration(d time.Duration) SessionOption {
	return SessionOption{sessionOptInfra, func(ts *TestSession) {
		ts.tickDur = d
	}}
}

// WithEngineOptions passes raw engine options through.
func WithEngineOptions(opts ...Option) SessionOption {
	return SessionOption{sessionOptInfra, func(ts *TestSession) {
		ts.engineOpts = append(ts.engineOpts, opts...)
	}}
}

// WithEnemy places a direct-moving enemy whose centre is at (cx, cy).
// target is a crop index or TargetFarmer.
func WithEnemy(cx, cy, size float64, target int) SessionOption {
	return SessionOption{sessionOptEntity, func(ts *TestSession) {
		ts.AddEnemy(cx, cy, size, target)
	}}
}

// WithCropHealth sets crop i's health directly.
func WithCropHealth(i, health int) SessionOption {
	return SessionOption{sessionOptEntity, func(ts *TestSession) {
		c := &ts.Engine.crops[i]
		c.Health = max(0, min(health, c.MaxHealth))
	}}
}

// WithFarmerAt moves the farmer's top-left corner to (x, y).
func WithFarmerAt(x, y float64) SessionOption {
	return SessionOption{sessionOptEntity, func(ts *TestSession) {
		ts.Engine.farmer.SetPosition(x, y)
	}}
}

// NewTestSession builds the engine in two ordered passes: infrastructure
// options first, then entity placement.
func NewTestSession(opts ...SessionOption) *TestSession {
	ts := &TestSession{
		Clock:   NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
		Log:     NewEventLog(),
		tickDur: TickDuration,
	}
	ts.engineOpts = []Option{WithSeed(1)}
	for _, o := range opts {
		if o.kind == sessionOptInfra {
			o.fn(ts)
		}
	}
	ts.engineOpts = append(ts.engineOpts, WithClock(ts.Clock))
	ts.Engine = NewEngine(ts.engineOpts...)
	for _, o := range opts {
		if o.kind == sessionOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// AddEnemy inserts an active, direct-moving enemy centred on (cx, cy).
func (ts *TestSession) AddEnemy(cx, cy, size float64, target int) *Enemy {
	g := ts.Engine
	e := &Enemy{
		ID:         g.nextEnemyID,
		X:          cx - size/2,
		Y:          cy - size/2,
		Size:       size,
		Pattern:    PatternDirect,
		Target:     target,
		State:      EnemyActive,
		TimeReward: 1.5,
		speed:      2,
		fieldW:     g.width,
		fieldH:     g.height,
	}
	g.nextEnemyID++
	g.enemies = append(g.enemies, e)
	return e
}

// Step runs one engine update without moving the clock.
func (ts *TestSession) Step() {
	ts.Engine.Update()
	ts.Log.Add(ts.Engine.DrainEvents()...)
}

// RunTicks advances the clock by one tick duration and updates, n times.
func (ts *TestSession) RunTicks(n int) {
	for i := 0; i < n && !ts.Engine.GameOver(); i++ {
		ts.Clock.Advance(ts.tickDur)
		ts.Step()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate holds.
// Returns the engine tick at which it held, or -1.
func (ts *TestSession) RunUntil(predicate func(*TestSession) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if predicate(ts) {
			return ts.Engine.Tick()
		}
		if ts.Engine.GameOver() {
			return -1
		}
		ts.Clock.Advance(ts.tickDur)
		ts.Step()
	}
	if predicate(ts) {
		return ts.Engine.Tick()
	}
	return -1
}

// Drive lets an input producer issue commands before every tick.
func (ts *TestSession) Drive(step func(*Engine), maxTicks int) {
	for i := 0; i < maxTicks && !ts.Engine.GameOver(); i++ {
		step(ts.Engine)
		ts.Log.Add(ts.Engine.DrainEvents()...)
		ts.Clock.Advance(ts.tickDur)
		ts.Step()
	}
}

// Enemies exposes the live enemies for assertions.
func (ts *TestSession) Enemies() []*Enemy { return ts.Engine.enemies }

// Crops exposes the crop plots for assertions.
func (ts *TestSession) Crops() []CropPlot { return ts.Engine.crops }

// Farmer exposes the farmer for assertions.
func (ts *TestSession) Farmer() *Farmer { return &ts.Engine.farmer }
