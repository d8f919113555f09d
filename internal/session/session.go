// Package session owns one engine at a time: it throttles shots, rebuilds
// the engine on restart, records finished games and fans engine events out
// to sinks such as sound and telemetry.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/input"
	"github.com/Garsondee/Vision-Hero/internal/scoreboard"
)

// Sink receives every engine event in order.
type Sink interface {
	Handle(ev game.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev game.Event)

func (f SinkFunc) Handle(ev game.Event) { f(ev) }

// Recorder stores finished results. *scoreboard.Board satisfies it.
type Recorder interface {
	Record(ctx context.Context, r *scoreboard.Result) error
	Top(ctx context.Context, n int) ([]scoreboard.Result, error)
}

// Options configure every engine the session builds.
type Options struct {
	Player       string
	Seed         int64 // 0 picks a new time-based seed per game
	Duration     time.Duration
	FieldW       int
	FieldH       int
	InputW       int
	InputH       int
	Sensitivity  float64
	ShotCooldown time.Duration
	Variants     int // enemy sprite variants
	Clock        game.Clock
	Log          zerolog.Logger
	Board        Recorder // nil disables the leaderboard
	Top          int      // leaderboard length
}

// Session is the single mutator the drivers talk to. It implements
// input.Commander.
type Session struct {
	opts     Options
	sinks    []Sink
	eng      *game.Engine
	throttle *input.Throttle

	seed     int64
	games    int
	recorded bool
	board    []string
}

var _ input.Commander = (*Session)(nil)

// New starts the first game.
func New(opts Options, sinks ...Sink) *Session {
	if opts.Clock == nil {
		opts.Clock = game.SystemClock()
	}
	if opts.ShotCooldown <= 0 {
		opts.ShotCooldown = input.ShotCooldown
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	if opts.Top <= 0 {
		opts.Top = 5
	}
	s := &Session{
		opts:     opts,
		sinks:    sinks,
		throttle: input.NewThrottle(opts.Clock, opts.ShotCooldown),
	}
	s.start()
	return s
}

func (s *Session) start() {
	s.seed = s.opts.Seed
	if s.seed == 0 {
		s.seed = s.opts.Clock.Now().UnixNano()
	} else {
		s.seed += int64(s.games)
	}
	s.games++
	s.recorded = false
	s.board = nil
	s.throttle.Reset()

	s.eng = game.NewEngine(
		game.WithSeed(s.seed),
		game.WithClock(s.opts.Clock),
		game.WithLogger(s.opts.Log),
		game.WithDuration(s.opts.Duration),
		game.WithFieldSize(s.opts.FieldW, s.opts.FieldH),
		game.WithInputSize(s.opts.InputW, s.opts.InputH),
		game.WithSensitivity(s.opts.Sensitivity),
		game.WithEnemyVariants(s.opts.Variants),
	)
	s.opts.Log.Info().Int("game", s.games).Int64("seed", s.seed).Msg("game started")
}

// Restart throws the current engine away and starts over.
func (s *Session) Restart() {
	s.start()
}

// Update advances one tick, forwards the tick's events and records the
// result once the game is over. It returns the forwarded events.
func (s *Session) Update() []game.Event {
	s.eng.Update()
	events := s.eng.DrainEvents()
	for _, ev := range events {
		for _, sink := range s.sinks {
			sink.Handle(ev)
		}
	}
	if s.eng.GameOver() && !s.recorded {
		s.recorded = true
		s.finish()
	}
	return events
}

func (s *Session) finish() {
	if s.opts.Board == nil {
		return
	}
	ctx := context.Background()
	snap := s.eng.Snapshot()
	r := scoreboard.FromSnapshot(&snap, s.opts.Player, s.seed)
	if err := s.opts.Board.Record(ctx, &r); err != nil {
		s.opts.Log.Error().Err(err).Msg("failed to record result")
	}
	top, err := s.opts.Board.Top(ctx, s.opts.Top)
	if err != nil {
		s.opts.Log.Error().Err(err).Msg("failed to load leaderboard")
		return
	}
	s.board = make([]string, len(top))
	for i, t := range top {
		s.board[i] = t.Line(i + 1)
	}
}

// MoveTarget forwards to the engine.
func (s *Session) MoveTarget(x, y float64) bool {
	return s.eng.MoveTarget(x, y)
}

// Shoot forwards to the engine at most once per shot cooldown.
func (s *Session) Shoot(x, y float64) bool {
	if s.eng.GameOver() || !s.throttle.Allow() {
		return false
	}
	return s.eng.Shoot(x, y)
}

// UseSuperpower forwards to the engine.
func (s *Session) UseSuperpower() bool {
	return s.eng.UseSuperpower()
}

func (s *Session) Snapshot() game.Snapshot { return s.eng.Snapshot() }
func (s *Session) Engine() *game.Engine    { return s.eng }
func (s *Session) Seed() int64             { return s.seed }
func (s *Session) Games() int              { return s.games }
func (s *Session) Recorded() bool          { return s.recorded }

// Leaderboard returns the formatted top results after the game ends, or nil.
func (s *Session) Leaderboard() []string { return s.board }

// Report is the plain-text summary of the current game.
func (s *Session) Report() string {
	return game.SessionReport(s.eng.Snapshot())
}
