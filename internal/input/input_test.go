package input

import (
	"testing"
	"time"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

// recorder counts commands and forwards them to an engine if one is set.
type recorder struct {
	eng                 *game.Engine
	moves, shots, super int
}

func (r *recorder) MoveTarget(x, y float64) bool {
	r.moves++
	return r.eng == nil || r.eng.MoveTarget(x, y)
}

func (r *recorder) Shoot(x, y float64) bool {
	r.shots++
	return r.eng == nil || r.eng.Shoot(x, y)
}

func (r *recorder) UseSuperpower() bool {
	r.super++
	return r.eng == nil || r.eng.UseSuperpower()
}

// --- Mapper ---

func TestMapper_RoundTrip(t *testing.T) {
	m := Mapper{FieldW: 1280, FieldH: 720, InputW: 640, InputH: 480}
	x, y := m.ToInput(1280, 720)
	if x != 640 || y != 480 {
		t.Fatalf("ToInput corner = (%v,%v)", x, y)
	}
	fx, fy := m.ToField(m.ToInput(300, 360))
	if fx != 300 || fy != 360 {
		t.Fatalf("round trip = (%v,%v)", fx, fy)
	}
}

func TestMapper_ZeroSizePassesThrough(t *testing.T) {
	var m Mapper
	if x, y := m.ToInput(5, 6); x != 5 || y != 6 {
		t.Fatal("zero mapper should be the identity")
	}
}

// --- Throttle ---

func TestThrottle_Interval(t *testing.T) {
	clk := game.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	th := NewThrottle(clk, ShotCooldown)
	if !th.Allow() {
		t.Fatal("first action should pass")
	}
	clk.Advance(499 * time.Millisecond)
	if th.Allow() {
		t.Fatal("action inside the interval should be refused")
	}
	clk.Advance(time.Millisecond)
	if !th.Allow() {
		t.Fatal("action at the interval should pass")
	}
	th.Reset()
	if !th.Allow() {
		t.Fatal("reset should clear the interval")
	}
}

// --- Autopilot ---

func TestAutopilot_KillsApproachingEnemy(t *testing.T) {
	ts := game.NewTestSession(game.WithEnemy(300, 300, 100, 0))
	ap := NewAutopilot(1)
	ap.Jitter = 0
	ts.Drive(func(e *game.Engine) {
		s := e.Snapshot()
		ap.Step(&s, e)
	}, 60)
	if ts.Log.Count(game.EventEnemyKilled) == 0 {
		t.Fatalf("autopilot should kill the enemy\n%s", ts.Log.Format())
	}
}

func TestAutopilot_ShotCadence(t *testing.T) {
	ts := game.NewTestSession(game.WithEnemy(300, 300, 100, 0))
	ap := NewAutopilot(1)
	rec := &recorder{}
	for i := 0; i < 30; i++ {
		s := ts.Engine.Snapshot()
		s.Tick = i
		ap.Step(&s, rec)
	}
	if rec.shots != 2 {
		t.Fatalf("expected 2 shots in 30 ticks at a 15-tick cadence, got %d", rec.shots)
	}
	if rec.moves != 30 {
		t.Fatalf("expected a move every tick, got %d", rec.moves)
	}
}

func TestAutopilot_IdleWithoutEnemies(t *testing.T) {
	ts := game.NewTestSession()
	rec := &recorder{}
	s := ts.Engine.Snapshot()
	act := NewAutopilot(1).Step(&s, rec)
	if act.Target != -1 || rec.moves+rec.shots+rec.super != 0 {
		t.Fatalf("no enemies should mean no commands, got %+v", act)
	}
}

func TestAutopilot_SuperpowerIntoCrowd(t *testing.T) {
	ts := game.NewTestSession(
		game.WithEnemy(300, 300, 100, 0),
		game.WithEnemy(900, 300, 100, 1),
		game.WithEnemy(600, 200, 100, 2),
	)
	rec := &recorder{eng: ts.Engine}
	s := ts.Engine.Snapshot()
	act := NewAutopilot(1).Step(&s, rec)
	if !act.Superpower {
		t.Fatal("three live enemies and a ready superpower should trigger it")
	}
}

func TestAutopilot_StopsAfterGameOver(t *testing.T) {
	ts := game.NewTestSession(game.WithEnemy(300, 300, 100, 0))
	s := ts.Engine.Snapshot()
	s.GameOver = true
	rec := &recorder{}
	NewAutopilot(1).Step(&s, rec)
	if rec.moves+rec.shots+rec.super != 0 {
		t.Fatal("autopilot should be idle after game over")
	}
}
