// Package input turns pointer, keyboard and scripted input into engine
// commands.
package input

import (
	"time"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

// ShotCooldown is the default minimum gap between accepted shots.
const ShotCooldown = 500 * time.Millisecond

// Commander is the command surface of a running session. *game.Engine
// satisfies it directly; the session wraps it with a shot throttle.
type Commander interface {
	MoveTarget(x, y float64) bool
	Shoot(x, y float64) bool
	UseSuperpower() bool
}

// Mapper converts between field pixels and the engine's input space.
type Mapper struct {
	FieldW, FieldH float64
	InputW, InputH float64
}

// NewMapper reads both coordinate spaces from a snapshot.
func NewMapper(s *game.Snapshot) Mapper {
	return Mapper{
		FieldW: float64(s.Width),
		FieldH: float64(s.Height),
		InputW: float64(s.InputWidth),
		InputH: float64(s.InputHeight),
	}
}

// ToInput maps a field point into input space.
func (m Mapper) ToInput(x, y float64) (float64, float64) {
	if m.FieldW <= 0 || m.FieldH <= 0 {
		return x, y
	}
	return x * m.InputW / m.FieldW, y * m.InputH / m.FieldH
}

// ToField maps an input-space point onto the field.
func (m Mapper) ToField(x, y float64) (float64, float64) {
	if m.InputW <= 0 || m.InputH <= 0 {
		return x, y
	}
	return x * m.FieldW / m.InputW, y * m.FieldH / m.InputH
}

// Throttle rate-limits a discrete action against a clock.
type Throttle struct {
	clock    game.Clock
	interval time.Duration
	last     time.Time
	fired    bool
}

func NewThrottle(clock game.Clock, interval time.Duration) *Throttle {
	return &Throttle{clock: clock, interval: interval}
}

// Allow reports whether the action may happen now and, if so, starts a new
// interval.
func (t *Throttle) Allow() bool {
	now := t.clock.Now()
	if t.fired && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.fired = true
	return true
}

// Reset forgets the last action.
func (t *Throttle) Reset() { t.fired = false }
