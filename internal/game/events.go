package game

import "fmt"

// EventKind identifies what happened in an Event.
type EventKind int

const (
	EventEnemySpawned EventKind = iota
	EventShot
	EventEnemyKilled
	EventEnemyEscaped
	EventCropDamaged
	EventCropDestroyed
	EventTimeBonus
	EventSuperpower
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventShot:
		return "shot"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventEnemyEscaped:
		return "enemy_escaped"
	case EventCropDamaged:
		return "crop_damaged"
	case EventCropDestroyed:
		return "crop_destroyed"
	case EventTimeBonus:
		return "time_bonus"
	case EventSuperpower:
		return "superpower"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// KillCause says how an enemy died.
type KillCause int

const (
	CauseNone KillCause = iota
	CauseBullet
	CauseFarmer
	CauseCrop // died on contact with a crop
)

func (c KillCause) String() string {
	switch c {
	case CauseBullet:
		return "bullet"
	case CauseFarmer:
		return "farmer"
	case CauseCrop:
		return "crop"
	default:
		return "none"
	}
}

// Event is a gameplay fact emitted by the engine during Update or a command.
// Fields that do not apply to Kind are zero; Crop is -1 when no crop is involved.
type Event struct {
	Tick       int
	Kind       EventKind
	X, Y       float64
	EnemyID    int
	Cause      KillCause
	Crop       int
	Points     int
	Seconds    float64
	Superpower bool
	Won        bool
	Score      int
}

func (e Event) String() string {
	switch e.Kind {
	case EventEnemyKilled:
		return fmt.Sprintf("[T=%04d] %-14s enemy=%d cause=%s points=%d", e.Tick, e.Kind, e.EnemyID, e.Cause, e.Points)
	case EventCropDamaged, EventCropDestroyed:
		return fmt.Sprintf("[T=%04d] %-14s crop=%d", e.Tick, e.Kind, e.Crop)
	case EventTimeBonus:
		return fmt.Sprintf("[T=%04d] %-14s +%.1fs", e.Tick, e.Kind, e.Seconds)
	case EventGameOver:
		return fmt.Sprintf("[T=%04d] %-14s won=%t score=%d", e.Tick, e.Kind, e.Won, e.Score)
	default:
		return fmt.Sprintf("[T=%04d] %-14s (%.0f,%.0f)", e.Tick, e.Kind, e.X, e.Y)
	}
}

// maxPendingEvents bounds the undrained event buffer. Past it the oldest
// events are dropped.
const maxPendingEvents = 1024

func (g *Engine) emit(ev Event) {
	ev.Tick = g.tick
	if len(g.events) >= maxPendingEvents {
		n := copy(g.events, g.events[len(g.events)-maxPendingEvents+1:])
		g.events = g.events[:n]
	}
	g.events = append(g.events, ev)
}

// DrainEvents returns the events emitted since the previous call. Drivers
// should drain once per tick; an engine that is never drained keeps only the
// most recent maxPendingEvents.
func (g *Engine) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}
