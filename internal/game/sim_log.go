package game

import (
	"strings"
)

// EventLog collects engine events during a headless run. Unlike the
// on-screen notifications it is unbounded and machine-readable.
type EventLog struct {
	entries []Event
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records events in order.
func (l *EventLog) Add(evs ...Event) {
	l.entries = append(l.entries, evs...)
}

// Entries returns all recorded events.
func (l *EventLog) Entries() []Event {
	return l.entries
}

// Filter returns events of the given kind.
func (l *EventLog) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range l.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of kind were recorded.
func (l *EventLog) Count(kind EventKind) int {
	n := 0
	for _, e := range l.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Kills counts kill events with the given cause.
func (l *EventLog) Kills(cause KillCause) int {
	n := 0
	for _, e := range l.entries {
		if e.Kind == EventEnemyKilled && e.Cause == cause {
			n++
		}
	}
	return n
}

// LastOf returns the most recent event of kind, or false if none.
func (l *EventLog) LastOf(kind EventKind) (Event, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Kind == kind {
			return l.entries[i], true
		}
	}
	return Event{}, false
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
