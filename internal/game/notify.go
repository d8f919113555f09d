package game

import "image/color"

const (
	notifyDefaultDuration = 90
	notifyEntranceTicks   = 8
	notifyFadeStart       = 0.7 // fraction of the lifetime before fading begins
)

// NotifyCategory groups banners. Each category has a single on-screen slot.
type NotifyCategory int

const (
	NotifyGameState NotifyCategory = iota
	NotifySuperpower
	NotifyCropStatus
	NotifyCombat
	NotifyTimeBonus
	NotifyShot
	notifyCategoryCount
)

func (c NotifyCategory) String() string {
	switch c {
	case NotifyGameState:
		return "game_state"
	case NotifySuperpower:
		return "superpower"
	case NotifyCropStatus:
		return "crop_status"
	case NotifyCombat:
		return "combat"
	case NotifyTimeBonus:
		return "time_bonus"
	case NotifyShot:
		return "shot"
	default:
		return "unknown"
	}
}

// Notification is a transient text banner.
type Notification struct {
	Text     string
	Color    color.RGBA
	Category NotifyCategory
	Timer    int
	Duration int
	Entrance int // ticks since first shown, capped at notifyEntranceTicks
}

// Alpha is 1 until notifyFadeStart of the lifetime, then falls linearly to 0.
func (n Notification) Alpha() float64 {
	if n.Duration <= 0 {
		return 0
	}
	p := float64(n.Timer) / float64(n.Duration)
	if p <= notifyFadeStart {
		return 1
	}
	return max(0, 1-(p-notifyFadeStart)/(1-notifyFadeStart))
}

// SlideProgress runs from 0 to 1 over the entrance.
func (n Notification) SlideProgress() float64 {
	return min(1, float64(n.Entrance)/notifyEntranceTicks)
}

// Notifications holds at most one live banner per category, in the order
// they were first shown.
type Notifications struct {
	items []Notification
}

// Add shows text in category. A live banner of the same category is replaced
// in place: text, colour and duration change and its timer restarts, but it
// keeps its slot and does not replay its entrance.
func (ns *Notifications) Add(category NotifyCategory, text string, col color.RGBA, duration int) {
	if duration <= 0 {
		duration = notifyDefaultDuration
	}
	for i := range ns.items {
		if ns.items[i].Category == category {
			ns.items[i].Text = text
			ns.items[i].Color = col
			ns.items[i].Duration = duration
			ns.items[i].Timer = 0
			return
		}
	}
	ns.items = append(ns.items, Notification{
		Text:     text,
		Color:    col,
		Category: category,
		Duration: duration,
	})
}

// Update ages all banners and drops the expired ones.
func (ns *Notifications) Update() {
	kept := ns.items[:0]
	for _, n := range ns.items {
		n.Timer++
		if n.Entrance < notifyEntranceTicks {
			n.Entrance++
		}
		if n.Timer >= n.Duration {
			continue
		}
		kept = append(kept, n)
	}
	ns.items = kept
}

// Find returns the live banner of category, if any.
func (ns *Notifications) Find(category NotifyCategory) (Notification, bool) {
	for _, n := range ns.items {
		if n.Category == category {
			return n, true
		}
	}
	return Notification{}, false
}

func (ns *Notifications) Len() int { return len(ns.items) }

// Items returns a copy of the live banners.
func (ns *Notifications) Items() []Notification {
	out := make([]Notification, len(ns.items))
	copy(out, ns.items)
	return out
}
