package core

import "time"

// Action represents a semantic command, abstracted from physical key presses
// and mouse events.
type Action int

const (
	ActionNone  Action = iota
	ActionFlap         // Space, mouse press - start when waiting, jump when playing
	ActionReset        // R - back to the waiting screen
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Debouncer collapses bursts of events into one. An event is accepted when
// at least Window has passed since the last accepted event.
// The zero value accepts everything.
type Debouncer struct {
	Window time.Duration
	last   time.Time
	seen   bool
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window}
}

// Accept reports whether an event at time now should fire.
func (d *Debouncer) Accept(now time.Time) bool {
	if d.seen && now.Sub(d.last) < d.Window {
		return false
	}
	d.last = now
	d.seen = true
	return true
}

// Reset forgets the last accepted event.
func (d *Debouncer) Reset() {
	d.seen = false
}
