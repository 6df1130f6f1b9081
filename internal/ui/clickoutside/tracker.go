// Package clickoutside reports mouse presses that land outside a widget.
//
// A widget registers its screen region when it mounts and keeps the release
// function to call when it unmounts. The Tracker belongs to one program, so
// widgets in different programs never see each other's clicks.
package clickoutside

import (
	tea "github.com/charmbracelet/bubbletea"

	"selectkit/internal/ui/services/events"
)

// Region is a rectangle of terminal cells
type Region struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the region covers no cells
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// PressEvent is published for every left-button press
type PressEvent struct {
	X, Y int
}

// Tracker fans mouse presses out to registered widgets
type Tracker struct {
	bus *events.Bus
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{bus: events.NewBus()}
}

// Register calls handler for every press outside the region returned by
// region. region is evaluated at press time so it can follow layout changes.
// An empty region never contains a press. The returned release function is
// safe to call more than once.
func (t *Tracker) Register(region func() Region, handler func()) (release func()) {
	return t.bus.Subscribe(events.TypeOf(PressEvent{}), func(e interface{}) {
		press := e.(PressEvent)
		if !region().Contains(press.X, press.Y) {
			handler()
		}
	})
}

// Dispatch feeds a mouse message to the tracker. Only left-button presses
// count as an interaction. It reports whether the message was a press.
func (t *Tracker) Dispatch(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	t.bus.Publish(PressEvent{X: msg.X, Y: msg.Y})
	return true
}

// Active returns the number of registered widgets
func (t *Tracker) Active() int {
	return t.bus.Count(events.TypeOf(PressEvent{}))
}
