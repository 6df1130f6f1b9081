// Package widgets holds what the selection widgets share: their messages and
// the frame that ties a widget to the outside-click tracker.
package widgets

import (
	"selectkit/internal/ui/clickoutside"
)

// Frame places a widget on screen and manages its outside-click registration
type Frame struct {
	X, Y    int
	release func()
}

// SetOrigin moves the widget's top-left corner. The host calls it during layout.
func (f *Frame) SetOrigin(x, y int) {
	f.X, f.Y = x, y
}

// Mount starts listening for presses outside region. Mounting again first
// releases the previous registration.
func (f *Frame) Mount(tracker *clickoutside.Tracker, region func() clickoutside.Region, onOutside func()) {
	f.Unmount()
	if tracker == nil {
		return
	}
	f.release = tracker.Register(region, onOutside)
}

// Unmount stops listening. It is safe to call on an unmounted frame.
func (f *Frame) Unmount() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
}

// Mounted reports whether the frame holds a registration
func (f *Frame) Mounted() bool {
	return f.release != nil
}
