package navigation

// State holds the popup state of one widget
type State struct {
	Open    bool
	Focused int // -1 means nothing is focused
}

// Event is a discrete input that drives the popup state
type Event int

const (
	EventToggle Event = iota
	EventOpen
	EventClose
	EventKeyEnter
	EventKeyEscape
	EventKeyArrowDown
	EventKeyArrowUp
	EventKeyHome
	EventKeyEnd
	EventPointerSelect
	EventOutsideInteraction
)

var eventNames = map[Event]string{
	EventToggle:             "toggle",
	EventOpen:               "open",
	EventClose:              "close",
	EventKeyEnter:           "enter",
	EventKeyEscape:          "escape",
	EventKeyArrowDown:       "down",
	EventKeyArrowUp:         "up",
	EventKeyHome:            "home",
	EventKeyEnd:             "end",
	EventPointerSelect:      "pointer",
	EventOutsideInteraction: "outside",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Input is an event plus its payload. Index is only read for EventPointerSelect.
type Input struct {
	Event Event
	Index int
}

// Transition describes what applying an input did
type Transition struct {
	Commit      bool // an option was chosen
	Index       int  // index of the chosen option when Commit is set
	OpenChanged bool
}

// TransitionHook wraps a change of the open flag, e.g. to animate it.
// It must call apply exactly once.
type TransitionHook func(apply func())

// Event types for navigation changes
type CursorMovedEvent struct {
	Source   string
	OldIndex int
	NewIndex int
}

type PopupOpenedEvent struct {
	Source string
}

type PopupClosedEvent struct {
	Source string
}

type CommitEvent struct {
	Source string
	Index  int
}
