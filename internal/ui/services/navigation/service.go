package navigation

import (
	"log"

	"selectkit/internal/ui/services/events"
)

// Service drives the popup state of one widget and reports changes on the bus
type Service struct {
	source string
	state  State
	bus    events.EventBus
	hook   TransitionHook
}

// NewService creates a new navigation service. source names the owning
// widget in published events.
func NewService(source string, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		source: source,
		state:  NewState(),
		bus:    bus,
		hook:   applyNow,
	}
}

func applyNow(apply func()) { apply() }

// SetTransitionHook installs a wrapper around open/close changes
func (s *Service) SetTransitionHook(hook TransitionHook) {
	if hook == nil {
		hook = applyNow
	}
	s.hook = hook
}

// IsOpen reports whether the popup is open
func (s *Service) IsOpen() bool {
	return s.state.Open
}

// Focused returns the focused option index, -1 for none
func (s *Service) Focused() int {
	return s.state.Focused
}

// State returns a copy of the current state
func (s *Service) State() State {
	return s.state
}

// Handle applies an input against a list of length options
func (s *Service) Handle(in Input, length int) Transition {
	next := s.state
	t := next.Apply(in, length)

	oldFocus := s.state.Focused
	if t.OpenChanged {
		s.hook(func() { s.state = next })
	} else {
		s.state = next
	}

	if t.Commit {
		log.Printf("%s: committed option %d via %s", s.source, t.Index, in.Event)
		s.bus.Publish(CommitEvent{Source: s.source, Index: t.Index})
	}
	if oldFocus != s.state.Focused {
		s.bus.Publish(CursorMovedEvent{
			Source:   s.source,
			OldIndex: oldFocus,
			NewIndex: s.state.Focused,
		})
	}
	if t.OpenChanged {
		if s.state.Open {
			s.bus.Publish(PopupOpenedEvent{Source: s.source})
		} else {
			s.bus.Publish(PopupClosedEvent{Source: s.source})
		}
	}
	return t
}

// Toggle flips the popup
func (s *Service) Toggle(length int) Transition {
	return s.Handle(Input{Event: EventToggle}, length)
}

// Open opens the popup
func (s *Service) Open(length int) Transition {
	return s.Handle(Input{Event: EventOpen}, length)
}

// Close closes the popup
func (s *Service) Close(length int) Transition {
	return s.Handle(Input{Event: EventClose}, length)
}

// Clamp keeps the cursor inside a list of the given length
func (s *Service) Clamp(length int) {
	old := s.state.Focused
	s.state.Clamp(length)
	if old != s.state.Focused {
		s.bus.Publish(CursorMovedEvent{
			Source:   s.source,
			OldIndex: old,
			NewIndex: s.state.Focused,
		})
	}
}
