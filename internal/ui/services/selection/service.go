package selection

import (
	"log"

	"selectkit/internal/options"
	"selectkit/internal/ui/services/events"
)

// Service resolves selections for one widget and reports what changed
type Service struct {
	source string
	mode   Mode
	keys   options.Keys
	bus    events.EventBus
}

// NewService creates a new selection service
func NewService(source string, mode Mode, keys options.Keys, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		source: source,
		mode:   mode,
		keys:   keys,
		bus:    bus,
	}
}

// Mode returns the fixed selection mode
func (s *Service) Mode() Mode {
	return s.mode
}

// Keys returns the option accessors in use
func (s *Service) Keys() options.Keys {
	return s.keys
}

// IsSelected checks whether opt is part of the selection
func (s *Service) IsSelected(opt *options.Option, current Selection) bool {
	if s.mode == ModeSingle {
		// single mode compares by the value accessor
		return opt != nil && current.Option != nil &&
			options.DeriveValue(opt, s.keys.Value) == options.DeriveValue(current.Option, s.keys.Value)
	}
	return options.Contains(current.Items(), opt, s.keys.EqualityKey())
}

// Choose resolves a chosen option against the current selection
func (s *Service) Choose(chosen *options.Option, current Selection) Selection {
	if chosen == nil {
		return current
	}
	next := Resolve(chosen, s.mode, current, s.keys.EqualityKey())

	label := options.DeriveLabel(chosen, s.keys.Label)
	if s.mode == ModeMultiple && len(next.Items()) == len(current.Items()) {
		log.Printf("%s: %q already selected", s.source, label)
		s.bus.Publish(SelectionUnchangedEvent{Source: s.source, Label: label})
		return next
	}

	var removed []string
	if s.mode == ModeSingle && current.Option != nil {
		removed = append(removed, options.DeriveLabel(current.Option, s.keys.Label))
	}
	s.bus.Publish(SelectionChangedEvent{
		Source:  s.source,
		Added:   []string{label},
		Removed: removed,
		Total:   len(next.Items()),
	})
	return next
}

// Dismiss removes target from a multiple selection
func (s *Service) Dismiss(target *options.Option, current []*options.Option) []*options.Option {
	next := Remove(target, current, s.keys.EqualityKey())
	if len(next) != len(current) {
		s.bus.Publish(SelectionChangedEvent{
			Source:  s.source,
			Removed: []string{options.DeriveLabel(target, s.keys.Label)},
			Total:   len(next),
		})
	}
	return next
}
