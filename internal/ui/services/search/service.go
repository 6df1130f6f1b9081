package search

import (
	"log"

	"selectkit/internal/options"
	"selectkit/internal/ui/services/events"
)

// Service filters an option list by a query
type Service struct {
	source   string
	state    *State
	labelKey string
	all      []*options.Option
	bus      events.EventBus
}

// NewService creates a new search service
func NewService(source string, strategy options.Strategy, labelKey string, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		source: source,
		state: &State{
			Strategy: strategy,
		},
		labelKey: labelKey,
		bus:      bus,
	}
}

// SetOptions replaces the full option list and refilters it
func (s *Service) SetOptions(all []*options.Option) {
	s.all = all
	s.performFilter()
}

// SetQuery changes the query. Returns false when nothing changed.
func (s *Service) SetQuery(query string) bool {
	if query == s.state.Query && s.state.Matches != nil {
		return false
	}

	s.state.Query = query
	s.bus.Publish(QueryChangedEvent{Source: s.source, Query: query})
	s.performFilter()
	return true
}

// Query returns the current query
func (s *Service) Query() string {
	return s.state.Query
}

// Matches returns the filtered options in display order
func (s *Service) Matches() []*options.Option {
	if s.state.Matches == nil {
		s.performFilter()
	}
	return s.state.Matches
}

// MatchAt returns the filtered option at index, nil when out of range
func (s *Service) MatchAt(index int) *options.Option {
	matches := s.Matches()
	if index < 0 || index >= len(matches) {
		return nil
	}
	return matches[index]
}

// GetMatchCount returns the number of matches
func (s *Service) GetMatchCount() int {
	return len(s.Matches())
}

func (s *Service) performFilter() {
	s.state.Matches = s.state.Strategy.Apply(s.state.Query, s.all, s.labelKey)
	if s.state.Matches == nil {
		s.state.Matches = []*options.Option{}
	}

	if s.state.Query != "" {
		log.Printf("%s: filter %q matched %d of %d options", s.source, s.state.Query, len(s.state.Matches), len(s.all))
	}

	s.bus.Publish(FilterCompletedEvent{
		Source:     s.source,
		Query:      s.state.Query,
		MatchCount: len(s.state.Matches),
	})
}
