package search

import "selectkit/internal/options"

// State holds the query of one filterable widget and what it matched
type State struct {
	Query    string
	Matches  []*options.Option
	Strategy options.Strategy
}

// Event types
type QueryChangedEvent struct {
	Source string
	Query  string
}

type FilterCompletedEvent struct {
	Source     string
	Query      string
	MatchCount int
}
