package options

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Strategy selects how a query is matched against option labels
type Strategy string

const (
	StrategySubstring Strategy = "substring"
	StrategyFuzzy     Strategy = "fuzzy"
)

// ParseStrategy converts a config value into a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategySubstring:
		return StrategySubstring, nil
	case StrategyFuzzy:
		return StrategyFuzzy, nil
	default:
		return StrategySubstring, fmt.Errorf("unknown filter strategy %q", s)
	}
}

// Filter returns the options whose label contains query, ignoring case.
// Input order is preserved and an empty query matches everything.
func Filter(query string, list []*Option, labelKey string) []*Option {
	if query == "" {
		return list
	}

	q := strings.ToLower(query)
	result := make([]*Option, 0, len(list))
	for _, opt := range list {
		if strings.Contains(strings.ToLower(DeriveLabel(opt, labelKey)), q) {
			result = append(result, opt)
		}
	}
	return result
}

// labelSource adapts an option list to fuzzy.Source
type labelSource struct {
	list     []*Option
	labelKey string
}

func (s labelSource) String(i int) string { return DeriveLabel(s.list[i], s.labelKey) }
func (s labelSource) Len() int            { return len(s.list) }

// FuzzyFilter returns the options matching query as a fuzzy pattern, best
// matches first.
func FuzzyFilter(query string, list []*Option, labelKey string) []*Option {
	if query == "" {
		return list
	}

	matches := fuzzy.FindFrom(query, labelSource{list: list, labelKey: labelKey})
	result := make([]*Option, 0, len(matches))
	for _, m := range matches {
		result = append(result, list[m.Index])
	}
	return result
}

// Apply runs the filter selected by the strategy
func (s Strategy) Apply(query string, list []*Option, labelKey string) []*Option {
	if s == StrategyFuzzy {
		return FuzzyFilter(query, list, labelKey)
	}
	return Filter(query, list, labelKey)
}
