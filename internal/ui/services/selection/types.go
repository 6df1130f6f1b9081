package selection

import "selectkit/internal/options"

// Mode decides whether a widget holds one option or many. It is fixed per widget.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMultiple
)

func (m Mode) String() string {
	if m == ModeMultiple {
		return "multiple"
	}
	return "single"
}

// Kind tells which variant a Selection holds
type Kind int

const (
	KindNone Kind = iota
	KindSingle
	KindMultiple
)

// Selection is the value a widget reports to its host
type Selection struct {
	Kind    Kind
	Option  *options.Option   // KindSingle
	Options []*options.Option // KindMultiple, in insertion order
}

// None is the empty selection
func None() Selection {
	return Selection{Kind: KindNone}
}

// Single wraps one option. A nil option is no selection.
func Single(opt *options.Option) Selection {
	if opt == nil {
		return None()
	}
	return Selection{Kind: KindSingle, Option: opt}
}

// Multiple wraps an ordered set of options
func Multiple(opts []*options.Option) Selection {
	return Selection{Kind: KindMultiple, Options: opts}
}

// Items returns the selected options as a list regardless of kind
func (s Selection) Items() []*options.Option {
	switch s.Kind {
	case KindSingle:
		return []*options.Option{s.Option}
	case KindMultiple:
		return s.Options
	default:
		return nil
	}
}

// Event types
type SelectionChangedEvent struct {
	Source  string
	Added   []string
	Removed []string
	Total   int
}

type SelectionUnchangedEvent struct {
	Source string
	Label  string
}
