package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionCommitted EventType = "SelectionCommitted"
	EventTagRemoved         EventType = "TagRemoved"
	EventQueryChanged       EventType = "QueryChanged"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventOptionsLoaded      EventType = "OptionsLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionCommittedEvent is emitted when a widget hands a new selection to its host
type SelectionCommittedEvent struct {
	Widget string
	Labels []string // selected labels in order; one entry for single-select
}

func (e SelectionCommittedEvent) Type() EventType { return EventSelectionCommitted }

// TagRemovedEvent is emitted when a tag is dismissed from a multi-select
type TagRemovedEvent struct {
	Widget string
	Label  string
}

func (e TagRemovedEvent) Type() EventType { return EventTagRemoved }

// QueryChangedEvent is emitted when the autocomplete query changes
type QueryChangedEvent struct {
	Widget string
	Query  string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path        string
	OptionsFile string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// OptionsLoadedEvent is emitted once the option list is available
type OptionsLoadedEvent struct {
	Source string
	Count  int
}

func (e OptionsLoadedEvent) Type() EventType { return EventOptionsLoaded }
