package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"selectkit/internal/ui/services/navigation"
)

// WidgetKeyMap holds the bindings a selection widget reacts to
type WidgetKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Commit    key.Binding
	Dismiss   key.Binding
	Open      key.Binding
	RemoveTag key.Binding
}

// DefaultWidgetKeyMap returns the standard widget bindings
func DefaultWidgetKeyMap() WidgetKeyMap {
	return WidgetKeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Open:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "open")),
		RemoveTag: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "remove last tag")),
	}
}

// Navigation maps a key press to a popup input. ok is false for keys the
// popup does not handle.
func (k WidgetKeyMap) Navigation(msg tea.KeyMsg) (in navigation.Input, ok bool) {
	switch {
	case key.Matches(msg, k.Commit):
		return navigation.Input{Event: navigation.EventKeyEnter}, true
	case key.Matches(msg, k.Dismiss):
		return navigation.Input{Event: navigation.EventKeyEscape}, true
	case key.Matches(msg, k.Down):
		return navigation.Input{Event: navigation.EventKeyArrowDown}, true
	case key.Matches(msg, k.Up):
		return navigation.Input{Event: navigation.EventKeyArrowUp}, true
	case key.Matches(msg, k.Home):
		return navigation.Input{Event: navigation.EventKeyHome}, true
	case key.Matches(msg, k.End):
		return navigation.Input{Event: navigation.EventKeyEnd}, true
	}
	return navigation.Input{}, false
}

// AppKeyMap holds the bindings of the demo host
type AppKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Help      key.Binding
	Quit      key.Binding
	Widget    WidgetKeyMap
}

// DefaultAppKeyMap returns the standard host bindings
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Widget:    DefaultWidgetKeyMap(),
	}
}

// ShortHelp implements help.KeyMap
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Widget.Down, k.Widget.Commit, k.Widget.Dismiss, k.NextField, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Widget.Up, k.Widget.Down, k.Widget.Home, k.Widget.End},
		{k.Widget.Open, k.Widget.Commit, k.Widget.Dismiss, k.Widget.RemoveTag},
		{k.NextField, k.PrevField, k.Help, k.Quit},
	}
}
