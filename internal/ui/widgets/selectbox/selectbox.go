// Package selectbox is a single-select dropdown for Bubble Tea programs.
//
// The widget is controlled: it reports choices with widgets.SelectedMsg and
// shows whatever value the host last passed to SetValue.
package selectbox

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectkit/internal/options"
	"selectkit/internal/ui/clickoutside"
	"selectkit/internal/ui/keys"
	"selectkit/internal/ui/services/events"
	"selectkit/internal/ui/services/navigation"
	"selectkit/internal/ui/services/selection"
	"selectkit/internal/ui/views"
	"selectkit/internal/ui/widgets"
	"selectkit/internal/ui/widgets/optionlist"
)

const (
	DefaultPlaceholder = "Select Value"
	defaultWidth       = 20

	arrowClosed = "▾"
	arrowOpen   = "▴"
)

// Config holds the construction inputs of a select box
type Config struct {
	ID          string
	Options     []*options.Option
	Keys        options.Keys
	Placeholder string
	Width       int // inner width of the header
	Styles      *views.Styles
	KeyMap      *keys.WidgetKeyMap
	Bus         events.EventBus

	RenderOption   func(opt *options.Option, index int) string
	RenderNoOption func() string
}

// Model is the select box component
type Model struct {
	widgets.Frame

	id          string
	options     []*options.Option
	value       *options.Option
	keys        options.Keys
	placeholder string
	width       int
	focused     bool

	styles *views.Styles
	keyMap keys.WidgetKeyMap
	nav    *navigation.Service
	sel    *selection.Service
	list   *optionlist.List

	renderOption   func(opt *options.Option, index int) string
	renderNoOption func() string
}

// New creates a closed select box with no value
func New(cfg Config) *Model {
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Styles == nil {
		cfg.Styles = views.DefaultStyles()
	}
	keyMap := keys.DefaultWidgetKeyMap()
	if cfg.KeyMap != nil {
		keyMap = *cfg.KeyMap
	}

	return &Model{
		id:             cfg.ID,
		options:        cfg.Options,
		keys:           cfg.Keys,
		placeholder:    cfg.Placeholder,
		width:          cfg.Width,
		styles:         cfg.Styles,
		keyMap:         keyMap,
		nav:            navigation.NewService(cfg.ID, cfg.Bus),
		sel:            selection.NewService(cfg.ID, selection.ModeSingle, cfg.Keys, cfg.Bus),
		list:           optionlist.New(cfg.Styles),
		renderOption:   cfg.RenderOption,
		renderNoOption: cfg.RenderNoOption,
	}
}

// ID returns the widget id carried by emitted messages
func (m *Model) ID() string { return m.id }

// SetOptions replaces the option list
func (m *Model) SetOptions(list []*options.Option) {
	m.options = list
	m.nav.Clamp(len(list))
}

// Options returns the option list
func (m *Model) Options() []*options.Option { return m.options }

// SetValue sets the displayed value. nil shows the placeholder.
func (m *Model) SetValue(opt *options.Option) { m.value = opt }

// Value returns the displayed value
func (m *Model) Value() *options.Option { return m.value }

// Focus gives the widget keyboard focus
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus and closes the popup
func (m *Model) Blur() {
	m.focused = false
	m.nav.Close(len(m.options))
}

// Focused reports whether the widget has keyboard focus
func (m *Model) Focused() bool { return m.focused }

// IsOpen reports whether the popup is shown
func (m *Model) IsOpen() bool { return m.nav.IsOpen() }

// FocusedIndex returns the highlighted option, -1 for none
func (m *Model) FocusedIndex() int { return m.nav.Focused() }

// SetTransitionHook wraps popup open and close changes
func (m *Model) SetTransitionHook(hook navigation.TransitionHook) {
	m.nav.SetTransitionHook(hook)
}

// Mount registers the widget for outside presses, which close the popup
func (m *Model) Mount(tracker *clickoutside.Tracker) {
	m.Frame.Mount(tracker, m.Region, m.closeOutside)
}

func (m *Model) closeOutside() {
	m.nav.Handle(navigation.Input{Event: navigation.EventOutsideInteraction}, len(m.options))
}

// Update handles key presses while focused and mouse presses on the widget
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Open) {
		m.nav.Open(len(m.options))
		return nil
	}
	in, ok := m.keyMap.Navigation(msg)
	if !ok {
		return nil
	}
	return m.apply(in)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if m.headerRegion().Contains(msg.X, msg.Y) {
		m.nav.Toggle(len(m.options))
		return nil
	}

	if !m.nav.IsOpen() {
		return nil
	}
	popup := m.popupRegion()
	if !popup.Contains(msg.X, msg.Y) {
		return nil
	}
	m.syncList()
	index := m.list.IndexAt(msg.Y - popup.Y)
	if index < 0 {
		return nil
	}
	return m.apply(navigation.Input{Event: navigation.EventPointerSelect, Index: index})
}

func (m *Model) apply(in navigation.Input) tea.Cmd {
	t := m.nav.Handle(in, len(m.options))
	if !t.Commit {
		return nil
	}
	next := m.sel.Choose(m.options[t.Index], selection.Single(m.value))
	return widgets.Emit(widgets.SelectedMsg{ID: m.id, Option: next.Option})
}

func (m *Model) syncList() {
	m.list.SetProps(optionlist.Props{
		Options: m.options,
		Focused: m.nav.Focused(),
		Keys:    m.keys,
		IsSelected: func(opt *options.Option) bool {
			return m.sel.IsSelected(opt, selection.Single(m.value))
		},
		RenderOption:   m.renderOption,
		RenderNoOption: m.renderNoOption,
		MinWidth:       m.width,
	})
}

// Header renders the closed combobox
func (m *Model) Header() string {
	style := m.styles.Combobox
	if m.focused {
		style = m.styles.ComboboxFocus
	}

	arrow := arrowClosed
	if m.nav.IsOpen() {
		arrow = arrowOpen
	}

	text := m.placeholder
	textStyle := m.styles.Placeholder
	if m.value != nil {
		text = options.DeriveLabel(m.value, m.keys.Label)
		textStyle = lipgloss.NewStyle()
	}

	room := m.width - lipgloss.Width(arrow) - 1
	label := textStyle.Width(room).MaxWidth(room).Render(text)
	return style.Render(label + " " + m.styles.Arrow.Render(arrow))
}

// View renders the header and, while open, the popup beneath it
func (m *Model) View() string {
	header := m.Header()
	if !m.nav.IsOpen() {
		return header
	}
	m.syncList()
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

func (m *Model) headerRegion() clickoutside.Region {
	header := m.Header()
	return clickoutside.Region{X: m.X, Y: m.Y, W: lipgloss.Width(header), H: lipgloss.Height(header)}
}

func (m *Model) popupRegion() clickoutside.Region {
	if !m.nav.IsOpen() {
		return clickoutside.Region{}
	}
	m.syncList()
	header := m.headerRegion()
	popup := m.list.View()
	return clickoutside.Region{
		X: m.X,
		Y: m.Y + header.H,
		W: lipgloss.Width(popup),
		H: lipgloss.Height(popup),
	}
}

// Region returns the cells the widget covers, popup included
func (m *Model) Region() clickoutside.Region {
	r := m.headerRegion()
	if popup := m.popupRegion(); !popup.Empty() {
		r.H += popup.H
		if popup.W > r.W {
			r.W = popup.W
		}
	}
	return r
}
