// Package autocomplete is a filterable select for Bubble Tea programs. In
// multiple mode the chosen options show as removable tags in front of the
// query.
//
// Both the query and the selection are controlled by the host: the widget
// reports edits with widgets.QueryChangedMsg, widgets.SelectedMsg and
// widgets.SelectionChangedMsg and renders what the host passes back through
// SetQuery and SetSelected.
package autocomplete

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"selectkit/internal/options"
	"selectkit/internal/ui/clickoutside"
	"selectkit/internal/ui/keys"
	"selectkit/internal/ui/services/events"
	"selectkit/internal/ui/services/navigation"
	"selectkit/internal/ui/services/search"
	"selectkit/internal/ui/services/selection"
	"selectkit/internal/ui/views"
	"selectkit/internal/ui/widgets"
	"selectkit/internal/ui/widgets/optionlist"
)

const (
	DefaultPlaceholder = "Type..."
	DefaultLimitPill   = 2

	defaultWidth    = 16
	defaultTagWidth = 12
	tagClose        = "×"
	ellipsis        = "…"
)

// Config holds the construction inputs of an autocomplete
type Config struct {
	ID       string
	Options  []*options.Option
	Keys     options.Keys
	Multiple bool
	// LimitPill caps the tags shown while the popup is closed. Zero means
	// DefaultLimitPill; a negative value hides every tag while closed.
	LimitPill   int
	Placeholder string
	Disabled    bool
	Strategy    options.Strategy
	Width       int // width of the query field
	TagWidth    int // tag labels are truncated to this many cells
	Styles      *views.Styles
	KeyMap      *keys.WidgetKeyMap
	Bus         events.EventBus

	RenderOption   func(opt *options.Option, index int) string
	RenderNoOption func() string
}

// Model is the autocomplete component
type Model struct {
	widgets.Frame

	id        string
	keys      options.Keys
	multiple  bool
	limitPill int
	disabled  bool
	width     int
	tagWidth  int
	focused   bool
	selected  []*options.Option
	rev       widgets.Revision

	input  textinput.Model
	styles *views.Styles
	keyMap keys.WidgetKeyMap
	search *search.Service
	nav    *navigation.Service
	sel    *selection.Service
	list   *optionlist.List

	renderOption   func(opt *options.Option, index int) string
	renderNoOption func() string
}

// New creates a closed autocomplete with an empty query
func New(cfg Config) *Model {
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.LimitPill == 0 {
		cfg.LimitPill = DefaultLimitPill
	}
	if cfg.LimitPill < 0 {
		cfg.LimitPill = 0
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.TagWidth <= 0 {
		cfg.TagWidth = defaultTagWidth
	}
	if cfg.Strategy == "" {
		cfg.Strategy = options.StrategySubstring
	}
	if cfg.Styles == nil {
		cfg.Styles = views.DefaultStyles()
	}
	keyMap := keys.DefaultWidgetKeyMap()
	if cfg.KeyMap != nil {
		keyMap = *cfg.KeyMap
	}

	mode := selection.ModeSingle
	if cfg.Multiple {
		mode = selection.ModeMultiple
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.Width = cfg.Width
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := &Model{
		id:             cfg.ID,
		keys:           cfg.Keys,
		multiple:       cfg.Multiple,
		limitPill:      cfg.LimitPill,
		disabled:       cfg.Disabled,
		width:          cfg.Width,
		tagWidth:       cfg.TagWidth,
		input:          ti,
		styles:         cfg.Styles,
		keyMap:         keyMap,
		search:         search.NewService(cfg.ID, cfg.Strategy, cfg.Keys.Label, cfg.Bus),
		nav:            navigation.NewService(cfg.ID, cfg.Bus),
		sel:            selection.NewService(cfg.ID, mode, cfg.Keys, cfg.Bus),
		list:           optionlist.New(cfg.Styles),
		renderOption:   cfg.RenderOption,
		renderNoOption: cfg.RenderNoOption,
	}
	m.search.SetOptions(cfg.Options)
	return m
}

// ID returns the widget id carried by emitted messages
func (m *Model) ID() string { return m.id }

// Multiple reports whether the widget holds a set of options
func (m *Model) Multiple() bool { return m.multiple }

// SetOptions replaces the full option list
func (m *Model) SetOptions(list []*options.Option) {
	m.search.SetOptions(list)
	m.nav.Clamp(m.search.GetMatchCount())
}

// SetQuery sets the query text. The host calls it with every
// QueryChangedMsg it accepts.
func (m *Model) SetQuery(query string) {
	if m.input.Value() != query {
		m.input.SetValue(query)
		m.input.CursorEnd()
	}
	m.refilter()
}

// Query returns the query text
func (m *Model) Query() string { return m.input.Value() }

// SetSelected sets the selected options shown as tags
func (m *Model) SetSelected(list []*options.Option) { m.selected = list }

// Selected returns the selected options
func (m *Model) Selected() []*options.Option { return m.selected }

// Matches returns the options that pass the current query
func (m *Model) Matches() []*options.Option { return m.search.Matches() }

// SetDisabled enables or disables the widget. A disabled widget ignores
// input and closes its popup.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.nav.Close(m.search.GetMatchCount())
	}
}

// Disabled reports whether the widget ignores input
func (m *Model) Disabled() bool { return m.disabled }

// Focus gives the widget keyboard focus
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus and closes the popup
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.nav.Close(m.search.GetMatchCount())
}

// Focused reports whether the widget has keyboard focus
func (m *Model) Focused() bool { return m.focused }

// IsOpen reports whether the popup is shown
func (m *Model) IsOpen() bool { return m.nav.IsOpen() }

// FocusedIndex returns the highlighted match, -1 for none
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
	m.nav.Handle(navigation.Input{Event: navigation.EventOutsideInteraction}, m.search.GetMatchCount())
}

func (m *Model) refilter() {
	m.search.SetQuery(m.input.Value())
	m.nav.Clamp(m.search.GetMatchCount())
}

// Update handles key presses while focused and mouse presses on the widget
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.disabled {
		return nil
	}
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
	if in, ok := m.keyMap.Navigation(msg); ok {
		return m.apply(in)
	}

	if key.Matches(msg, m.keyMap.RemoveTag) && m.input.Value() == "" {
		if m.multiple && len(m.selected) > 0 {
			return m.removeTag(m.selected[len(m.selected)-1])
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}

	m.refilter()
	m.nav.Open(m.search.GetMatchCount())
	return tea.Batch(cmd, m.emitQuery())
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if m.headerRegion().Contains(msg.X, msg.Y) {
		if opt := m.tagAt(msg.X, msg.Y); opt != nil {
			return m.removeTag(opt)
		}
		m.nav.Toggle(m.search.GetMatchCount())
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
	t := m.nav.Handle(in, m.search.GetMatchCount())
	if !t.Commit {
		return nil
	}
	return m.commit(m.search.MatchAt(t.Index))
}

// commit resolves a chosen match. Multiple mode clears the query, single
// mode replaces it with the chosen label.
func (m *Model) commit(chosen *options.Option) tea.Cmd {
	if chosen == nil {
		return nil
	}

	if m.multiple {
		next := m.sel.Choose(chosen, selection.Multiple(m.selected))
		m.selected = next.Options
		m.SetQuery("")
		return tea.Batch(m.emitQuery(), m.emitSelection(nil))
	}

	next := m.sel.Choose(chosen, selection.Single(m.current()))
	m.SetQuery(options.DeriveLabel(chosen, m.keys.Label))
	return tea.Batch(
		m.emitQuery(),
		widgets.Emit(widgets.SelectedMsg{ID: m.id, Option: next.Option}),
	)
}

func (m *Model) removeTag(opt *options.Option) tea.Cmd {
	m.selected = m.sel.Dismiss(opt, m.selected)
	return m.emitSelection(opt)
}

// emitQuery reports the current query. The widget keeps its own edits so
// later keystrokes build on them before the host answers.
func (m *Model) emitQuery() tea.Cmd {
	return widgets.Emit(widgets.QueryChangedMsg{ID: m.id, Query: m.input.Value(), Rev: m.rev.Next()})
}

func (m *Model) emitSelection(removed *options.Option) tea.Cmd {
	return widgets.Emit(widgets.SelectionChangedMsg{
		ID:      m.id,
		Options: m.selected,
		Removed: removed,
		Rev:     m.rev.Next(),
	})
}

// current is the option a single-mode query names exactly, if any
func (m *Model) current() *options.Option {
	return options.FindByLabel(m.search.Matches(), m.input.Value(), m.keys.Label)
}

func (m *Model) isSelected(opt *options.Option) bool {
	if m.multiple {
		return m.sel.IsSelected(opt, selection.Multiple(m.selected))
	}
	return m.sel.IsSelected(opt, selection.Single(m.current()))
}

func (m *Model) syncList() {
	m.list.SetProps(optionlist.Props{
		Options:        m.search.Matches(),
		Focused:        m.nav.Focused(),
		Keys:           m.keys,
		IsSelected:     m.isSelected,
		RenderOption:   m.renderOption,
		RenderNoOption: m.renderNoOption,
		MinWidth:       m.width,
	})
}

// VisibleTags returns the tags rendered in the current state: all of them
// while open, the first limitPill while closed.
func (m *Model) VisibleTags() []*options.Option {
	if !m.multiple {
		return nil
	}
	if m.nav.IsOpen() || len(m.selected) <= m.limitPill {
		return m.selected
	}
	return m.selected[:m.limitPill]
}

// Overflow returns the number of tags hidden while the popup is closed
func (m *Model) Overflow() int {
	if !m.multiple || m.nav.IsOpen() {
		return 0
	}
	if n := len(m.selected) - m.limitPill; n > 0 {
		return n
	}
	return 0
}

func (m *Model) tagLabel(opt *options.Option) string {
	label := options.DeriveLabel(opt, m.keys.Label)
	return runewidth.Truncate(label, m.tagWidth, ellipsis)
}

func (m *Model) renderTag(opt *options.Option) string {
	return m.styles.Tag.Render(m.tagLabel(opt) + " " + m.styles.TagClose.Render(tagClose))
}

// content is the single line inside the header border
func (m *Model) content() string {
	var parts []string
	for _, opt := range m.VisibleTags() {
		parts = append(parts, m.renderTag(opt))
	}
	if n := m.Overflow(); n > 0 {
		parts = append(parts, m.styles.Overflow.Render("+"+strconv.Itoa(n)))
	}
	parts = append(parts, m.input.View())
	return strings.Join(parts, " ")
}

// Header renders the bordered field holding tags and query
func (m *Model) Header() string {
	style := m.styles.Combobox
	if m.focused {
		style = m.styles.ComboboxFocus
	}
	if m.disabled {
		style = style.Inherit(m.styles.Disabled)
	}
	return style.Render(m.content())
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

// tagAt returns the tag drawn at the given cell, nil for none
func (m *Model) tagAt(x, y int) *options.Option {
	frame := m.styles.Combobox
	top := m.Y + frame.GetBorderTopSize() + frame.GetPaddingTop()
	if y != top {
		return nil
	}
	left := m.X + frame.GetBorderLeftSize() + frame.GetPaddingLeft()
	for _, opt := range m.VisibleTags() {
		w := lipgloss.Width(m.renderTag(opt))
		if x >= left && x < left+w {
			return opt
		}
		left += w + 1
	}
	return nil
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
