package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"selectkit/internal/config"
	"selectkit/internal/eventbus"
	"selectkit/internal/options"
	"selectkit/internal/ui/clickoutside"
	"selectkit/internal/ui/keys"
	"selectkit/internal/ui/services/events"
	"selectkit/internal/ui/services/navigation"
	"selectkit/internal/ui/services/selection"
	"selectkit/internal/ui/views"
	"selectkit/internal/ui/widgets"
	"selectkit/internal/ui/widgets/autocomplete"
	"selectkit/internal/ui/widgets/selectbox"
)

// Widget ids carried by widget messages
const (
	SelectID       = "select"
	AutocompleteID = "autocomplete"
)

const (
	fieldSelect = iota
	fieldAutocomplete
	fieldCount
)

const statusTimeout = 3 * time.Second

// DemoOptions is the option list used when no options file is configured
func DemoOptions() []*options.Option {
	return []*options.Option{
		options.Record(map[string]string{"value": "Something1", "label": "Something 1"}),
		options.Record(map[string]string{"value": "Something2", "label": "Something 2"}),
		options.Record(map[string]string{"value": "Something3", "label": "Something 3"}),
	}
}

// Model represents the application state
type Model struct {
	cfg      *config.Config
	keys     options.Keys
	bus      eventbus.EventBus
	uiBus    *events.Bus
	tracker  *clickoutside.Tracker
	renderer *views.Renderer
	keyMap   keys.AppKeyMap
	help     help.Model
	helpText *HelpRenderer
	helpOps  *HelpOps
	program  *tea.Program

	selectBox *selectbox.Model
	auto      *autocomplete.Model
	focus     int

	// widget state owned by the host
	selectedOption  *options.Option
	query           string
	selectedOptions []*options.Option
	autoValue       *options.Option

	// revisions of the last widget reports applied
	queryRev     widgets.Revision
	selectionRev widgets.Revision

	width         int
	height        int
	statusMessage string
	statusID      int
	statusPending bool
	scheduleClear func(clearStatusMsg) tea.Cmd
	inPagerMode   bool
	unsubscribe   []func()
}

// NewModel creates the demo host for the given option list
func NewModel(cfg *config.Config, list []*options.Option, bus eventbus.EventBus) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	strategy, err := options.ParseStrategy(cfg.Widgets.FilterStrategy)
	if err != nil {
		return nil, err
	}

	styles := views.NewStyles(cfg.Theme)
	keyMap := keys.DefaultAppKeyMap()
	optKeys := options.Keys{
		Label:    cfg.Widgets.LabelKey,
		Value:    cfg.Widgets.ValueKey,
		Equality: cfg.Widgets.EqualityKey,
	}
	uiBus := events.NewBus()
	renderOption := func(opt *options.Option, _ int) string {
		return "• " + options.DeriveLabel(opt, optKeys.Label)
	}

	m := &Model{
		cfg:      cfg,
		keys:     optKeys,
		bus:      bus,
		uiBus:    uiBus,
		tracker:  clickoutside.NewTracker(),
		renderer: views.NewRenderer(styles),
		keyMap:   keyMap,
		help:     help.New(),
		helpText: NewHelpRenderer(keyMap),
		focus:    fieldSelect,
		selectBox: selectbox.New(selectbox.Config{
			ID:           SelectID,
			Options:      list,
			Keys:         optKeys,
			Placeholder:  cfg.Widgets.SelectPlaceholder,
			Styles:       styles,
			KeyMap:       &keyMap.Widget,
			Bus:          uiBus,
			RenderOption: renderOption,
		}),
		auto: autocomplete.New(autocomplete.Config{
			ID:             AutocompleteID,
			Options:        list,
			Keys:           optKeys,
			Multiple:       cfg.Widgets.Multiple,
			LimitPill:      cfg.Widgets.LimitPill,
			Placeholder:    cfg.Widgets.Placeholder,
			Strategy:       strategy,
			Styles:         styles,
			KeyMap:         &keyMap.Widget,
			Bus:            uiBus,
			RenderOption:   renderOption,
			RenderNoOption: func() string { return " No Type Found" },
		}),
		scheduleClear: clearAfterTimeout,
	}

	m.selectBox.Mount(m.tracker)
	m.auto.Mount(m.tracker)
	m.subscribe()
	return m, nil
}

// subscribe turns widget service events into status messages
func (m *Model) subscribe() {
	m.unsubscribe = append(m.unsubscribe,
		m.uiBus.Subscribe(events.TypeOf(selection.SelectionUnchangedEvent{}), func(e interface{}) {
			m.setStatus(fmt.Sprintf("%s is already selected", e.(selection.SelectionUnchangedEvent).Label))
		}),
		m.uiBus.Subscribe(events.TypeOf(navigation.PopupOpenedEvent{}), func(e interface{}) {
			log.Printf("%s: popup opened", e.(navigation.PopupOpenedEvent).Source)
		}),
		m.uiBus.Subscribe(events.TypeOf(navigation.PopupClosedEvent{}), func(e interface{}) {
			log.Printf("%s: popup closed", e.(navigation.PopupClosedEvent).Source)
		}),
	)
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Close unmounts the widgets and drops the event subscriptions
func (m *Model) Close() {
	m.selectBox.Unmount()
	m.auto.Unmount()
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.focusField(fieldSelect)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.statusTick())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case widgets.SelectedMsg:
		m.applySelected(msg)
		return nil

	case widgets.QueryChangedMsg:
		// the widget already shows its own edits; only newer reports are recorded
		if !m.queryRev.Accept(msg.Rev) {
			return nil
		}
		m.query = msg.Query
		m.publish(eventbus.QueryChangedEvent{Widget: msg.ID, Query: msg.Query})
		return nil

	case widgets.SelectionChangedMsg:
		if msg.Removed != nil {
			m.publish(eventbus.TagRemovedEvent{Widget: msg.ID, Label: m.label(msg.Removed)})
		}
		if !m.selectionRev.Accept(msg.Rev) {
			return nil
		}
		m.selectedOptions = msg.Options
		m.auto.SetSelected(msg.Options)
		if msg.Removed == nil {
			m.publish(eventbus.SelectionCommittedEvent{Widget: msg.ID, Labels: m.labels(msg.Options)})
		}
		return nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.publish(eventbus.ErrorEvent{Message: "Help pager failed", Err: msg.err})
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
		return nil
	}
	return nil
}

func (m *Model) applySelected(msg widgets.SelectedMsg) {
	switch msg.ID {
	case SelectID:
		m.selectedOption = msg.Option
		m.selectBox.SetValue(msg.Option)
	case AutocompleteID:
		m.autoValue = msg.Option
	}
	m.publish(eventbus.SelectionCommittedEvent{Widget: msg.ID, Labels: []string{m.label(msg.Option)}})
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.OptionsLoadedEvent:
		m.setStatus(fmt.Sprintf("Loaded %d options from %s", e.Count, e.Source))
	case eventbus.ErrorEvent:
		m.setStatus(e.Message)
	}
}

// setStatus shows text in the status line until its clear message arrives
func (m *Model) setStatus(text string) {
	m.statusMessage = text
	m.statusID++
	m.statusPending = true
}

// statusTick schedules the clear for a status set during this update
func (m *Model) statusTick() tea.Cmd {
	if !m.statusPending {
		return nil
	}
	m.statusPending = false
	return m.scheduleClear(clearStatusMsg{id: m.statusID})
}

func clearAfterTimeout(msg clearStatusMsg) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return msg })
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// typing reports whether printable keys belong to the query field
func (m *Model) typing() bool {
	return m.focus == fieldAutocomplete && !m.auto.Disabled()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keyMap.Quit) && !m.typing():
		return tea.Quit
	case key.Matches(msg, m.keyMap.Help) && !m.typing():
		return m.showHelp()
	case key.Matches(msg, m.keyMap.NextField):
		return m.focusField((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keyMap.PrevField):
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	}

	if m.focus == fieldSelect {
		return m.selectBox.Update(msg)
	}
	return m.auto.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	m.render()
	if !m.tracker.Dispatch(msg) {
		return nil
	}

	var cmds []tea.Cmd
	switch {
	case m.selectBox.Region().Contains(msg.X, msg.Y):
		if m.focus != fieldSelect {
			cmds = append(cmds, m.focusField(fieldSelect))
		}
	case m.auto.Region().Contains(msg.X, msg.Y):
		if m.focus != fieldAutocomplete {
			cmds = append(cmds, m.focusField(fieldAutocomplete))
		}
	}
	cmds = append(cmds, m.selectBox.Update(msg), m.auto.Update(msg))
	return tea.Batch(cmds...)
}

func (m *Model) focusField(field int) tea.Cmd {
	m.focus = field
	if field == fieldSelect {
		m.auto.Blur()
		m.selectBox.Focus()
		return nil
	}
	m.selectBox.Blur()
	return m.auto.Focus()
}

// showHelp returns a command that shows the key reference using ov pager
func (m *Model) showHelp() tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		return nil
	}
	content := m.helpText.RenderHelpContent()
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) label(opt *options.Option) string {
	return options.DeriveLabel(opt, m.keys.Label)
}

func (m *Model) labels(list []*options.Option) []string {
	out := make([]string, 0, len(list))
	for _, opt := range list {
		out = append(out, m.label(opt))
	}
	return out
}

func (m *Model) summary() []string {
	selected := "none"
	if m.selectedOption != nil {
		selected = m.label(m.selectedOption)
	}
	tags := "none"
	if len(m.selectedOptions) > 0 {
		tags = strings.Join(m.labels(m.selectedOptions), ", ")
	}

	lines := []string{
		"Selected option: " + selected,
		fmt.Sprintf("Query: %q", m.query),
	}
	if m.auto.Multiple() {
		lines = append(lines, "Selected options: "+tags)
	} else if m.autoValue != nil {
		lines = append(lines, "Autocomplete value: "+m.label(m.autoValue))
	}
	return lines
}

// render lays out the screen and moves each widget to where it is drawn
func (m *Model) render() string {
	out, origins := m.renderer.Render(views.ViewState{
		Width:  m.width,
		Height: m.height,
		Title:  "UI Components",
		Fields: []views.Field{
			{Label: "Select", Body: m.selectBox.View()},
			{Label: "Autocomplete", Body: m.auto.View()},
		},
		Summary:       m.summary(),
		StatusMessage: m.statusMessage,
		HelpView:      m.help.View(m.keyMap),
	})
	m.selectBox.SetOrigin(origins[fieldSelect].X, origins[fieldSelect].Y)
	m.auto.SetOrigin(origins[fieldAutocomplete].X, origins[fieldAutocomplete].Y)
	return out
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	return m.render()
}
