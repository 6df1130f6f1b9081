package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectkit/internal/config"
	"selectkit/internal/eventbus"
	"selectkit/internal/options"
	"selectkit/internal/ui/keys"
)

func newTestModel(t *testing.T, bus eventbus.EventBus) *Model {
	t.Helper()
	m, err := NewModel(config.DefaultConfig(), DemoOptions(), bus)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m.scheduleClear = func(clearStatusMsg) tea.Cmd { return nil }
	run(m, m.Init())
	return m
}

// captureClears records scheduled status clears instead of waiting for them
func captureClears(m *Model) *[]clearStatusMsg {
	var pending []clearStatusMsg
	m.scheduleClear = func(msg clearStatusMsg) tea.Cmd {
		pending = append(pending, msg)
		return func() tea.Msg { return nil }
	}
	return &pending
}

// messages runs cmd and flattens batches without delivering anything
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func deliver(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

// drive feeds msg to the model and then every message its commands produce
func drive(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	run(m, cmd)
}

func run(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(m, c)
		}
		return
	}
	if msg == nil {
		return
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		return
	}
	drive(m, msg)
}

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestSelectFlowUpdatesHostState(t *testing.T) {
	m := newTestModel(t, nil)

	drive(m, keyPress(tea.KeySpace))
	require.True(t, m.selectBox.IsOpen())
	drive(m, keyPress(tea.KeyDown))
	drive(m, keyPress(tea.KeyEnter))

	require.NotNil(t, m.selectedOption)
	assert.Equal(t, "Something 1", m.label(m.selectedOption))
	assert.Same(t, m.selectedOption, m.selectBox.Value())
	assert.Contains(t, ansi.Strip(m.View()), "Selected option: Something 1")
}

func TestTabMovesFocusToQuery(t *testing.T) {
	m := newTestModel(t, nil)
	drive(m, keyPress(tea.KeyTab))
	require.Equal(t, fieldAutocomplete, m.focus)
	assert.True(t, m.auto.Focused())
	assert.False(t, m.selectBox.Focused())

	// q and ? are typed into the query instead of quitting or opening help
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.False(t, quit)

	drive(m, runes("?"))
	assert.Equal(t, "q?", m.auto.Query())

	drive(m, keyPress(tea.KeyShiftTab))
	assert.Equal(t, fieldSelect, m.focus)
}

func TestQuitFromSelect(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(keyPress(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAutocompleteMultipleFlow(t *testing.T) {
	m := newTestModel(t, nil)
	drive(m, keyPress(tea.KeyTab))

	drive(m, runes("2"))
	assert.Equal(t, "2", m.query)
	require.True(t, m.auto.IsOpen())

	drive(m, keyPress(tea.KeyDown))
	drive(m, keyPress(tea.KeyEnter))
	require.Len(t, m.selectedOptions, 1)
	assert.Equal(t, "Something 2", m.label(m.selectedOptions[0]))
	assert.Equal(t, "", m.query)
	assert.Equal(t, m.selectedOptions, m.auto.Selected())
	assert.Contains(t, ansi.Strip(m.View()), "Selected options: Something 2")

	drive(m, keyPress(tea.KeyBackspace))
	assert.Empty(t, m.selectedOptions)
	assert.Empty(t, m.auto.Selected())
}

func TestMouseFocusAndOutsideClick(t *testing.T) {
	m := newTestModel(t, nil)
	m.View()

	drive(m, click(m.selectBox.X+1, m.selectBox.Y+1))
	require.True(t, m.selectBox.IsOpen())
	assert.Equal(t, fieldSelect, m.focus)

	drive(m, click(m.auto.X+1, m.auto.Y+1))
	assert.False(t, m.selectBox.IsOpen(), "a press elsewhere closes the select popup")
	assert.True(t, m.auto.IsOpen())
	assert.Equal(t, fieldAutocomplete, m.focus)

	drive(m, click(0, 0))
	assert.False(t, m.auto.IsOpen())
}

func TestDomainEventsReachTheBus(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	committed := make(chan eventbus.SelectionCommittedEvent, 4)
	bus.Subscribe(eventbus.EventSelectionCommitted, func(e eventbus.DomainEvent) {
		committed <- e.(eventbus.SelectionCommittedEvent)
	})

	m := newTestModel(t, bus)
	drive(m, keyPress(tea.KeySpace))
	drive(m, keyPress(tea.KeyEnd))
	drive(m, keyPress(tea.KeyEnter))

	select {
	case e := <-committed:
		assert.Equal(t, SelectID, e.Widget)
		assert.Equal(t, []string{"Something 3"}, e.Labels)
	case <-time.After(2 * time.Second):
		t.Fatal("no SelectionCommitted event")
	}
}

func TestPagerFailurePublishesError(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	reported := make(chan eventbus.ErrorEvent, 1)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		reported <- e.(eventbus.ErrorEvent)
	})

	m := newTestModel(t, bus)
	m.Update(helpPagerMsg{err: errors.New("no tty")})

	select {
	case e := <-reported:
		assert.Equal(t, "Help pager failed", e.Message)
		assert.EqualError(t, e.Err, "no tty")
	case <-time.After(2 * time.Second):
		t.Fatal("no Error event")
	}
}

func TestEventMsgSetsStatus(t *testing.T) {
	m := newTestModel(t, nil)
	pending := captureClears(m)
	_, cmd := m.Update(EventMsg{Event: eventbus.OptionsLoadedEvent{Source: "demo", Count: 3}})
	assert.NotNil(t, cmd)
	require.Len(t, *pending, 1)
	assert.Contains(t, ansi.Strip(m.View()), "Loaded 3 options from demo")

	m.Update((*pending)[0])
	assert.NotContains(t, ansi.Strip(m.View()), "Loaded 3 options")
}

func TestOlderClearKeepsNewerStatus(t *testing.T) {
	m := newTestModel(t, nil)
	pending := captureClears(m)
	m.Update(EventMsg{Event: eventbus.OptionsLoadedEvent{Source: "demo", Count: 3}})
	m.Update(EventMsg{Event: eventbus.ErrorEvent{Message: "Help pager failed"}})
	require.Len(t, *pending, 2)

	m.Update((*pending)[0])
	assert.Contains(t, ansi.Strip(m.View()), "Help pager failed")
	m.Update((*pending)[1])
	assert.NotContains(t, ansi.Strip(m.View()), "Help pager failed")
}

func TestStatusClearsAfterTimeout(t *testing.T) {
	assert.NotNil(t, clearAfterTimeout(clearStatusMsg{id: 1}))
}

func TestAlreadySelectedShowsStatus(t *testing.T) {
	m := newTestModel(t, nil)
	pending := captureClears(m)
	opt := DemoOptions()[0]
	m.selectedOptions = []*options.Option{opt}
	m.auto.SetSelected(m.selectedOptions)

	drive(m, keyPress(tea.KeyTab))
	drive(m, runes("1"))
	drive(m, keyPress(tea.KeyDown))
	require.Empty(t, *pending)
	_, cmd := m.Update(keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	run(m, cmd)

	assert.Len(t, m.selectedOptions, 1)
	assert.Contains(t, ansi.Strip(m.View()), "Something 1 is already selected")
	require.Len(t, *pending, 1)

	m.Update((*pending)[0])
	assert.NotContains(t, ansi.Strip(m.View()), "already selected")
}

func TestLateQueryReportDoesNotUndoTyping(t *testing.T) {
	m := newTestModel(t, nil)
	drive(m, keyPress(tea.KeyTab))

	_, first := m.Update(runes("S"))
	_, second := m.Update(runes("o"))
	deliver(m, messages(second))
	deliver(m, messages(first))

	assert.Equal(t, "So", m.auto.Query())
	assert.Equal(t, "So", m.query)
}

func TestRepeatedBackspaceDeliveredOutOfOrder(t *testing.T) {
	m := newTestModel(t, nil)
	m.selectedOptions = DemoOptions()
	m.auto.SetSelected(m.selectedOptions)
	drive(m, keyPress(tea.KeyTab))

	_, first := m.Update(keyPress(tea.KeyBackspace))
	_, second := m.Update(keyPress(tea.KeyBackspace))
	deliver(m, messages(second))
	deliver(m, messages(first))

	assert.Equal(t, []string{"Something 1"}, m.labels(m.selectedOptions))
	assert.Equal(t, []string{"Something 1"}, m.labels(m.auto.Selected()))
}

func TestNewModelRejectsUnknownStrategy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Widgets.FilterStrategy = "regex"
	_, err := NewModel(cfg, DemoOptions(), nil)
	assert.Error(t, err)
}

func TestHelpContentListsBindings(t *testing.T) {
	content := ansi.Strip(NewHelpRenderer(keys.DefaultAppKeyMap()).RenderHelpContent())
	for _, want := range []string{"Navigation", "enter", "choose", "tab", "quit"} {
		assert.Contains(t, content, want)
	}
}

func TestShowHelpWithoutProgram(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Nil(t, m.showHelp())
	assert.Error(t, NewHelpOps(nil).ShowHelpInPager("x"))
}
