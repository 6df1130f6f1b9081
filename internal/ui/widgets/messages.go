package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"selectkit/internal/options"
)

// SelectedMsg reports a single chosen option to the host
type SelectedMsg struct {
	ID     string
	Option *options.Option
}

// SelectionChangedMsg reports the new selected set of a multi-select
type SelectionChangedMsg struct {
	ID      string
	Options []*options.Option
	Removed *options.Option // set when a tag was dismissed
	Rev     uint64
}

// QueryChangedMsg reports a new autocomplete query to the host
type QueryChangedMsg struct {
	ID    string
	Query string
	Rev   uint64
}

// Revision orders the messages one widget emits. Commands run
// concurrently, so a host may receive them out of order and should drop any
// message older than the last one it applied.
type Revision struct {
	last uint64
}

// Next returns the revision for a new message
func (r *Revision) Next() uint64 {
	r.last++
	return r.last
}

// Accept reports whether rev is newer than every revision accepted so far
func (r *Revision) Accept(rev uint64) bool {
	if rev <= r.last {
		return false
	}
	r.last = rev
	return true
}

// Emit wraps a message in a command
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
