// Package optionlist renders the popup list shared by the selection widgets.
package optionlist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"selectkit/internal/options"
	"selectkit/internal/ui/views"
)

const (
	markerSelected = "✓ "
	markerFocused  = "› "
	markerNone     = "  "

	// DefaultNoOption is shown when the list is empty
	DefaultNoOption = " No Option"
)

// Props are the inputs of one render
type Props struct {
	Options    []*options.Option
	Focused    int
	Keys       options.Keys
	IsSelected func(opt *options.Option) bool
	// RenderOption replaces the default label of a row. Only the first line
	// of its result is used so rows stay one cell high.
	RenderOption   func(opt *options.Option, index int) string
	RenderNoOption func() string
	MinWidth       int
}

// List is the options-list rendering surface
type List struct {
	styles *views.Styles
	props  Props
}

// New creates a list with the given styles
func New(styles *views.Styles) *List {
	if styles == nil {
		styles = views.DefaultStyles()
	}
	return &List{styles: styles, props: Props{Focused: -1}}
}

// SetProps replaces the render inputs
func (l *List) SetProps(p Props) {
	l.props = p
}

// Props returns the current render inputs
func (l *List) Props() Props {
	return l.props
}

// Selected reports whether the option at index is part of the selection
func (l *List) Selected(index int) bool {
	if index < 0 || index >= len(l.props.Options) || l.props.IsSelected == nil {
		return false
	}
	return l.props.IsSelected(l.props.Options[index])
}

// Label returns the text shown for the option at index
func (l *List) Label(index int) string {
	if index < 0 || index >= len(l.props.Options) {
		return ""
	}
	opt := l.props.Options[index]
	text := options.DeriveLabel(opt, l.props.Keys.Label)
	if l.props.RenderOption != nil {
		text = l.props.RenderOption(opt, index)
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

// Rows returns the plain text of every row, markers included
func (l *List) Rows() []string {
	if len(l.props.Options) == 0 {
		return []string{l.noOption()}
	}
	rows := make([]string, len(l.props.Options))
	for i := range l.props.Options {
		rows[i] = l.marker(i) + l.Label(i)
	}
	return rows
}

func (l *List) marker(index int) string {
	switch {
	case l.Selected(index):
		return markerSelected
	case index == l.props.Focused:
		return markerFocused
	default:
		return markerNone
	}
}

func (l *List) noOption() string {
	if l.props.RenderNoOption != nil {
		return l.props.RenderNoOption()
	}
	return DefaultNoOption
}

// Width returns the inner width of the popup
func (l *List) Width() int {
	width := l.props.MinWidth
	for _, row := range l.Rows() {
		if w := lipgloss.Width(row); w > width {
			width = w
		}
	}
	return width
}

// Height returns the number of terminal rows the rendered popup occupies
func (l *List) Height() int {
	return lipgloss.Height(l.View())
}

// View renders the popup
func (l *List) View() string {
	rows := l.Rows()
	width := l.Width()

	if len(l.props.Options) == 0 {
		line := l.styles.NoOption.Width(width + 2).Render(rows[0])
		return l.styles.Popup.Render(line)
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		style := l.styles.Option
		if l.Selected(i) {
			style = l.styles.OptionActive
		}
		if i == l.props.Focused {
			style = l.styles.OptionFocused
		}
		lines[i] = style.Width(width + 2).Render(row)
	}
	return l.styles.Popup.Render(strings.Join(lines, "\n"))
}

// IndexAt maps a row of the rendered popup, counted from its top border, to
// an option index. It returns -1 for borders and for the empty placeholder.
func (l *List) IndexAt(row int) int {
	index := row - 1 // top border
	if index < 0 || index >= len(l.props.Options) {
		return -1
	}
	return index
}
