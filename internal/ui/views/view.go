package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = 4

// Field is one labelled widget of the demo screen
type Field struct {
	Label string
	Body  string
}

// Origin is the screen cell where a field body starts
type Origin struct {
	X, Y int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Title         string
	Fields        []Field
	Summary       []string
	StatusMessage string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = DefaultStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view and the origin of every field body,
// in field order
func (r *Renderer) Render(state ViewState) (string, []Origin) {
	content := &strings.Builder{}

	title := r.styles.Title.Render(state.Title)
	content.WriteString(title)
	content.WriteString("\n")

	left := r.styles.Main.GetPaddingLeft()
	top := r.styles.Main.GetPaddingTop() + lipgloss.Height(title)

	columns := make([]string, 0, len(state.Fields)*2)
	origins := make([]Origin, 0, len(state.Fields))
	x := left
	for i, f := range state.Fields {
		label := r.styles.Label.Render(f.Label)
		col := lipgloss.JoinVertical(lipgloss.Left, label, f.Body)
		origins = append(origins, Origin{X: x, Y: top + lipgloss.Height(label)})

		if i > 0 {
			columns = append(columns, strings.Repeat(" ", columnGap))
		}
		columns = append(columns, col)
		x += lipgloss.Width(col) + columnGap
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	if len(state.Summary) > 0 {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(strings.Join(state.Summary, "\n")))
	}
	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Placeholder.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding
		availableLines := state.Height - r.styles.Main.GetVerticalPadding()
		paddingNeeded := availableLines - currentLines - lipgloss.Height(state.HelpView)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String()), origins
}
