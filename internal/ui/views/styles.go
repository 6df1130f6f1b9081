package views

import (
	"github.com/charmbracelet/lipgloss"

	"selectkit/internal/config"
)

// Styles contains all the style definitions for the widgets
type Styles struct {
	Main          lipgloss.Style
	Title         lipgloss.Style
	Label         lipgloss.Style
	Combobox      lipgloss.Style
	ComboboxFocus lipgloss.Style
	Placeholder   lipgloss.Style
	Arrow         lipgloss.Style
	Popup         lipgloss.Style
	Option        lipgloss.Style
	OptionActive  lipgloss.Style
	OptionFocused lipgloss.Style
	NoOption      lipgloss.Style
	Tag           lipgloss.Style
	TagClose      lipgloss.Style
	Overflow      lipgloss.Style
	Disabled      lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme
func NewStyles(theme config.Theme) *Styles {
	border := lipgloss.Color(theme.Border)
	return &Styles{
		Main: lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Active)).
			MarginBottom(1),
		Label: lipgloss.NewStyle().Bold(true),
		Combobox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ComboboxFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Focus)).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Dim)),
		Arrow:       lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Dim)),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border),
		Option:        lipgloss.NewStyle().Padding(0, 1),
		OptionActive:  lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color(theme.Active)),
		OptionFocused: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")).Bold(true),
		NoOption:      lipgloss.NewStyle().Padding(0, 1).Faint(true),
		Tag: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Tag)).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1),
		TagClose: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Tag)).
			Foreground(lipgloss.Color("252")).
			Bold(true),
		Overflow: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Dim)),
		Disabled: lipgloss.NewStyle().Faint(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}

// DefaultStyles uses the default theme
func DefaultStyles() *Styles {
	return NewStyles(config.DefaultConfig().Theme)
}
