package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"selectkit/internal/ui/keys"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

var helpSections = []string{"Navigation", "Choosing", "Application"}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keyMap keys.AppKeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keyMap keys.AppKeyMap) *HelpRenderer {
	return &HelpRenderer{keyMap: keyMap}
}

// RenderHelpContent generates the full key reference shown in the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("selectkit Help"))
	help.WriteString("\n")

	for i, column := range r.keyMap.FullHelp() {
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, b := range column {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Width(10).Render(b.Help().Key), descStyle.Render(b.Help().Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Click a field to focus it, a tag to remove it, anywhere else to close the popup."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return fmt.Errorf("failed to release terminal: %w", err)
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	// ov v0.37 has no IsWriteOnExit; IsWriteOriginal alone controls writing on exit.
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
