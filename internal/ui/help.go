package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/noborus/ov/oviewer"

	"spotlight/internal/domain"
	"spotlight/internal/ui/input/types"
)

// helpSections names the columns of KeyMap.FullHelp
var helpSections = []string{"Palette", "Navigation", "Commands"}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys types.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent renders the key reference followed by the catalog,
// wrapped to width
func (r *HelpRenderer) RenderHelpContent(items []domain.Item, width int) string {
	if width <= 0 {
		width = 80
	}

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

	help.WriteString(titleStyle.Render("Spotlight Help"))
	help.WriteString("\n")

	for i, column := range r.keys.FullHelp() {
		title := "Other"
		if i < len(helpSections) {
			title = helpSections[i]
		}
		help.WriteString(sectionStyle.Render(title))
		help.WriteString("\n")

		keyWidth := 0
		for _, b := range column {
			keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
		}
		for _, b := range column {
			if !b.Enabled() {
				continue
			}
			k := b.Help().Key
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(k)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(k), pad, descStyle.Render(b.Help().Desc)))
		}
		help.WriteString("\n")
	}

	if len(items) > 0 {
		help.WriteString(sectionStyle.Render("Catalog"))
		help.WriteString("\n")
		for _, item := range items {
			line := "  " + item.Label
			if item.Shortcut != "" {
				line += "  " + keyStyle.Render(item.Shortcut)
			}
			if item.Disabled {
				line += descStyle.Render("  (disabled)")
			}
			help.WriteString(line)
			help.WriteString("\n")
			if item.Description != "" {
				wrapped := wordwrap.String(item.Description, max(20, width-6))
				help.WriteString(descStyle.Render(indent.String(wrapped, 4)))
				help.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

// Terminal is the part of a running program that must let go of the screen
// while the pager owns it
type Terminal interface {
	ReleaseTerminal() error
	RestoreTerminal() error
}

// HelpOps handles help operations
type HelpOps struct {
	terminal Terminal // nil when no program holds the screen
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(terminal Terminal) *HelpOps {
	return &HelpOps{
		terminal: terminal,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.terminal != nil {
		// Release terminal control to run ov
		if err := h.terminal.ReleaseTerminal(); err != nil {
			return err
		}

		// Ensure terminal is restored even if ov fails
		defer func() {
			// Small delay to ensure ov has fully exited before restoring terminal
			time.Sleep(100 * time.Millisecond)
			_ = h.terminal.RestoreTerminal()
		}()
	}

	reader := strings.NewReader(helpContent)

	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
