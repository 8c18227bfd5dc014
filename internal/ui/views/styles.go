package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Box         lipgloss.Style
	Input       lipgloss.Style
	GroupHeader lipgloss.Style
	Row         lipgloss.Style
	Active      lipgloss.Style
	Disabled    lipgloss.Style
	Description lipgloss.Style
	Shortcut    lipgloss.Style
	Icon        lipgloss.Style
	Highlight   lipgloss.Style
	Scroll      lipgloss.Style
	Empty       lipgloss.Style
	Loading     lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Backdrop    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Input:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		GroupHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Row:         lipgloss.NewStyle(),
		Active:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Shortcut:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Icon:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Help:        lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Backdrop:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
