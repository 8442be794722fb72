package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Summary     lipgloss.Style
	Paginated   lipgloss.Style
	Visual      lipgloss.Style
	Cursor      lipgloss.Style
	Checked     lipgloss.Style
	Main        lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Summary:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Paginated:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		Visual:      lipgloss.NewStyle().Background(lipgloss.Color("60")),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
