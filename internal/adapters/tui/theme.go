package tui

import "github.com/charmbracelet/lipgloss"

// The palette follows the terminal's 256-color space so the client
// renders the same on dark and light schemes as long as the scheme
// maps the standard slots sanely.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	widgetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	widgetTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	// Bucket colors match the conventional traffic-light reading:
	// weak red, medium yellow, strong green.
	weakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	strongStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	// unknownScore renders a score whose value never arrived. Distinct
	// from "0", which is a real score.
	unknownScore = faintStyle.Render("—")
)
