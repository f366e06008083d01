package tui

import "github.com/charmbracelet/lipgloss"

var (
	focusColor = lipgloss.Color("#E4572E")
	breakColor = lipgloss.Color("#29BF12")
	mutedColor = lipgloss.Color("#888888")

	titleStyle = lipgloss.NewStyle().Bold(true)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())

	statusStyle = lipgloss.NewStyle().Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)
