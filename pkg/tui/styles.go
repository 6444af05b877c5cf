package tui

import "github.com/charmbracelet/lipgloss"

// color palette
const (
	colorPrimary = "#7D56F4"
	colorError   = "#FF5F5F"
	colorInfo    = "#626262"
	colorSection = "#04B575"
	colorCursor  = "#FAFAFA"
)

// styles for the story list
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSection))

	CursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorCursor)).
		Background(lipgloss.Color(colorPrimary))
)
