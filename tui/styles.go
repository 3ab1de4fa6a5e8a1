package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#2E6DA4", Dark: "#7AB8F5"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#C77C02", Dark: "#F0AD4E"}
	successColor = lipgloss.AdaptiveColor{Light: "#3C763D", Dark: "#8BD17C"}
	dangerColor  = lipgloss.AdaptiveColor{Light: "#A94442", Dark: "#F28B82"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	noteStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Width(9).Foreground(accentColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
)
