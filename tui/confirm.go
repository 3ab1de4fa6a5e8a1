package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmedMsg is sent when the user confirms the action.
type ConfirmedMsg struct{}

// CancelledMsg is sent when the user cancels the action.
type CancelledMsg struct{}

// confirmDialog is a y/n prompt drawn over the list
type confirmDialog struct {
	Active bool
	Prompt string
	Detail string
	keys   confirmKeyMap
}

func newConfirmDialog() confirmDialog {
	return confirmDialog{keys: defaultConfirmKeyMap}
}

// Activate prepares the dialog for display with a given prompt.
func (m *confirmDialog) Activate(prompt, detail string) {
	m.Prompt = prompt
	m.Detail = detail
	m.Active = true
}

func (m confirmDialog) Update(msg tea.Msg) (confirmDialog, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.Active = false
			return m, func() tea.Msg { return ConfirmedMsg{} }
		case key.Matches(msg, m.keys.Cancel):
			m.Active = false
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return m, nil
}

func (m confirmDialog) View() string {
	if !m.Active {
		return ""
	}

	body := m.Prompt
	if m.Detail != "" {
		body += "\n\n" + faintStyle.Render(m.Detail)
	}

	dialogBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warnColor).
		Padding(1, 2).
		Render(body)

	helpText := faintStyle.
		Width(lipgloss.Width(dialogBox)).
		Align(lipgloss.Center).
		Render("(y/n)")

	return lipgloss.JoinVertical(lipgloss.Left, dialogBox, helpText)
}

type confirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var defaultConfirmKeyMap = confirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}
