package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// alertModal is a blocking notice dismissed by any key.
type alertModal struct {
	title string
	text  string
}

func newAlert(title, text string) alertModal {
	return alertModal{title: title, text: text}
}

func (a alertModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return a, nil, true
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	body := styles.WarningText.Bold(true).Render(a.title) + "\n\n" +
		styles.Text.Render(a.text) + "\n\n" +
		styles.FaintText.Render("press any key")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(1, 2).
		MaxWidth(max(width-4, 20)).
		Render(body)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
