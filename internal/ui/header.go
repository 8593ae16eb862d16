package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const logo = "defectscope"

// renderHeader renders the status line: logo, phase badge, spinner and
// the backend the client talks to.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render(logo),
		styles.PhaseStyle(m.snapshot.Phase).Render(m.snapshot.Phase.String()),
	}
	if m.snapshot.Busy {
		parts = append(parts, m.spinner.View())
	}
	if m.inflight > 1 {
		parts = append(parts, styles.WarningText.Render("superseded submission running"))
	}
	if m.width >= LayoutCompactWidth {
		parts = append(parts, styles.MutedText.Render(m.baseURL))
		if !m.snapshot.LastUpdated.IsZero() {
			parts = append(parts, styles.FaintText.Render("updated "+humanizeDuration(time.Since(m.snapshot.LastUpdated))))
		}
	}

	line := strings.Join(parts, " ")
	return styles.Header.Width(m.width).Render(line)
}

// renderCommandBar lists the short help bindings.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var items []string
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		items = append(items, styles.Key.Render("<"+h.Key+">")+" "+styles.MutedText.Render(h.Desc))
	}
	if m.view == ViewLogs {
		h := m.keys.ToggleLogLevels.Help()
		items = append(items, styles.Key.Render("<"+h.Key+">")+" "+styles.MutedText.Render(h.Desc))
	}
	return lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(strings.Join(items, "  "))
}

// renderFooter shows the last recorded error, a recent download, or the
// active theme.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	text := styles.FaintText.Render("theme " + m.theme.Name)
	switch {
	case m.snapshot.LastError != nil:
		maxErr := 80
		if m.width < LayoutCompactWidth {
			maxErr = 40
		}
		errText := truncateMiddle(m.snapshot.LastError.Error(), maxErr)
		text = styles.DangerText.Bold(true).Render("ERROR") + " " + styles.DangerText.Render(errText)
	case m.flash != "" && time.Since(m.flashAt) < StatusFlashDuration:
		text = styles.SuccessText.Render(m.flash)
	}
	return styles.Footer.Width(m.width).Render(text)
}
