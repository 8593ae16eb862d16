package ui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/defectscope/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

// refreshLogs reads the diagnostic log off the UI goroutine.
func (m Model) refreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	path := m.logPath
	minLevel := slog.LevelWarn
	if m.logAll {
		minLevel = slog.LevelDebug
	}
	return func() tea.Msg {
		lines, err := logtail.Tail(path, LogTailLines, minLevel)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logLines = []string{"log unavailable: " + msg.err.Error()}
	} else {
		m.logLines = msg.lines
	}
	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.formatLogLines())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m Model) formatLogLines() string {
	styles := m.theme.Styles()
	if len(m.logLines) == 0 {
		if m.logAll {
			return styles.FaintText.Render("log is empty")
		}
		return styles.FaintText.Render("no warnings or errors")
	}
	out := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		level, ok := logtail.Level(line)
		switch {
		case !ok:
			out = append(out, styles.FaintText.Render(line))
		case level >= slog.LevelError:
			out = append(out, styles.DangerText.Render(line))
		case level >= slog.LevelWarn:
			out = append(out, styles.WarningText.Render(line))
		case level >= slog.LevelInfo:
			out = append(out, styles.Text.Render(line))
		default:
			out = append(out, styles.MutedText.Render(line))
		}
	}
	return strings.Join(out, "\n")
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	scope := "warnings and errors"
	if m.logAll {
		scope = "all levels"
	}
	title := styles.Title.Render("Diagnostic log") + " " + styles.FaintText.Render(scope+" · "+m.logPath)
	return title + "\n" + m.logViewport.View()
}
