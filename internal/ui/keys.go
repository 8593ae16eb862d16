package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Intake
	FocusInput key.Binding
	Submit     key.Binding

	// Artifacts
	DownloadReport    key.Binding
	DownloadProcessed key.Binding

	// Views
	ViewLogs        key.Binding
	ToggleLogLevels key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input / back"),
		),

		FocusInput: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "Type an image path"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Analyze path"),
		),

		DownloadReport: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Download report"),
		),
		DownloadProcessed: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Save processed image"),
		),

		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Toggle log view"),
		),
		ToggleLogLevels: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "All levels / warnings only"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusInput, k.DownloadReport, k.DownloadProcessed, k.ViewLogs, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, grouped by section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusInput, k.Submit, k.Escape},
		{k.DownloadReport, k.DownloadProcessed},
		{k.ViewLogs, k.ToggleLogLevels},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageUp, k.HalfPageDown},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
