package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// base URL and theme name.
	LayoutCompactWidth = 90
)

// Fixed chrome heights around the scrollable areas.
const (
	headerHeight    = 2 // logo/status line + command bar
	intakeHeight    = 1
	previewHeight   = 2
	artifactsHeight = 4
	footerHeight    = 1
)

// Log display limits.
const (
	// LogTailLines is how much of the diagnostic log the log view reads.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = 250 * time.Millisecond

	// StatusFlashDuration is how long a download message stays in the footer.
	StatusFlashDuration = 6 * time.Second
)
