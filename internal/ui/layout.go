package ui

import "time"

// Layout sizes.
const (
	// headerHeight covers the title line, progress bar and error line.
	headerHeight = 3

	// footerHeight covers the add input box and the command bar.
	footerHeight = 4

	// minListHeight keeps at least a few rows visible on tiny terminals.
	minListHeight = 3

	// progressBarWidth is the width of the completion bar in cells.
	progressBarWidth = 24
)

// Input limits.
const (
	// TitleCharLimit caps the length of a todo title typed in the UI.
	TitleCharLimit = 200
)

// Log overlay limits.
const (
	// LogOverlayLines is the number of log records the overlay reads.
	LogOverlayLines = 200
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI pulls a fresh snapshot from the
	// store, which picks up background refreshes.
	DefaultUIInterval = time.Second
)
