package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which only the focused pane is
	// drawn.
	LayoutCompactWidth = 100

	// LayoutArtWidth is the minimum width to show the album art URL.
	LayoutArtWidth = 120
)

// Log view limits.
const (
	// LogTailLines is the number of log lines read for the log view.
	LogTailLines = 500

	// LogPrefix is the prefix the logger writes in front of each line.
	LogPrefix = "jukebox"
)

// Timing constants.
const (
	// LogRefreshInterval is how often the log view rereads the file.
	LogRefreshInterval = time.Second

	// VolumeStep is the change applied by one volume key press.
	VolumeStep = 5
)
