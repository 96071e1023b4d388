package ui

import (
	"github.com/five82/jukebox/internal/state"
)

// Pane identifies one of the selectable lists.
type Pane int

const (
	PanePlaylists Pane = iota
	PaneSources
	PaneBrowse
	PaneQueue
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PanePlaylists:
		return "Playlists"
	case PaneSources:
		return "Sources"
	case PaneBrowse:
		return "Browse"
	case PaneQueue:
		return "Queue"
	default:
		return "Unknown"
	}
}

func (p Pane) next() Pane {
	return (p + 1) % paneCount
}

func (p Pane) prev() Pane {
	return (p + paneCount - 1) % paneCount
}

type rowKind int

const (
	rowText rowKind = iota // placeholder or non-interactive label
	rowHeader
	rowOption
	rowPlayable
)

// row is one rendered line of a pane.
type row struct {
	kind  rowKind
	text  string
	value string
}

func (r row) selectable() bool {
	return r.kind == rowOption || r.kind == rowPlayable
}

func optionRows(list state.OptionList) []row {
	if list.Placeholder != "" {
		return []row{{kind: rowText, text: list.Placeholder}}
	}
	rows := make([]row, 0, len(list.Options))
	for _, o := range list.Options {
		rows = append(rows, row{kind: rowOption, text: o.Label, value: o.Value})
	}
	return rows
}

func browseRows(view state.BrowseView) []row {
	if view.Placeholder != "" {
		return []row{{kind: rowText, text: view.Placeholder}}
	}
	var rows []row
	for _, section := range view.Sections {
		rows = append(rows, row{kind: rowHeader, text: section.Title})
		if section.Placeholder != "" {
			rows = append(rows, row{kind: rowText, text: section.Placeholder})
			continue
		}
		for _, entry := range section.Entries {
			if entry.Playable() {
				rows = append(rows, row{kind: rowPlayable, text: entry.Name, value: entry.URI})
				continue
			}
			rows = append(rows, row{kind: rowText, text: entry.Name})
		}
	}
	return rows
}

func queueRows(lines []string) []row {
	rows := make([]row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, row{kind: rowText, text: line})
	}
	return rows
}

// rowsFor returns the rows a pane shows for snap.
func rowsFor(p Pane, snap state.Snapshot) []row {
	switch p {
	case PanePlaylists:
		return optionRows(snap.Playlists)
	case PaneSources:
		return optionRows(snap.Sources)
	case PaneBrowse:
		return browseRows(snap.Browse)
	case PaneQueue:
		return queueRows(snap.Queue)
	default:
		return nil
	}
}

// indexOfValue returns the first selectable row carrying value, or -1.
func indexOfValue(rows []row, value string) int {
	if value == "" {
		return -1
	}
	for i, r := range rows {
		if r.selectable() && r.value == value {
			return i
		}
	}
	return -1
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(cursor, n-1))
}

// visibleWindow returns the [start, end) slice of n rows that fits height
// while keeping cursor in view.
func visibleWindow(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}
