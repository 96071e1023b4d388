package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jukebox/internal/logtail"
	"github.com/five82/jukebox/internal/panel"
)

const (
	headerLines = 3
	footerLines = 1
)

func (m Model) bodyHeight() int {
	return max(1, m.height-headerLines-footerLines)
}

// renderMain renders header, body and footer.
func (m Model) renderMain() string {
	var body string
	if m.currentView == ViewLogs {
		body = m.logViewport.View()
	} else {
		body = m.renderPanes()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

// renderHeader draws the now playing block: status badge, track and volume.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot
	np := snap.NowPlaying

	status := np.Status
	switch {
	case snap.IsOffline():
		status = "offline"
	case !snap.HasState:
		status = "connecting"
	case status == "":
		status = "stop"
	}

	top := []string{
		bg.Render("jukebox", styles.Logo),
		styles.StatusStyle(status).Render(status),
	}
	if snap.IsOffline() && snap.LastError != nil {
		top = append(top, bg.Render(snap.LastError.Error(), styles.DangerText))
	}

	title := np.Title
	if title == "" {
		title = panel.NoTrackText
	}
	track := []string{
		bg.Render(transportGlyph(np.Icon), styles.AccentText),
		bg.Render(title, styles.Text.Bold(true)),
	}
	if np.Artist != "" {
		track = append(track, bg.Render(np.Artist, styles.MutedText))
	}
	if np.Album != "" {
		track = append(track, bg.Render(np.Album, styles.FaintText))
	}

	volume := fmt.Sprintf("Vol %d%%", snap.Volume)
	if snap.VolumePending {
		volume += "*"
	}
	track = append(track, bg.Render(volume, styles.InfoText))

	art := ""
	if m.width >= LayoutArtWidth && np.AlbumArt != "" {
		art = bg.Render("art "+np.AlbumArt, styles.FaintText)
	}

	lines := []string{
		bg.Join(top, "  "),
		bg.Join(track, "  "),
		art,
	}
	for i, line := range lines {
		lines[i] = bg.FillLine(styles.Header.Render(line), m.width)
	}
	return strings.Join(lines, "\n")
}

// transportGlyph maps the transport icon name to a terminal glyph.
func transportGlyph(icon string) string {
	if icon == panel.IconPause {
		return "⏸"
	}
	return "▶"
}

// renderPanes lays out the lists. Narrow terminals get the focused pane only.
func (m Model) renderPanes() string {
	h := m.bodyHeight()
	if m.width < LayoutCompactWidth {
		return m.renderPane(m.focus, m.width, h)
	}

	leftW := m.width / 4
	midW := m.width / 2
	rightW := m.width - leftW - midW
	topH := h / 2

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(PanePlaylists, leftW, topH),
		m.renderPane(PaneSources, leftW, h-topH),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		left,
		m.renderPane(PaneBrowse, midW, h),
		m.renderPane(PaneQueue, rightW, h),
	)
}

// renderPane draws one bordered list of w by h cells.
func (m Model) renderPane(p Pane, w, h int) string {
	styles := m.theme.Styles()
	innerW := max(1, w-2)
	innerH := max(1, h-2)

	rows := rowsFor(p, m.snapshot)
	cursor := m.cursors[p]
	focused := p == m.focus

	lines := []string{styles.AccentText.Bold(true).Render(m.paneTitle(p))}
	start, end := visibleWindow(cursor, len(rows), innerH-1)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], focused && i == cursor, innerW))
	}

	frame := styles.Pane
	if focused {
		frame = styles.PaneFocused
	}
	return frame.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

func (m Model) paneTitle(p Pane) string {
	switch p {
	case PaneQueue:
		return fmt.Sprintf("%s (%d)", p, len(m.snapshot.Queue))
	case PaneBrowse:
		if uri := m.snapshot.Browse.URI; uri != "" {
			return p.String() + " " + uri
		}
	}
	return p.String()
}

func (m Model) renderRow(r row, selected bool, width int) string {
	styles := m.theme.Styles()
	text := r.text
	var style lipgloss.Style
	switch r.kind {
	case rowHeader:
		style = styles.WarningText.Bold(true)
	case rowText:
		style = styles.MutedText
	case rowPlayable:
		text = "♪ " + text
		style = styles.Text
	default:
		style = styles.Text
	}
	if selected {
		style = styles.Selected.Width(width)
	}
	return style.MaxWidth(width).Render(text)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render(m.focus.String(), styles.AccentText)}
	if m.currentView == ViewLogs {
		parts[0] = bg.Render("Logs", styles.AccentText)
	}
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}
	return bg.FillLine(styles.Footer.Render(bg.Join(parts, "  ")), m.width)
}

// renderLogLines styles the log tail for the log viewport.
func (m Model) renderLogLines() string {
	styles := m.theme.Styles()
	if len(m.logLines) == 0 {
		return styles.MutedText.Render("No log output yet")
	}
	out := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		e := logtail.Parse(line, LogPrefix)
		if e.Time.IsZero() {
			out = append(out, styles.MutedText.Render(e.Message))
			continue
		}
		out = append(out, styles.FaintText.Render(e.Time.Format("15:04:05"))+" "+styles.Text.Render(e.Message))
	}
	return strings.Join(out, "\n")
}
