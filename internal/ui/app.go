package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/jukebox/internal/logtail"
	"github.com/five82/jukebox/internal/prefs"
	"github.com/five82/jukebox/internal/state"
	"github.com/five82/jukebox/internal/volumio"
)

// Controller is the set of player actions the UI triggers. *panel.Panel
// implements it.
type Controller interface {
	Store() *state.Store
	ListPlaylists(ctx context.Context, force bool)
	Browse(ctx context.Context, uri string)
	Navigate(ctx context.Context, uri string)
	PlayPlaylist(ctx context.Context, name string)
	EnqueueAndPlay(ctx context.Context, uri, title string)
	SendCommand(ctx context.Context, cmd string)
	TogglePlayPause(ctx context.Context)
	StepVolume(delta int)
}

// View selects what fills the body below the header.
type View int

const (
	ViewPanes View = iota
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Panel     Controller
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	ctrl      Controller
	store     *state.Store
	keys      keyMap
	prefs     prefs.Prefs
	prefsPath string
	logPath   string

	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	focus   Pane
	cursors [paneCount]int

	snapshot state.Snapshot

	// Remembered selections are restored once, the first time the list
	// that holds them is populated.
	restoredPlaylist bool
	restoredSource   bool

	logViewport viewport.Model
	logLines    []string
}

// New creates the Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	var store *state.Store
	if opts.Panel != nil {
		store = opts.Panel.Store()
	}
	return Model{
		ctx:       ctx,
		ctrl:      opts.Panel,
		store:     store,
		keys:      DefaultKeyMap(),
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		theme:     GetTheme(opts.Prefs.Theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(LogRefreshInterval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForChangeCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(m.width, m.bodyHeight())
		}
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case changeMsg:
		if m.store == nil {
			return m, nil
		}
		m.applySnapshot(m.store.Snapshot())
		return m, waitForChangeCmd(m.store)

	case tickMsg:
		var cmds []tea.Cmd
		if m.currentView == ViewLogs {
			cmds = append(cmds, readLogCmd(m.logPath))
		}
		cmds = append(cmds, tickCmd(LogRefreshInterval))
		return m, tea.Batch(cmds...)

	case logLinesMsg:
		m.setLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !m.restoredPlaylist && len(snap.Playlists.Options) > 0 {
		m.restoredPlaylist = true
		if i := indexOfValue(rowsFor(PanePlaylists, snap), m.prefs.LastPlaylist); i >= 0 {
			m.cursors[PanePlaylists] = i
		}
	}
	if !m.restoredSource && len(snap.Sources.Options) > 0 {
		m.restoredSource = true
		if i := indexOfValue(rowsFor(PaneSources, snap), m.prefs.LastSource); i >= 0 {
			m.cursors[PaneSources] = i
		}
	}
	for p := Pane(0); p < paneCount; p++ {
		m.cursors[p] = clampCursor(m.cursors[p], len(rowsFor(p, snap)))
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		if m.currentView == ViewLogs {
			m.currentView = ViewPanes
			return m, nil
		}
		m.currentView = ViewLogs
		return m, readLogCmd(m.logPath)
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewPanes
		return m, nil
	}

	if cmd, ok := m.handlePlaybackKey(msg); ok {
		return m, cmd
	}

	if m.currentView == ViewLogs {
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}
	return m.handlePaneKey(msg)
}

// handlePlaybackKey handles the transport and volume keys, which work from
// every view.
func (m *Model) handlePlaybackKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.ctrl == nil {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.PlayPause):
		return m.action(m.ctrl.TogglePlayPause), true
	case key.Matches(msg, m.keys.Stop):
		return m.command(volumio.CmdStop), true
	case key.Matches(msg, m.keys.Next):
		return m.command(volumio.CmdNext), true
	case key.Matches(msg, m.keys.Prev):
		return m.command(volumio.CmdPrev), true
	case key.Matches(msg, m.keys.VolumeUp):
		m.ctrl.StepVolume(VolumeStep)
		return nil, true
	case key.Matches(msg, m.keys.VolumeDown):
		m.ctrl.StepVolume(-VolumeStep)
		return nil, true
	case key.Matches(msg, m.keys.Refresh):
		return m.action(func(ctx context.Context) { m.ctrl.ListPlaylists(ctx, true) }), true
	}
	return nil, false
}

// handlePaneKey processes keys while the pane view is shown.
func (m Model) handlePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := rowsFor(m.focus, m.snapshot)
	cursor := m.cursors[m.focus]

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.focus = m.focus.next()
	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = m.focus.prev()
	case key.Matches(msg, m.keys.Down):
		m.cursors[m.focus] = clampCursor(cursor+1, len(rows))
	case key.Matches(msg, m.keys.Up):
		m.cursors[m.focus] = clampCursor(cursor-1, len(rows))
	case key.Matches(msg, m.keys.Top):
		m.cursors[m.focus] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursors[m.focus] = clampCursor(len(rows)-1, len(rows))
	case key.Matches(msg, m.keys.Select):
		return m, m.selectRow(rows, cursor)
	case key.Matches(msg, m.keys.BrowseIn):
		return m, m.browseRow(rows, cursor)
	}
	return m, nil
}

// selectRow runs the primary action for the focused row: play a playlist,
// open a source or play a browse item.
func (m *Model) selectRow(rows []row, cursor int) tea.Cmd {
	if m.ctrl == nil || cursor >= len(rows) || !rows[cursor].selectable() {
		return nil
	}
	r := rows[cursor]
	switch m.focus {
	case PanePlaylists:
		m.prefs.LastPlaylist = r.value
		m.savePrefs()
		return m.action(func(ctx context.Context) { m.ctrl.PlayPlaylist(ctx, r.value) })
	case PaneSources:
		m.prefs.LastSource = r.value
		m.savePrefs()
		m.cursors[PaneBrowse] = 0
		return m.action(func(ctx context.Context) { m.ctrl.Browse(ctx, r.value) })
	case PaneBrowse:
		return m.action(func(ctx context.Context) { m.ctrl.EnqueueAndPlay(ctx, r.value, r.text) })
	}
	return nil
}

// browseRow opens the focused browse item or source.
func (m *Model) browseRow(rows []row, cursor int) tea.Cmd {
	if m.ctrl == nil || cursor >= len(rows) || !rows[cursor].selectable() {
		return nil
	}
	r := rows[cursor]
	switch m.focus {
	case PaneSources:
		m.cursors[PaneBrowse] = 0
		return m.action(func(ctx context.Context) { m.ctrl.Browse(ctx, r.value) })
	case PaneBrowse:
		m.cursors[PaneBrowse] = 0
		return m.action(func(ctx context.Context) { m.ctrl.Navigate(ctx, r.value) })
	}
	return nil
}

func (m *Model) command(cmd string) tea.Cmd {
	return m.action(func(ctx context.Context) { m.ctrl.SendCommand(ctx, cmd) })
}

// action runs fn off the event loop. Results reach the model through the
// store's change notifications.
func (m *Model) action(fn func(context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return nil
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

func (m *Model) setLogLines(lines []string) {
	m.logLines = lines
	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.renderLogLines())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = m.bodyHeight()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type changeMsg struct{}

type logLinesMsg []string

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForChangeCmd blocks until the store reports a change.
func waitForChangeCmd(store *state.Store) tea.Cmd {
	ch := store.Changes()
	return func() tea.Msg {
		<-ch
		return changeMsg{}
	}
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Tail(path, LogTailLines)
		if err != nil {
			return logLinesMsg{fmt.Sprintf("unable to read %s: %v", path, err)}
		}
		return logLinesMsg(lines)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Panel == nil {
		return fmt.Errorf("ui requires a panel")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// Cancelled by signal.
		return nil
	}
	return err
}
