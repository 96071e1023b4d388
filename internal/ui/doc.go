// Package ui is the terminal front end for jukebox, built on Bubble Tea.
//
// The screen has three parts:
//
//   - header: player status badge, current track, volume and album art URL
//   - body: the Playlists, Sources, Browse and Queue panes, or the log view
//   - footer: the focused pane, common keys and the last update time
//
// The model never talks to the player itself. Key presses call a Controller
// (the panel) inside tea.Cmds so requests run off the event loop; the
// panel writes results into the state.Store, and the model redraws when the
// store's change channel fires.
//
// Enter plays the selected playlist or browse item, or opens the selected
// source. b browses into an item. Space toggles play/pause and +/- step the
// volume. The theme (T) and the last playlist and source chosen are saved to
// the prefs file.
package ui
