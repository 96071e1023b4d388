// Package panel is the command core shared by the terminal UI and the web page.
//
// Each user action maps to one Panel method that issues a single player
// request and renders the outcome into the state.Store:
//
//   - ListPlaylists, ListSources, Browse, Navigate fill the selection panels
//   - PlayPlaylist, EnqueueAndPlay, SendCommand, TogglePlayPause drive playback
//   - SetVolume and StepVolume update the readout at once and send the value
//     after a quiet period
//   - RefreshState and RefreshQueue are called by the poller and after
//     commands
//
// Playback commands start state and queue refreshes in the background and
// return without waiting; Wait joins them. The store's per-resource sequence
// numbers keep those refreshes and the poller's from overwriting newer data
// with older.
//
// The view functions in views.go are pure: they turn API payloads into the
// view models both renderers draw, including the fixed placeholder texts.
package panel
