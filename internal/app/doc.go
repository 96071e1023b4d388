// Package app is the composition root for jukebox.
//
// Run wires the pieces together in order:
//
//  1. config.Load reads ~/.config/jukebox/config.toml (defaults when missing)
//  2. logging goes to the log file in terminal mode and to stderr when serving
//  3. volumio.NewClient targets the player's REST API
//  4. a state.Store and a panel.Panel are created over that client
//  5. the initial load runs in the background and StartPoller begins the
//     state and queue refresh loops
//  6. ui.Run (terminal) or web.Run (-serve) blocks until exit
//
// Data flows from the player into the store and out to the renderers:
//
//	Run() ──> config ──> volumio.Client ──> panel.Panel ──> state.Store
//	                                            ▲                │
//	                       StartPoller ─────────┘                ▼
//	                                                   ui / web render Snapshot()
//
// The player being unreachable is never fatal. Failed refreshes are logged,
// the affected panel shows its placeholder and polling continues. Only a bad
// config, an unusable player URL or an unopenable log file stop startup.
package app
