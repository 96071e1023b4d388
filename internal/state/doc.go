// Package state holds the rendered views shared between the panel core and
// its renderers.
//
// # Overview
//
// The panel fetches data from the player and turns it into view models
// (option lists, browse sections, now-playing fields, queue lines). Those
// view models land in a Store; the terminal UI and the web page read
// snapshots of it and never talk to the player directly.
//
// # Architecture
//
//	Writers (panel, poller):           Readers (tui, web):
//	┌──────────────────────┐          ┌───────────────────┐
//	│ seq := Begin(res)    │          │                   │
//	│ fetch from player    │          │                   │
//	│ SetX(seq, view) ─────┼─(mutex)─→│ store.Snapshot()  │
//	│       ↓              │          │       ↓           │
//	│ notify Changes()     │─────────→│ re-render         │
//	└──────────────────────┘          └───────────────────┘
//
// # Ordering
//
// Command follow-ups and the poller may refresh the same resource at the same
// time. Each refresh takes a ticket from Begin before its request goes out
// and presents it with the result; the Store drops any result older than one
// it has already applied for that resource. Resources are sequenced
// independently, so a slow queue fetch never blocks a state update.
//
// # Volume
//
// Volume changes are shown immediately (SetLocalVolume) but sent to the
// player after a debounce. SetLocalVolume returns a generation; until
// ReleaseVolume is called with the newest generation the displayed value
// ignores the player's reported volume, so a poll landing mid-drag does not
// snap the readout back. Releasing an older generation leaves the pin alone.
//
// # Poll Health
//
// RecordPoll counts consecutive poll failures; IsOffline turns true after two
// in a row. Failed polls keep the previous views in place.
//
// # PlaylistCache
//
// PlaylistCache remembers the last successful playlist listing. It has no
// TTL and is only replaced by a later successful fetch; a failed refresh
// leaves it untouched.
package state
