package panel

import (
	"github.com/five82/jukebox/internal/state"
	"github.com/five82/jukebox/internal/volumio"
)

// Placeholder and fallback texts shown by the renderers.
const (
	PlaylistsErrorText = "Error Loading Playlists"
	SourcesErrorText   = "Error Loading Sources"
	BrowseErrorText    = "Error Browsing Source"
	NoResultsText      = "No results found."
	NoItemsText        = "No items available"

	NoTrackText         = "No Track Playing"
	UnknownName         = "Unknown"
	UnknownArtist       = "Unknown Artist"
	DefaultSectionTitle = "Results"
	UnnamedItem         = "Unnamed Item"
	DefaultEnqueueTitle = "Unknown Item"
	DefaultRadioTitle   = "Web Radio"
)

// Transport icon glyph names (Material Icons ligatures).
const (
	IconPause = "pause"
	IconPlay  = "play_arrow"
)

// PlaylistOptions renders one option per playlist name, in order, with value
// and label equal to the name.
func PlaylistOptions(names []string) state.OptionList {
	opts := make([]state.Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, state.Option{Value: name, Label: name})
	}
	return state.OptionList{Options: opts}
}

// SourceOptions renders the root browse listing as a flat list of sources.
// A response without navigation yields an empty list.
func SourceOptions(resp *volumio.BrowseResponse) state.OptionList {
	lists := resp.Lists()
	opts := make([]state.Option, 0, len(lists))
	for _, src := range lists {
		opts = append(opts, state.Option{
			Value: src.URI,
			Label: firstNonEmpty(src.Name, src.Title, src.URI),
		})
	}
	return state.OptionList{Options: opts}
}

// BrowseResults renders a scoped browse listing as titled sections. Missing,
// empty or malformed listings render the no-results placeholder.
func BrowseResults(uri string, resp *volumio.BrowseResponse) state.BrowseView {
	view := state.BrowseView{URI: uri}
	lists := resp.Lists()
	if len(lists) == 0 {
		view.Placeholder = NoResultsText
		return view
	}

	view.Sections = make([]state.BrowseSection, 0, len(lists))
	for _, list := range lists {
		section := state.BrowseSection{Title: firstNonEmpty(list.Title, DefaultSectionTitle)}
		if list.Items == nil {
			section.Placeholder = NoItemsText
			view.Sections = append(view.Sections, section)
			continue
		}
		section.Entries = make([]state.BrowseEntry, 0, len(list.Items))
		for _, item := range list.Items {
			section.Entries = append(section.Entries, browseEntry(item))
		}
		view.Sections = append(view.Sections, section)
	}
	return view
}

func browseEntry(item volumio.BrowseItem) state.BrowseEntry {
	name := firstNonEmpty(item.Name, item.Title, UnnamedItem)
	if item.URI == "" {
		return state.BrowseEntry{Kind: state.EntryLabel, Name: name}
	}
	return state.BrowseEntry{Kind: state.EntryPlayable, Name: name, URI: item.URI}
}

// BrowseError renders the browse panel's failure placeholder.
func BrowseError(uri string) state.BrowseView {
	return state.BrowseView{URI: uri, Placeholder: BrowseErrorText}
}

// NowPlayingView renders the player state. host absolutizes relative album
// art paths.
func NowPlayingView(st volumio.PlayerState, host string) state.NowPlaying {
	return state.NowPlaying{
		Title:    firstNonEmpty(st.Title, NoTrackText),
		Artist:   st.Artist,
		Album:    st.Album,
		AlbumArt: volumio.ResolveAlbumArt(host, st.AlbumArt),
		Icon:     TransportIcon(st.Status),
		Status:   st.Status,
		Service:  st.Service,
		URI:      st.URI,
		Volume:   st.Volume,
	}
}

// TransportIcon returns the pause glyph while playing and the play glyph
// otherwise.
func TransportIcon(status string) string {
	if status == volumio.StatusPlay {
		return IconPause
	}
	return IconPlay
}

// QueueLines renders the queue as "name - artist" lines.
func QueueLines(items []volumio.QueueItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, firstNonEmpty(item.Name, UnknownName)+" - "+firstNonEmpty(item.Artist, UnknownArtist))
	}
	return lines
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
