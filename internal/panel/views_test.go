package panel

import (
	"testing"

	"github.com/five82/jukebox/internal/state"
	"github.com/five82/jukebox/internal/volumio"
)

func TestTransportIcon(t *testing.T) {
	cases := map[string]string{
		"play":      IconPause,
		"pause":     IconPlay,
		"stop":      IconPlay,
		"":          IconPlay,
		"buffering": IconPlay,
	}
	for status, want := range cases {
		if got := TransportIcon(status); got != want {
			t.Errorf("TransportIcon(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestPlaylistOptions_Empty(t *testing.T) {
	list := PlaylistOptions(nil)
	if len(list.Options) != 0 || list.Placeholder != "" {
		t.Fatalf("PlaylistOptions(nil) = %#v, want empty list", list)
	}
}

func TestSourceOptions_LabelFallbacks(t *testing.T) {
	resp := &volumio.BrowseResponse{Navigation: &volumio.BrowseNavigation{Lists: []volumio.BrowseList{
		{Name: "Named", URI: "a"},
		{Title: "Titled", URI: "b"},
		{URI: "c"},
	}}}
	list := SourceOptions(resp)
	want := []state.Option{{Value: "a", Label: "Named"}, {Value: "b", Label: "Titled"}, {Value: "c", Label: "c"}}
	if len(list.Options) != len(want) {
		t.Fatalf("SourceOptions len = %d, want %d", len(list.Options), len(want))
	}
	for i := range want {
		if list.Options[i] != want[i] {
			t.Errorf("option %d = %#v, want %#v", i, list.Options[i], want[i])
		}
	}

	if got := SourceOptions(nil); len(got.Options) != 0 {
		t.Fatalf("SourceOptions(nil) = %#v, want empty", got)
	}
}

func TestBrowseResults_NilResponse(t *testing.T) {
	view := BrowseResults("x", nil)
	if view.Placeholder != NoResultsText || view.URI != "x" {
		t.Fatalf("BrowseResults(nil) = %#v", view)
	}
}

func TestBrowseEntry_UnnamedItem(t *testing.T) {
	entry := browseEntry(volumio.BrowseItem{URI: "u"})
	if entry.Name != UnnamedItem || !entry.Playable() {
		t.Fatalf("browseEntry = %#v, want playable %q", entry, UnnamedItem)
	}
}

func TestNowPlayingView_EmptyArtStaysEmpty(t *testing.T) {
	np := NowPlayingView(volumio.PlayerState{Status: "pause"}, "host")
	if np.AlbumArt != "" {
		t.Fatalf("AlbumArt = %q, want empty", np.AlbumArt)
	}
	if np.Title != NoTrackText || np.Icon != IconPlay {
		t.Fatalf("NowPlayingView = %#v", np)
	}
}

func TestViews_WhitespaceNamesAreKept(t *testing.T) {
	np := NowPlayingView(volumio.PlayerState{Title: " ", Status: "play"}, "host")
	if np.Title != " " {
		t.Fatalf("NowPlayingView title = %q, want the player's %q", np.Title, " ")
	}

	lines := QueueLines([]volumio.QueueItem{{Name: "  ", Artist: "\t"}, {}})
	want := []string{"   - \t", UnknownName + " - " + UnknownArtist}
	if len(lines) != len(want) {
		t.Fatalf("QueueLines len = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("QueueLines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}
