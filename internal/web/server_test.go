package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/jukebox/internal/panel"
	"github.com/five82/jukebox/internal/state"
)

type fakeController struct {
	store *state.Store

	mu      sync.Mutex
	calls   []string
	volumes []int
}

func newFakeController() *fakeController {
	return &fakeController{store: &state.Store{}}
}

func (f *fakeController) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeController) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeController) Store() *state.Store { return f.store }

func (f *fakeController) ListPlaylists(_ context.Context, force bool) {
	if force {
		f.record("playlists:force")
		return
	}
	f.record("playlists")
}

func (f *fakeController) Browse(_ context.Context, uri string) { f.record("browse:" + uri) }

func (f *fakeController) Navigate(_ context.Context, uri string) { f.record("navigate:" + uri) }

func (f *fakeController) PlayPlaylist(_ context.Context, name string) { f.record("playlist:" + name) }

func (f *fakeController) EnqueueAndPlay(_ context.Context, uri, title string) {
	f.record("enqueue:" + uri + "|" + title)
}

func (f *fakeController) SendCommand(_ context.Context, cmd string) { f.record("cmd:" + cmd) }

func (f *fakeController) TogglePlayPause(context.Context) { f.record("toggle") }

func (f *fakeController) SetVolume(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, v)
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getPage(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestPage_RendersElementIDs(t *testing.T) {
	ctrl := newFakeController()
	h := NewServer(ctrl).Routes()

	body := getPage(t, h)
	for _, id := range []string{"playlistSelect", "sourceSelect", "browseResults", "title", "artist", "albumart", "playPauseIcon", "volumeValue", "queueList"} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, panel.NoTrackText)
	assert.Contains(t, body, panel.IconPlay)
}

func TestPage_RendersSnapshot(t *testing.T) {
	ctrl := newFakeController()
	store := ctrl.store
	store.SetPlaylists(store.Begin(state.ResourcePlaylists), state.OptionList{Options: []state.Option{{Value: "Chill", Label: "Chill"}}})
	store.SetSources(store.Begin(state.ResourceSources), state.OptionList{Placeholder: panel.SourcesErrorText})
	store.SetBrowse(store.Begin(state.ResourceBrowse), state.BrowseView{URI: "radio", Sections: []state.BrowseSection{
		{Title: "Stations", Entries: []state.BrowseEntry{
			{Kind: state.EntryPlayable, Name: "Jazz FM", URI: "http://jazz.example/stream"},
			{Kind: state.EntryLabel, Name: "Plain label"},
		}},
	}})
	store.SetNowPlaying(store.Begin(state.ResourceState), state.NowPlaying{
		Title: "So What", Artist: "Miles Davis", AlbumArt: "http://volumio.local/art.jpg",
		Status: "play", Icon: panel.IconPause, Volume: 42,
	})
	store.SetQueue(store.Begin(state.ResourceQueue), []string{"So What - Miles Davis"})

	body := getPage(t, NewServer(ctrl).Routes())

	assert.Contains(t, body, `<option value="Chill">Chill</option>`)
	assert.Contains(t, body, panel.SourcesErrorText)
	assert.Contains(t, body, "Stations")
	assert.Contains(t, body, `value="http://jazz.example/stream"`)
	assert.Contains(t, body, "Plain label")
	assert.Contains(t, body, `<strong id="title">So What</strong>`)
	assert.Contains(t, body, `src="http://volumio.local/art.jpg"`)
	assert.Contains(t, body, `<span id="volumeValue">42</span>`)
	assert.Contains(t, body, "<li>So What - Miles Davis</li>")
	assert.Contains(t, body, panel.IconPause)
}

func TestPage_BrowsePlaceholder(t *testing.T) {
	ctrl := newFakeController()
	store := ctrl.store
	store.SetBrowse(store.Begin(state.ResourceBrowse), state.BrowseView{URI: "x", Placeholder: panel.BrowseErrorText})

	body := getPage(t, NewServer(ctrl).Routes())
	assert.Contains(t, body, panel.BrowseErrorText)
}

func TestPage_OfflineBanner(t *testing.T) {
	ctrl := newFakeController()
	ctrl.store.RecordPoll(errors.New("dial tcp: refused"))
	ctrl.store.RecordPoll(errors.New("dial tcp: refused"))

	body := getPage(t, NewServer(ctrl).Routes())
	assert.Contains(t, body, "Player unreachable")
	assert.Contains(t, body, "dial tcp: refused")
}

func TestActions_DispatchToController(t *testing.T) {
	ctrl := newFakeController()
	h := NewServer(ctrl).Routes()

	cases := []struct {
		path string
		form url.Values
	}{
		{"/playlists/play", url.Values{"name": {"Chill"}}},
		{"/playlists/refresh", nil},
		{"/sources/browse", url.Values{"uri": {"radio"}}},
		{"/browse/navigate", url.Values{"uri": {"radio/jazz"}}},
		{"/browse/play", url.Values{"uri": {"http://jazz.example/stream"}, "title": {"Jazz FM"}}},
		{"/player/toggle", nil},
		{"/player/command/next", nil},
	}
	for _, c := range cases {
		rec := postForm(t, h, c.path, c.form)
		require.Equal(t, http.StatusSeeOther, rec.Code, c.path)
		assert.Equal(t, "/", rec.Header().Get("Location"), c.path)
	}

	assert.Equal(t, []string{
		"playlist:Chill",
		"playlists:force",
		"browse:radio",
		"navigate:radio/jazz",
		"enqueue:http://jazz.example/stream|Jazz FM",
		"toggle",
		"cmd:next",
	}, ctrl.Calls())
}

func TestPlayPlaylist_SelectsLastPlayed(t *testing.T) {
	ctrl := newFakeController()
	store := ctrl.store
	store.SetPlaylists(store.Begin(state.ResourcePlaylists), state.OptionList{Options: []state.Option{
		{Value: "A", Label: "A"}, {Value: "B", Label: "B"},
	}})
	h := NewServer(ctrl).Routes()

	postForm(t, h, "/playlists/play", url.Values{"name": {"B"}})
	body := getPage(t, h)
	assert.Contains(t, body, `<option value="B" selected>B</option>`)
}

func TestCommand_RejectsUnknown(t *testing.T) {
	ctrl := newFakeController()
	rec := postForm(t, NewServer(ctrl).Routes(), "/player/command/shuffle", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ctrl.Calls())
}

func TestVolume(t *testing.T) {
	ctrl := newFakeController()
	h := NewServer(ctrl).Routes()

	rec := postForm(t, h, "/player/volume", url.Values{"value": {"65"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(t, h, "/player/volume", url.Values{"value": {"loud"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, []int{65}, ctrl.volumes)
}

func TestStateJSON(t *testing.T) {
	ctrl := newFakeController()
	store := ctrl.store
	store.SetNowPlaying(store.Begin(state.ResourceState), state.NowPlaying{Title: "Track", Status: "pause", Icon: panel.IconPlay, Volume: 10})

	rec := httptest.NewRecorder()
	NewServer(ctrl).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Track", got["title"])
	assert.Equal(t, "pause", got["status"])
	assert.Equal(t, float64(10), got["volume"])
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(newFakeController()).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()
	cancel()
	assert.NoError(t, <-done)
}
