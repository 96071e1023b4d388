package panel

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/jukebox/internal/debounce"
	"github.com/five82/jukebox/internal/state"
	"github.com/five82/jukebox/internal/volumio"
)

// DefaultVolumeDebounce is the quiet period before a volume change is sent.
const DefaultVolumeDebounce = 300 * time.Millisecond

// Volume bounds accepted by the player.
const (
	MinVolume = 0
	MaxVolume = 100
)

// Options configure a Panel.
type Options struct {
	VolumeDebounce time.Duration // zero uses DefaultVolumeDebounce
}

// Panel dispatches user actions to the player and renders the results into
// a state.Store. Its methods never return player errors: failures are logged
// and the affected view shows its placeholder.
type Panel struct {
	ctx       context.Context
	api       volumio.API
	store     *state.Store
	playlists *state.PlaylistCache
	volume    *debounce.Debouncer
	volumeGen atomic.Uint64 // generation of the newest local volume change

	followUps sync.WaitGroup
}

// New builds a Panel. ctx bounds the follow-up refreshes and debounced volume
// sends that outlive the action that started them.
func New(ctx context.Context, api volumio.API, store *state.Store, opts Options) *Panel {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := opts.VolumeDebounce
	if delay <= 0 {
		delay = DefaultVolumeDebounce
	}
	return &Panel{
		ctx:       ctx,
		api:       api,
		store:     store,
		playlists: &state.PlaylistCache{},
		volume:    debounce.New(delay),
	}
}

// Store returns the store the panel renders into.
func (p *Panel) Store() *state.Store {
	return p.store
}

// Load performs the initial population of every panel.
func (p *Panel) Load(ctx context.Context) {
	p.ListPlaylists(ctx, false)
	p.ListSources(ctx)
	p.RefreshState(ctx)
	p.RefreshQueue(ctx)
}

// ListPlaylists renders the playlist names, reusing the cached listing unless
// force is set or nothing has been fetched yet. A failed fetch shows the
// error placeholder and leaves the cache as it was.
func (p *Panel) ListPlaylists(ctx context.Context, force bool) {
	seq := p.store.Begin(state.ResourcePlaylists)
	if !force {
		if names, ok := p.playlists.Get(); ok {
			p.store.SetPlaylists(seq, PlaylistOptions(names))
			return
		}
	}

	names, err := p.api.ListPlaylists(ctx)
	if err != nil {
		p.store.SetPlaylists(seq, state.OptionList{Placeholder: PlaylistsErrorText})
		return
	}
	p.playlists.Put(names)
	p.store.SetPlaylists(seq, PlaylistOptions(names))
}

// ListSources renders the browsable root sources.
func (p *Panel) ListSources(ctx context.Context) {
	seq := p.store.Begin(state.ResourceSources)
	resp, err := p.api.Browse(ctx, "")
	if err != nil {
		log.Printf("fetch sources: %v", err)
		p.store.SetSources(seq, state.OptionList{Placeholder: SourcesErrorText})
		return
	}
	p.store.SetSources(seq, SourceOptions(resp))
}

// Browse renders the contents of the selected source.
func (p *Panel) Browse(ctx context.Context, uri string) {
	if uri == "" {
		log.Printf("browse skipped: no source selected")
		return
	}
	log.Printf("browsing source: %s", uri)
	p.browse(ctx, uri)
}

// Navigate renders the contents of an item found while browsing.
func (p *Panel) Navigate(ctx context.Context, uri string) {
	if uri == "" {
		log.Printf("navigate skipped: invalid uri")
		return
	}
	log.Printf("navigating source: %s", uri)
	p.browse(ctx, uri)
}

func (p *Panel) browse(ctx context.Context, uri string) {
	seq := p.store.Begin(state.ResourceBrowse)
	resp, err := p.api.Browse(ctx, uri)
	if err != nil {
		log.Printf("browse %s: %v", uri, err)
		p.store.SetBrowse(seq, BrowseError(uri))
		return
	}
	p.store.SetBrowse(seq, BrowseResults(uri, resp))
}

// PlayPlaylist starts the named playlist.
func (p *Panel) PlayPlaylist(ctx context.Context, name string) {
	if name == "" {
		log.Printf("play playlist skipped: no playlist selected")
		return
	}
	log.Printf("playing playlist: %s", name)
	if err := p.api.PlayPlaylist(ctx, name); err != nil {
		log.Printf("play playlist %q: %v", name, err)
		return
	}
	p.refreshAfterCommand()
}

// EnqueueAndPlay replaces the queue with uri and starts it.
func (p *Panel) EnqueueAndPlay(ctx context.Context, uri, title string) {
	if uri == "" {
		log.Printf("enqueue skipped: empty uri")
		return
	}
	if title == "" {
		title = DefaultEnqueueTitle
	}
	log.Printf("adding to queue: %s", uri)
	resp, err := p.api.ReplaceAndPlay(ctx, []volumio.EnqueueItem{volumio.NewEnqueueItem(uri, title)})
	if err != nil {
		log.Printf("add to queue and play: %v", err)
		return
	}
	if !resp.Succeeded() {
		log.Printf("add to queue and play: player answered %q", resp.Response)
	}
	p.refreshAfterCommand()
}

// SendCommand issues a transport command such as play, pause, stop, prev or
// next.
func (p *Panel) SendCommand(ctx context.Context, cmd string) {
	log.Printf("sending command: %s", cmd)
	if err := p.api.SendCommand(ctx, cmd); err != nil {
		log.Printf("command %q: %v", cmd, err)
		return
	}
	p.refreshAfterCommand()
}

// TogglePlayPause flips playback based on the player's current state. Web
// radio has no pause: a playing stream is stopped and a stopped stream is
// submitted again. Local playback toggles between pause and play.
func (p *Panel) TogglePlayPause(ctx context.Context) {
	seq := p.store.Begin(state.ResourceState)
	st, err := p.api.GetState(ctx)
	if err != nil {
		log.Printf("toggle play/pause: %v", err)
		return
	}
	p.store.SetNowPlaying(seq, NowPlayingView(*st, p.api.Host()))

	if st.IsWebRadio() {
		switch st.Status {
		case volumio.StatusPlay:
			p.SendCommand(ctx, volumio.CmdStop)
		case volumio.StatusStop:
			if st.URI == "" {
				log.Printf("toggle play/pause: stopped web radio has no uri to resume")
				return
			}
			title := st.Title
			if title == "" {
				title = DefaultRadioTitle
			}
			p.EnqueueAndPlay(ctx, st.URI, title)
		}
		return
	}

	if st.Status == volumio.StatusPlay {
		p.SendCommand(ctx, volumio.CmdPause)
		return
	}
	p.SendCommand(ctx, volumio.CmdPlay)
}

// SetVolume shows v at once and sends it to the player once the volume has
// been left alone for the debounce period. Values are clamped to 0..100.
func (p *Panel) SetVolume(v int) {
	v = clampVolume(v)
	gen := p.store.SetLocalVolume(v)
	p.volumeGen.Store(gen)
	p.volume.Call(func() {
		defer p.store.ReleaseVolume(gen)
		if err := p.api.SetVolume(p.ctx, v); err != nil {
			log.Printf("set volume %d: %v", v, err)
		}
	})
}

// StepVolume moves the displayed volume by delta.
func (p *Panel) StepVolume(delta int) {
	p.SetVolume(p.store.Snapshot().Volume + delta)
}

// RefreshState fetches and renders the player state.
func (p *Panel) RefreshState(ctx context.Context) {
	seq := p.store.Begin(state.ResourceState)
	st, err := p.api.GetState(ctx)
	p.store.RecordPoll(err)
	if err != nil {
		return
	}
	p.store.SetNowPlaying(seq, NowPlayingView(*st, p.api.Host()))
}

// RefreshQueue fetches and renders the play queue.
func (p *Panel) RefreshQueue(ctx context.Context) {
	seq := p.store.Begin(state.ResourceQueue)
	items, err := p.api.GetQueue(ctx)
	if err != nil {
		return
	}
	p.store.SetQueue(seq, QueueLines(items))
}

// LoadInBackground runs Load as a tracked follow-up, so Wait and Close
// cover it.
func (p *Panel) LoadInBackground() {
	p.goFollowUp(p.Load)
}

// Wait blocks until all follow-up refreshes started so far have finished.
func (p *Panel) Wait() {
	p.followUps.Wait()
}

// Close cancels a pending volume send and waits for follow-ups.
func (p *Panel) Close() {
	p.volume.Stop()
	p.store.ReleaseVolume(p.volumeGen.Load())
	p.Wait()
}

// refreshAfterCommand triggers state and queue refreshes without waiting for
// them. They are ordered against the poller only by the store's sequence
// numbers.
func (p *Panel) refreshAfterCommand() {
	p.goFollowUp(p.RefreshState)
	p.goFollowUp(p.RefreshQueue)
}

func (p *Panel) goFollowUp(fn func(context.Context)) {
	p.followUps.Add(1)
	go func() {
		defer p.followUps.Done()
		fn(p.ctx)
	}()
}

func clampVolume(v int) int {
	return max(MinVolume, min(v, MaxVolume))
}
