package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/jukebox/internal/panel"
	"github.com/five82/jukebox/internal/state"
	"github.com/five82/jukebox/internal/volumio"
)

//go:embed templates/*.gohtml
var tplFS embed.FS

// DefaultRefreshSeconds is how often the page reloads itself.
const DefaultRefreshSeconds = 5

const shutdownTimeout = 5 * time.Second

// Controller is the set of player actions the page triggers. *panel.Panel
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
	SetVolume(v int)
}

// transportCommands are the commands accepted by /player/command/{cmd}.
var transportCommands = map[string]bool{
	volumio.CmdPlay:  true,
	volumio.CmdPause: true,
	volumio.CmdStop:  true,
	volumio.CmdPrev:  true,
	volumio.CmdNext:  true,
}

// Server renders the control page and turns form posts into panel actions.
type Server struct {
	ctrl           Controller
	tpl            *template.Template
	refreshSeconds int

	mu sync.Mutex
	// lastPlaylist keeps the playlist select on the last played entry.
	lastPlaylist string
}

// NewServer builds a Server over ctrl.
func NewServer(ctrl Controller) *Server {
	return &Server{
		ctrl:           ctrl,
		tpl:            template.Must(template.ParseFS(tplFS, "templates/*.gohtml")),
		refreshSeconds: DefaultRefreshSeconds,
	}
}

// Routes returns the router with the standard middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/", s.handlePage)
	r.Get("/health", s.handleHealth)
	r.Get("/state.json", s.handleState)

	r.Post("/playlists/play", s.handlePlayPlaylist)
	r.Post("/playlists/refresh", s.handleRefreshPlaylists)
	r.Post("/sources/browse", s.handleBrowse)
	r.Post("/browse/navigate", s.handleNavigate)
	r.Post("/browse/play", s.handleEnqueue)
	r.Post("/player/toggle", s.handleToggle)
	r.Post("/player/command/{cmd}", s.handleCommand)
	r.Post("/player/volume", s.handleVolume)
	return r
}

// pageData is what the template renders.
type pageData struct {
	RefreshSeconds int
	Title          string
	Icon           string
	NowPlaying     state.NowPlaying
	Volume         int
	Playlists      state.OptionList
	LastPlaylist   string
	Sources        state.OptionList
	Browse         state.BrowseView
	Queue          []string
	Offline        bool
	LastError      string
}

func (s *Server) pageData() pageData {
	snap := s.ctrl.Store().Snapshot()
	data := pageData{
		RefreshSeconds: s.refreshSeconds,
		Title:          snap.NowPlaying.Title,
		Icon:           snap.NowPlaying.Icon,
		NowPlaying:     snap.NowPlaying,
		Volume:         snap.Volume,
		Playlists:      snap.Playlists,
		LastPlaylist:   s.selectedPlaylist(),
		Sources:        snap.Sources,
		Browse:         snap.Browse,
		Queue:          snap.Queue,
		Offline:        snap.IsOffline(),
	}
	if data.Title == "" {
		data.Title = panel.NoTrackText
	}
	if data.Icon == "" {
		data.Icon = panel.IconPlay
	}
	if snap.LastError != nil {
		data.LastError = snap.LastError.Error()
	}
	return data
}

func (s *Server) selectedPlaylist() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPlaylist
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, "page", s.pageData()); err != nil {
		log.Printf("render page: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "jukebox",
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	data := s.pageData()
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    data.Title,
		"artist":   data.NowPlaying.Artist,
		"album":    data.NowPlaying.Album,
		"albumart": data.NowPlaying.AlbumArt,
		"status":   data.NowPlaying.Status,
		"icon":     data.Icon,
		"volume":   data.Volume,
		"queue":    data.Queue,
		"offline":  data.Offline,
	})
}

func (s *Server) handlePlayPlaylist(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if name != "" {
		s.mu.Lock()
		s.lastPlaylist = name
		s.mu.Unlock()
	}
	s.ctrl.PlayPlaylist(r.Context(), name)
	backToPage(w, r)
}

func (s *Server) handleRefreshPlaylists(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ListPlaylists(r.Context(), true)
	backToPage(w, r)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Browse(r.Context(), r.FormValue("uri"))
	backToPage(w, r)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Navigate(r.Context(), r.FormValue("uri"))
	backToPage(w, r)
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	s.ctrl.EnqueueAndPlay(r.Context(), r.FormValue("uri"), r.FormValue("title"))
	backToPage(w, r)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.ctrl.TogglePlayPause(r.Context())
	backToPage(w, r)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	cmd := strings.ToLower(chi.URLParam(r, "cmd"))
	if !transportCommands[cmd] {
		http.Error(w, fmt.Sprintf("unknown command %q", cmd), http.StatusBadRequest)
		return
	}
	s.ctrl.SendCommand(r.Context(), cmd)
	backToPage(w, r)
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue("value")))
	if err != nil {
		http.Error(w, "volume must be a number", http.StatusBadRequest)
		return
	}
	s.ctrl.SetVolume(v)
	backToPage(w, r)
}

// backToPage answers a form post with a redirect to the page.
func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("jukebox web listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
