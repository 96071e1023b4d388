package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/jukebox/internal/config"
	"github.com/five82/jukebox/internal/panel"
	"github.com/five82/jukebox/internal/prefs"
	"github.com/five82/jukebox/internal/state"
	"github.com/five82/jukebox/internal/ui"
	"github.com/five82/jukebox/internal/volumio"
	"github.com/five82/jukebox/internal/web"
)

// Options configure the jukebox application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/jukebox/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	Web        bool   // serve the web page on the configured listen_addr
	ServeAddr  string // serve the web page on this address; implies Web
	LogPath    string // empty uses the config value
}

// Run boots jukebox until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := cfg.LogFile
	if opts.LogPath != "" {
		logPath = opts.LogPath
	}
	serveAddr := opts.ServeAddr
	if serveAddr == "" && opts.Web {
		serveAddr = cfg.ListenAddr
	}

	closeLog, err := setupLogging(logPath, serveAddr == "")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	client, err := volumio.NewClient(cfg.PlayerURL, volumio.ClientOptions{
		APIPath: cfg.APIPath,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("init player client: %w", err)
	}

	store := &state.Store{}
	p := panel.New(ctx, client, store, panel.Options{VolumeDebounce: cfg.VolumeDebounce})
	defer p.Close()

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	log.Printf("jukebox starting: player=%s poll=%s", cfg.PlayerURL, interval)

	// Initial load runs in the background so an unreachable player does not
	// hold up the interface.
	p.LoadInBackground()
	StartPoller(ctx, p, interval)

	if serveAddr != "" {
		return web.Run(ctx, serveAddr, web.NewServer(p).Routes())
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Panel:     p,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
		LogPath:   logPath,
	})
}
