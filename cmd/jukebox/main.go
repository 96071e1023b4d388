package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/jukebox/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override jukebox config path (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 5s)")
	webMode := flag.Bool("web", false, "serve the web control page on the configured listen_addr instead of the terminal UI")
	serveAddr := flag.String("serve", "", "serve the web control page on this address (implies -web)")
	logPath := flag.String("log", "", "override log file path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Web:        *webMode,
		ServeAddr:  *serveAddr,
		LogPath:    *logPath,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "jukebox: %v\n", err)
		return 1
	}
	return 0
}
