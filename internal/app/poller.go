package app

import (
	"context"
	"time"

	"github.com/five82/jukebox/internal/panel"
)

const defaultPollInterval = 5 * time.Second

// StartPoller launches two independent goroutines that refresh the queue and
// the player state at a fixed cadence. It returns immediately; the loops run
// until ctx is cancelled.
func StartPoller(ctx context.Context, p *panel.Panel, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go pollLoop(ctx, interval, p.RefreshQueue)
	go pollLoop(ctx, interval, p.RefreshState)
}

// pollLoop calls refresh on every tick. The first call happens one interval
// after start; the initial load is done separately.
func pollLoop(ctx context.Context, interval time.Duration, refresh func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh(ctx)
		}
	}
}
