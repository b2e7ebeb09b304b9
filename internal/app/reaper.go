package app

import (
	"context"
	"time"

	"github.com/dkeye/pong/internal/core"
	"github.com/rs/zerolog/log"
)

// Reaper expires rooms that stayed half empty for longer than IdleTimeout.
type Reaper struct {
	Rooms       *RoomManager
	IdleTimeout time.Duration
	Interval    time.Duration
	// Expire is handed every room still filling; it returns true if the
	// room was actually torn down.
	Expire func(room core.RoomService, cutoff time.Time) bool
}

// Run sweeps until ctx is done. A zero IdleTimeout disables reaping.
func (r *Reaper) Run(ctx context.Context) error {
	if r.IdleTimeout <= 0 {
		return nil
	}
	interval := r.Interval
	if interval <= 0 {
		interval = r.IdleTimeout / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Str("module", "app.reaper").Dur("idle_timeout", r.IdleTimeout).Dur("interval", interval).Msg("reaper started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Sweep expires every filling room created before now-IdleTimeout and
// returns how many were removed.
func (r *Reaper) Sweep(now time.Time) int {
	cutoff := now.Add(-r.IdleTimeout)
	n := 0
	for _, room := range r.Rooms.Rooms() {
		if r.Expire(room, cutoff) {
			n++
		}
	}
	if n > 0 {
		log.Info().Str("module", "app.reaper").Int("expired", n).Msg("idle rooms reaped")
	}
	return n
}
