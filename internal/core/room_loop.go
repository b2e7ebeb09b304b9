package core

import (
	"context"
	"time"

	"github.com/dkeye/pong/internal/domain"
	"github.com/dkeye/pong/internal/protocol"
	"github.com/rs/zerolog/log"
)

type tickOutcome int

const (
	tickContinue tickOutcome = iota
	tickStopped
	tickFinished
)

func (r *roomImpl) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.state != domain.RoomActive || r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.cancel = cancel
	r.mu.Unlock()

	logger := log.With().Str("module", "core.room").Str("room", string(r.id)).Logger()
	logger.Info().Dur("period", r.period).Msg("game loop started")

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("game loop canceled")
			return
		case <-ticker.C:
			switch r.tick() {
			case tickContinue:
			case tickStopped:
				logger.Info().Msg("game loop stopped")
				return
			case tickFinished:
				logger.Info().Msg("game over")
				if r.onFinish != nil {
					r.onFinish(r)
				}
				return
			}
		}
	}
}

// tick runs one simulation step and publishes its result.
func (r *roomImpl) tick() tickOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.RoomActive {
		return tickStopped
	}

	if scorer := Step(&r.ball, r.slots); scorer != domain.NoPlayer {
		r.scores.Award(scorer)
	}

	to := r.othersLocked("")
	if r.scores.Winner() != domain.NoPlayer {
		r.state = domain.RoomTerminal
		r.pub.Publish(to, protocol.GameOver(r.scores))
		return tickFinished
	}

	res := r.pub.Publish(to, protocol.UpdateGame(r.snapshotLocked()))
	if len(res.Dropped) > 0 {
		log.Debug().Str("module", "core.room").Str("room", string(r.id)).Int("dropped", len(res.Dropped)).Msg("snapshot dropped")
	}
	return tickContinue
}
