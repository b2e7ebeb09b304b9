package core

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/pong/internal/domain"
	"github.com/dkeye/pong/internal/protocol"
	"github.com/rs/zerolog/log"
)

// RoomOption tunes a room at construction.
type RoomOption func(*roomImpl)

// WithTickPeriod overrides domain.DefaultTick.
func WithTickPeriod(d time.Duration) RoomOption {
	return func(r *roomImpl) {
		if d > 0 {
			r.period = d
		}
	}
}

// WithOnFinish registers a callback run from the loop goroutine after the
// room ended on a win. It is not called when the room is stopped from outside.
func WithOnFinish(fn func(RoomService)) RoomOption {
	return func(r *roomImpl) { r.onFinish = fn }
}

// roomImpl is a threadsafe in-memory match.
// mu guards everything below it; the tick publishes while holding it.
type roomImpl struct {
	id       domain.RoomID
	pub      Publisher
	period   time.Duration
	onFinish func(RoomService)

	mu        sync.Mutex
	state     domain.RoomState
	slots     [domain.MaxPlayers]*domain.Slot
	occupants [domain.MaxPlayers]SessionID
	ball      domain.Ball
	scores    domain.Scores
	createdAt time.Time
	running   bool
	cancel    context.CancelFunc
}

func NewRoomService(id domain.RoomID, pub Publisher, opts ...RoomOption) RoomService {
	r := &roomImpl{
		id:        id,
		pub:       pub,
		period:    domain.DefaultTick,
		state:     domain.RoomFilling,
		ball:      domain.NewBall(),
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) State() domain.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *roomImpl) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{
		ID:        r.id,
		State:     r.state.String(),
		Players:   r.countLocked(),
		Scores:    r.scores,
		CreatedAt: r.createdAt,
	}
}

func (r *roomImpl) Join(sid SessionID) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == domain.RoomTerminal {
		return JoinResult{}, ErrRoomClosed
	}
	if _, ok := r.seatLocked(sid); ok {
		return JoinResult{}, ErrAlreadySeated
	}
	if r.countLocked() >= domain.MaxPlayers {
		return JoinResult{}, ErrRoomFull
	}

	n := domain.Player1
	if r.slots[domain.Player1.Index()] != nil {
		n = domain.Player2
	}
	r.slots[n.Index()] = domain.NewSlot(n)
	r.occupants[n.Index()] = sid

	res := JoinResult{Number: n}
	if r.countLocked() == domain.MaxPlayers {
		r.state = domain.RoomActive
		res.Started = true
	}
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Int("player", int(n)).Msg("player seated")
	return res, nil
}

func (r *roomImpl) Seat(sid SessionID) (domain.PlayerNumber, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seatLocked(sid)
}

func (r *roomImpl) Occupants() []SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.othersLocked("")
}

func (r *roomImpl) Others(sid SessionID) []SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.othersLocked(sid)
}

func (r *roomImpl) MovePaddle(sid SessionID, y float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == domain.RoomTerminal {
		return false
	}
	n, ok := r.seatLocked(sid)
	if !ok {
		return false
	}
	r.slots[n.Index()].MovePaddle(y)
	return true
}

func (r *roomImpl) Snapshot() protocol.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *roomImpl) Stop() bool {
	r.mu.Lock()
	if r.state == domain.RoomTerminal {
		r.mu.Unlock()
		return false
	}
	r.state = domain.RoomTerminal
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Msg("room stopped")
	return true
}

func (r *roomImpl) StopIdle(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != domain.RoomFilling || !r.createdAt.Before(cutoff) {
		return false
	}
	r.state = domain.RoomTerminal
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Msg("idle room expired")
	return true
}

func (r *roomImpl) seatLocked(sid SessionID) (domain.PlayerNumber, bool) {
	if sid == "" {
		return domain.NoPlayer, false
	}
	for i, occ := range r.occupants {
		if occ == sid && r.slots[i] != nil {
			return r.slots[i].Number, true
		}
	}
	return domain.NoPlayer, false
}

func (r *roomImpl) othersLocked(skip SessionID) []SessionID {
	out := make([]SessionID, 0, domain.MaxPlayers)
	for i, occ := range r.occupants {
		if r.slots[i] == nil || occ == skip {
			continue
		}
		out = append(out, occ)
	}
	return out
}

func (r *roomImpl) countLocked() int {
	n := 0
	for _, s := range r.slots {
		if s != nil {
			n++
		}
	}
	return n
}

func (r *roomImpl) snapshotLocked() protocol.GameState {
	paddles := make(map[string]protocol.PaddleState, domain.MaxPlayers)
	for i, s := range r.slots {
		if s == nil {
			continue
		}
		paddles[string(r.occupants[i])] = protocol.PaddleState{
			PaddleY:      s.PaddleY,
			PlayerNumber: s.Number,
		}
	}
	return protocol.GameState{
		Ball: protocol.BallState{
			X:      r.ball.Pos.X,
			Y:      r.ball.Pos.Y,
			VX:     r.ball.Vel.X,
			VY:     r.ball.Vel.Y,
			Radius: r.ball.Radius,
		},
		Paddles: paddles,
		Scores:  r.scores,
	}
}
