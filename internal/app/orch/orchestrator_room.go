package orch

import (
	"errors"
	"time"

	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
	"github.com/dkeye/pong/internal/protocol"
	"github.com/rs/zerolog/log"
)

// joinAttempts bounds retries when a join races with a room teardown.
const joinAttempts = 2

func (o *Orchestrator) HandleJoin(sid core.SessionID, roomID domain.RoomID) {
	if _, ok := o.Registry.GetSession(sid); !ok {
		return
	}
	if current, _, ok := o.Registry.RoomOf(sid); ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(current)).Msg("join while already in a room")
		o.send(sid, protocol.Error(protocol.CodeAlreadyInRoom))
		return
	}

	for attempt := 0; attempt < joinAttempts; attempt++ {
		room := o.Rooms.GetOrCreate(roomID)
		res, err := room.Join(sid)
		switch {
		case errors.Is(err, core.ErrRoomFull):
			log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("room full")
			o.send(sid, protocol.RoomFull())
			return
		case errors.Is(err, core.ErrRoomClosed):
			// Torn down between lookup and join; the next lookup builds a fresh room.
			o.Rooms.Release(room)
			continue
		case err != nil:
			log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("join failed")
			return
		}

		if !o.Registry.UpdateRoom(sid, roomID) {
			o.abandon(room, sid)
			return
		}
		// A teardown that ran before the binding above could not unbind sid.
		if !o.stillSeated(room, sid) {
			o.Registry.RemoveRoom(sid, roomID)
			log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("room closed while joining")
			return
		}
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Int("player", int(res.Number)).Msg("joined room")
		o.send(sid, protocol.PlayerNumber(res.Number))

		if res.Started {
			o.Publish(room.Occupants(), protocol.StartGame())
			o.Rooms.Activate(o.ctx, room)
			return
		}
		o.send(sid, protocol.Waiting())
		return
	}
	log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("join gave up after teardown race")
}

func (o *Orchestrator) HandlePaddleIntent(sid core.SessionID, roomID domain.RoomID, y float64) {
	current, _, ok := o.Registry.RoomOf(sid)
	if !ok || (roomID != "" && roomID != current) {
		return
	}
	room, ok := o.Rooms.Get(current)
	if !ok {
		return
	}
	room.MovePaddle(sid, y)
}

// HandleDisconnect tears down the room of sid, if any, and forgets the
// connection. Calling it twice is harmless.
func (o *Orchestrator) HandleDisconnect(sid core.SessionID) {
	roomID, _, ok := o.Registry.RoomOf(sid)
	o.Registry.Unbind(sid)
	o.Policy.Forget(sid)
	if !ok {
		return
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return
	}
	o.abandon(room, sid)
}

// abandon ends room because sid left it.
func (o *Orchestrator) abandon(room core.RoomService, sid core.SessionID) {
	if _, seated := room.Seat(sid); !seated {
		return
	}
	others := room.Others(sid)
	if room.Stop() {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room.ID())).Msg("player left, closing room")
		o.Publish(others, protocol.OpponentDisconnected())
		o.unbindRoom(room, others)
	}
	o.Rooms.Release(room)
}

func (o *Orchestrator) stillSeated(room core.RoomService, sid core.SessionID) bool {
	if room.State() == domain.RoomTerminal {
		return false
	}
	_, ok := room.Seat(sid)
	return ok
}

// ExpireRoom tears down room if it is still waiting for a second player
// and was created before cutoff.
func (o *Orchestrator) ExpireRoom(room core.RoomService, cutoff time.Time) bool {
	if !room.StopIdle(cutoff) {
		return false
	}
	occupants := room.Occupants()
	o.Publish(occupants, protocol.RoomExpired())
	o.unbindRoom(room, occupants)
	o.Rooms.Release(room)
	return true
}

// onFinish runs on the room loop after game_over was published.
func (o *Orchestrator) onFinish(room core.RoomService) {
	info := room.Info()
	log.Info().Str("module", "orch").Str("room", string(info.ID)).Int("player1", info.Scores.Player1).Int("player2", info.Scores.Player2).Msg("match finished")
	o.unbindRoom(room, room.Occupants())
	o.Rooms.Release(room)
}

func (o *Orchestrator) unbindRoom(room core.RoomService, sids []core.SessionID) {
	for _, sid := range sids {
		o.Registry.RemoveRoom(sid, room.ID())
	}
}
