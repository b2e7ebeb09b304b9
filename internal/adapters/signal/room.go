package signal

import (
	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
	"github.com/dkeye/pong/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	env protocol.Envelope,
) {
	if ctl.limiter != nil && !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join rate limited")
		ctl.send(conn, protocol.Error(protocol.CodeRateLimited))
		return
	}
	roomID, err := protocol.DecodeJoin(env)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		ctl.send(conn, protocol.Error(protocol.CodeBadPayload))
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(roomID)).Msg("join")
	ctl.Orch.HandleJoin(sid, roomID)
}

// handlePaddle forwards paddle intents. They arrive at frame rate, so bad
// ones are dropped without a reply.
func (ctl *SignalWSController) handlePaddle(
	sid core.SessionID,
	env protocol.Envelope,
) {
	p, err := protocol.DecodePaddle(env)
	if err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad paddle payload")
		return
	}
	ctl.Orch.HandlePaddleIntent(sid, domain.RoomID(p.RoomID), *p.PaddleY)
}
