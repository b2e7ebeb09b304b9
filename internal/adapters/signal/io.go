package signal

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/protocol"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	// Closing the socket unblocks the read pump, which owns the disconnect.
	defer c.Close()

	var ping <-chan time.Time
	if ctl.opts.PingPeriod > 0 {
		ticker := time.NewTicker(ctl.opts.PingPeriod)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ping:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, sid core.SessionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Orch.HandleDisconnect(sid)
		if ctl.limiter != nil {
			ctl.limiter.Forget(sid)
		}
		c.Close()
		cancel()
	}()

	if ctl.opts.PingPeriod > 0 {
		pongWait := 2 * ctl.opts.PingPeriod
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(sid core.SessionID, c *WsSignalConn, data []byte) {
	env, err := protocol.Decode(data)
	if err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad envelope")
		return
	}

	switch env.Type {
	case protocol.TypeJoinRoom:
		ctl.handleJoin(sid, c, env)
	case protocol.TypeUpdatePaddle:
		ctl.handlePaddle(sid, env)
	case protocol.TypePing:
		ctl.handlePing(c)
	case protocol.TypeWhoAmI:
		ctl.handleWhoAmI(sid, c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *SignalWSController) send(c core.SignalConnection, m protocol.Message) {
	b, err := protocol.Encode(m)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("send encode")
		return
	}
	if err := c.TrySend(b); err != nil && !errors.Is(err, ErrConnClosed) {
		log.Warn().Err(err).Str("module", "signal").Str("type", m.Type).Msg("reply dropped")
	}
}
