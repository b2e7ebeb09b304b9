package orch

import (
	"github.com/dkeye/pong/internal/app"
	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Publish encodes msg once and queues it to every listed session that is
// still connected. Membership is resolved at send time. It never blocks.
func (o *Orchestrator) Publish(to []core.SessionID, msg protocol.Message) core.PublishResult {
	res := core.PublishResult{}
	if len(to) == 0 {
		return res
	}
	frame, err := protocol.Encode(msg)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("type", msg.Type).Msg("publish encode")
		return res
	}

	for _, sid := range to {
		sess, ok := o.Registry.GetSession(sid)
		if !ok {
			continue
		}
		if err := sess.Signal().TrySend(core.Frame(frame)); err != nil {
			res.Dropped = append(res.Dropped, sid)
			o.onDropped(sess, msg.Type, err)
			continue
		}
		o.Policy.OnDelivered(sid)
		res.SendTo++
	}
	return res
}

func (o *Orchestrator) send(sid core.SessionID, msg protocol.Message) {
	o.Publish([]core.SessionID{sid}, msg)
}

func (o *Orchestrator) onDropped(sess core.MemberSession, msgType string, err error) {
	switch o.Policy.OnBackPressure(sess.ID()) {
	case app.KickMember:
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sess.ID())).Msg("kicking slow connection")
		// Canceling stops the pumps; the read pump then runs the disconnect path.
		o.Registry.Cancel(sess.ID())
		sess.Signal().Close()
	case app.DropFrame, app.NoAction:
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sess.ID())).Str("type", msgType).Msg("frame dropped")
	}
}
