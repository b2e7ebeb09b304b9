package signal

import (
	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/protocol"
)

func (ctl *SignalWSController) handleWhoAmI(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	resp := protocol.WhoAmIState{SessionID: string(sid)}
	if roomID, _, ok := ctl.Orch.Registry.RoomOf(sid); ok {
		resp.RoomID = string(roomID)
		if room, ok := ctl.Orch.Rooms.Get(roomID); ok {
			resp.PlayerNumber, _ = room.Seat(sid)
		}
	}
	ctl.send(conn, protocol.WhoAmI(resp))
}
