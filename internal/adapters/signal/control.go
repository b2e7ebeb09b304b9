package signal

import "github.com/dkeye/pong/internal/protocol"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	ctl.send(conn, protocol.Pong())
}
