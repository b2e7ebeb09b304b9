package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/pong/internal/app/orch"
	"github.com/dkeye/pong/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

const (
	defaultSendBuffer = 32
	writeWait         = 5 * time.Second
)

type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	SendBuffer int
	// JoinLimit join_room attempts are allowed per JoinWindow; 0 disables the limit.
	JoinLimit  int
	JoinWindow time.Duration
}

type SignalWSController struct {
	Orch *orch.Orchestrator

	opts     Options
	limiter  *JoinRateLimiter
	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, opts Options) *SignalWSController {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaultSendBuffer
	}
	ctl := &SignalWSController{
		Orch: o,
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if opts.JoinLimit > 0 {
		ctl.limiter = NewJoinRateLimiter(opts.JoinLimit, opts.JoinWindow)
	}
	return ctl
}

// WsSignalConn implements core.SignalConnection over one WebSocket.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and serves it until the socket closes.
// Every socket is its own session, even when a browser opens several.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.opts.ReadLimit > 0 {
		ws.SetReadLimit(ctl.opts.ReadLimit)
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.opts.SendBuffer),
	}

	sess := core.NewMemberSession(sid, conn)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.BindSignal(sid, sess, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
