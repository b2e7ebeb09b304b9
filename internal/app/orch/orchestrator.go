package orch

import (
	"context"
	"time"

	"github.com/dkeye/pong/internal/app"
	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
)

// Orchestrator is the session manager: it binds connections to rooms,
// routes their intents and fans room events out to their transports.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.RoomManager
	Policy   app.Policy

	ctx context.Context
}

type Options struct {
	TickPeriod time.Duration
	Policy     app.Policy
}

// New wires an orchestrator with its own room manager. Room loops live as
// long as ctx.
func New(ctx context.Context, reg *app.Registry, opts Options) *Orchestrator {
	o := &Orchestrator{
		Registry: reg,
		Policy:   opts.Policy,
		ctx:      ctx,
	}
	if o.Policy == nil {
		o.Policy = app.NewStrikePolicy(0)
	}
	o.Rooms = app.NewRoomManager(func(id domain.RoomID) core.RoomService {
		return core.NewRoomService(id, o,
			core.WithTickPeriod(opts.TickPeriod),
			core.WithOnFinish(o.onFinish),
		)
	})
	return o
}

// Reaper returns an idle room reaper bound to this orchestrator's rooms.
func (o *Orchestrator) Reaper(idle, interval time.Duration) *app.Reaper {
	return &app.Reaper{
		Rooms:       o.Rooms,
		IdleTimeout: idle,
		Interval:    interval,
		Expire:      o.ExpireRoom,
	}
}

// Shutdown stops every room and waits for their loops.
func (o *Orchestrator) Shutdown() {
	o.Rooms.Close()
}
