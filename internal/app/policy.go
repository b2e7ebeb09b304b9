package app

import (
	"sync"

	"github.com/dkeye/pong/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a connection whose send queue is full.
type Policy interface {
	OnBackPressure(sid core.SessionID) BackpressureAction
	OnDelivered(sid core.SessionID)
	Forget(sid core.SessionID)
}

// StrikePolicy drops frames for a slow connection and kicks it after
// MaxDropped consecutive drops. MaxDropped <= 0 never kicks.
type StrikePolicy struct {
	MaxDropped int

	mu      sync.Mutex
	strikes map[core.SessionID]int
}

func NewStrikePolicy(maxDropped int) *StrikePolicy {
	return &StrikePolicy{MaxDropped: maxDropped, strikes: make(map[core.SessionID]int)}
}

func (p *StrikePolicy) OnBackPressure(sid core.SessionID) BackpressureAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.strikes[sid]++
	if p.MaxDropped > 0 && p.strikes[sid] >= p.MaxDropped {
		delete(p.strikes, sid)
		return KickMember
	}
	return DropFrame
}

func (p *StrikePolicy) OnDelivered(sid core.SessionID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.strikes, sid)
}

func (p *StrikePolicy) Forget(sid core.SessionID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.strikes, sid)
}
