package app

import (
	"context"
	"sync"

	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	RoomID  domain.RoomID
	Session core.MemberSession
	Cancel  context.CancelFunc
}

// Registry maps live connections to the room they play in. It is a routing
// table only and holds no game state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

func (r *Registry) BindSignal(sid core.SessionID, sess core.MemberSession, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Session: sess, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
}

func (r *Registry) GetSession(sid core.SessionID) (core.MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sid]; !ok {
		return
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, core.MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.RoomID == "" {
		return "", nil, false
	}
	return entry.RoomID, entry.Session, true
}

// UpdateRoom records the room of a bound session. It returns false when
// the session is gone.
func (r *Registry) UpdateRoom(sid core.SessionID, id domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return false
	}
	entry.RoomID = id
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(id)).Msg("updated room")
	return true
}

// RemoveRoom clears the room of sid if it still points at id.
func (r *Registry) RemoveRoom(sid core.SessionID, id domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[sid]; ok && entry.RoomID == id {
		entry.RoomID = ""
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(id)).Msg("removed room association")
	}
}

// Cancel ends the session context of sid, stopping its transport pumps.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
