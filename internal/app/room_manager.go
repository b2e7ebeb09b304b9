package app

import (
	"context"
	"sync"

	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// RoomFactory builds a fresh room for an unknown id.
type RoomFactory func(id domain.RoomID) core.RoomService

// RoomManager owns the live rooms and the goroutines driving them.
type RoomManager struct {
	mu      sync.RWMutex
	rooms   map[domain.RoomID]core.RoomService
	factory RoomFactory
	loops   conc.WaitGroup
}

func NewRoomManager(factory RoomFactory) *RoomManager {
	return &RoomManager{
		rooms:   make(map[domain.RoomID]core.RoomService),
		factory: factory,
	}
}

func (m *RoomManager) GetOrCreate(id domain.RoomID) core.RoomService {
	m.mu.RLock()
	room, ok := m.rooms[id]
	m.mu.RUnlock()
	if ok {
		return room
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok = m.rooms[id]; ok {
		return room
	}
	room = m.factory(id)
	m.rooms[id] = room
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return room
}

func (m *RoomManager) Get(id domain.RoomID) (core.RoomService, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	return room, ok
}

// Remove deletes the room registered under id and stops it. Unknown ids
// are a no-op.
func (m *RoomManager) Remove(id domain.RoomID) {
	m.mu.Lock()
	room, ok := m.rooms[id]
	if ok {
		delete(m.rooms, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	room.Stop()
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room removed")
}

// Release removes room only while it is still the instance registered for
// its id, so a late teardown never evicts a newer room with the same name.
func (m *RoomManager) Release(room core.RoomService) {
	id := room.ID()
	m.mu.Lock()
	current, ok := m.rooms[id]
	owned := ok && current == room
	if owned {
		delete(m.rooms, id)
	}
	m.mu.Unlock()
	room.Stop()
	if owned {
		log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room released")
	}
}

// Activate starts the tick loop of room.
func (m *RoomManager) Activate(ctx context.Context, room core.RoomService) {
	m.loops.Go(func() { room.Run(ctx) })
}

func (m *RoomManager) Rooms() []core.RoomService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.RoomService, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

func (m *RoomManager) List() []core.RoomInfo {
	rooms := m.Rooms()
	out := make([]core.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	return out
}

func (m *RoomManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Close stops every room and waits for their loops to exit.
func (m *RoomManager) Close() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[domain.RoomID]core.RoomService)
	m.mu.Unlock()

	for _, r := range rooms {
		r.Stop()
	}
	m.loops.Wait()
	log.Info().Str("module", "app.rooms").Int("rooms", len(rooms)).Msg("room manager closed")
}
