package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/pong/internal/app"
	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomManager_GetOrCreate(t *testing.T) {
	m := app.NewRoomManager(newRoom)

	r1 := m.GetOrCreate("r1")
	require.NotNil(t, r1)
	assert.Same(t, r1, m.GetOrCreate("r1"))
	assert.Equal(t, domain.RoomFilling, r1.State())
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get("r1")
	require.True(t, ok)
	assert.Same(t, r1, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestRoomManager_ConcurrentGetOrCreate(t *testing.T) {
	m := app.NewRoomManager(newRoom)

	var wg sync.WaitGroup
	rooms := make([]core.RoomService, 50)
	for i := range rooms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rooms[i] = m.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for _, r := range rooms {
		assert.Same(t, rooms[0], r)
	}
	assert.Equal(t, 1, m.Len())
}

func TestRoomManager_RemoveIsIdempotent(t *testing.T) {
	m := app.NewRoomManager(newRoom)
	r := m.GetOrCreate("r1")

	m.Remove("r1")
	m.Remove("r1")
	m.Remove("never-existed")

	assert.Equal(t, domain.RoomTerminal, r.State())
	_, ok := m.Get("r1")
	assert.False(t, ok)

	fresh := m.GetOrCreate("r1")
	assert.NotSame(t, r, fresh)
	assert.Equal(t, domain.RoomFilling, fresh.State())
}

func TestRoomManager_ReleaseKeepsNewerRoom(t *testing.T) {
	m := app.NewRoomManager(newRoom)
	old := m.GetOrCreate("r1")
	m.Remove("r1")
	fresh := m.GetOrCreate("r1")

	m.Release(old)

	got, ok := m.Get("r1")
	require.True(t, ok)
	assert.Same(t, fresh, got)
	assert.Equal(t, domain.RoomFilling, fresh.State())

	m.Release(fresh)
	_, ok = m.Get("r1")
	assert.False(t, ok)
}

func TestRoomManager_ActivateAndClose(t *testing.T) {
	m := app.NewRoomManager(func(id domain.RoomID) core.RoomService {
		return core.NewRoomService(id, nopPublisher{}, core.WithTickPeriod(time.Millisecond))
	})
	r := m.GetOrCreate("r1")
	_, err := r.Join("A")
	require.NoError(t, err)
	res, err := r.Join("B")
	require.NoError(t, err)
	require.True(t, res.Started)

	m.Activate(context.Background(), r)

	done := make(chan struct{})
	go func() {
		m.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not wait for the loop to exit")
	}
	assert.Equal(t, domain.RoomTerminal, r.State())
	assert.Equal(t, 0, m.Len())
}

func TestRoomManager_List(t *testing.T) {
	m := app.NewRoomManager(newRoom)
	m.GetOrCreate("a")
	r := m.GetOrCreate("b")
	_, err := r.Join("A")
	require.NoError(t, err)

	infos := m.List()
	require.Len(t, infos, 2)
	byID := map[domain.RoomID]core.RoomInfo{}
	for _, info := range infos {
		byID[info.ID] = info
	}
	assert.Equal(t, 0, byID["a"].Players)
	assert.Equal(t, 1, byID["b"].Players)
	assert.Equal(t, "filling", byID["b"].State)
}
