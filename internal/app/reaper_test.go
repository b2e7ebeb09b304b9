package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkeye/pong/internal/app"
	"github.com/dkeye/pong/internal/core"
	"github.com/dkeye/pong/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaper_Sweep(t *testing.T) {
	m := app.NewRoomManager(newRoom)
	waiting := m.GetOrCreate("waiting")
	_, err := waiting.Join("A")
	require.NoError(t, err)

	playing := m.GetOrCreate("playing")
	_, err = playing.Join("B")
	require.NoError(t, err)
	_, err = playing.Join("C")
	require.NoError(t, err)

	r := &app.Reaper{
		Rooms:       m,
		IdleTimeout: time.Minute,
		Expire: func(room core.RoomService, cutoff time.Time) bool {
			if !room.StopIdle(cutoff) {
				return false
			}
			m.Release(room)
			return true
		},
	}

	assert.Equal(t, 0, r.Sweep(time.Now()))
	assert.Equal(t, 1, r.Sweep(time.Now().Add(2*time.Minute)))

	_, ok := m.Get("waiting")
	assert.False(t, ok)
	assert.Equal(t, domain.RoomTerminal, waiting.State())
	assert.Equal(t, domain.RoomActive, playing.State())
}

func TestReaper_DisabledReturnsImmediately(t *testing.T) {
	r := &app.Reaper{Rooms: app.NewRoomManager(newRoom)}
	assert.NoError(t, r.Run(context.Background()))
}
