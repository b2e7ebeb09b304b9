package core

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/pong/internal/domain"
	"github.com/dkeye/pong/internal/protocol"
)

var (
	ErrRoomFull      = errors.New("room full")
	ErrRoomClosed    = errors.New("room closed")
	ErrAlreadySeated = errors.New("already seated")
)

// PublishResult reports delivery stats to the room.
type PublishResult struct {
	SendTo  int
	Dropped []SessionID
}

// Publisher delivers a message to the given sessions. It must not block:
// rooms call it while holding their lock.
type Publisher interface {
	Publish(to []SessionID, msg protocol.Message) PublishResult
}

// JoinResult tells the caller which seat was taken and whether the room
// just became full.
type JoinResult struct {
	Number  domain.PlayerNumber
	Started bool
}

// RoomService is one match. It owns the slots, the ball, the scores and
// the tick loop, and never touches transport resources.
type RoomService interface {
	ID() domain.RoomID
	State() domain.RoomState
	Info() RoomInfo

	Join(sid SessionID) (JoinResult, error)
	Seat(sid SessionID) (domain.PlayerNumber, bool)
	Occupants() []SessionID
	Others(sid SessionID) []SessionID
	MovePaddle(sid SessionID, y float64) bool
	Snapshot() protocol.GameState

	// Run drives the tick loop until the room stops or ctx is done.
	// It returns at once if the room is not active.
	Run(ctx context.Context)
	// Stop moves the room to terminal. It reports whether this call did
	// the transition; once it returns no tick will publish anything.
	Stop() bool
	// StopIdle stops the room only if it is still filling and was created
	// before cutoff.
	StopIdle(cutoff time.Time) bool
}

type RoomInfo struct {
	ID        domain.RoomID `json:"id"`
	State     string        `json:"state"`
	Players   int           `json:"players"`
	Scores    domain.Scores `json:"scores"`
	CreatedAt time.Time     `json:"created_at"`
}
