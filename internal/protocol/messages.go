// Package protocol defines the named events exchanged with game clients.
// Every WebSocket text frame is an envelope {"type": ..., "data": ...}.
package protocol

import (
	json "github.com/goccy/go-json"

	"github.com/dkeye/pong/internal/domain"
)

// Inbound event types.
const (
	TypeJoinRoom     = "join_room"
	TypeUpdatePaddle = "update_paddle"
	TypePing         = "ping"
	TypeWhoAmI       = "whoami"
)

// Outbound event types.
const (
	TypePlayerNumber         = "player_number"
	TypeRoomFull             = "room_full"
	TypeWaiting              = "waiting"
	TypeStartGame            = "start_game"
	TypeUpdateGame           = "update_game"
	TypeGameOver             = "game_over"
	TypeOpponentDisconnected = "opponent_disconnected"
	TypeRoomExpired          = "room_expired"
	TypeError                = "error"
	TypePong                 = "pong"
)

// Error codes carried by TypeError.
const (
	CodeBadPayload    = "bad_payload"
	CodeAlreadyInRoom = "already_in_room"
	CodeRateLimited   = "rate_limited"
)

// Envelope is the decoded form of an inbound frame. Data stays raw until
// the handler for Type decodes it.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message is an outbound event.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type PaddleUpdate struct {
	RoomID  string   `json:"roomId" validate:"max=128"`
	PaddleY *float64 `json:"paddleY" validate:"required"`
}

type BallState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

type PaddleState struct {
	PaddleY      float64             `json:"paddleY"`
	PlayerNumber domain.PlayerNumber `json:"playerNumber"`
}

// GameState is the per-tick snapshot. Paddles is keyed by session id.
type GameState struct {
	Ball    BallState              `json:"ball"`
	Paddles map[string]PaddleState `json:"paddles"`
	Scores  domain.Scores          `json:"scores"`
}

type WhoAmIState struct {
	SessionID    string              `json:"sid"`
	RoomID       string              `json:"roomId,omitempty"`
	PlayerNumber domain.PlayerNumber `json:"playerNumber,omitempty"`
}

func PlayerNumber(n domain.PlayerNumber) Message {
	return Message{Type: TypePlayerNumber, Data: int(n)}
}

func RoomFull() Message             { return Message{Type: TypeRoomFull} }
func Waiting() Message              { return Message{Type: TypeWaiting} }
func StartGame() Message            { return Message{Type: TypeStartGame} }
func OpponentDisconnected() Message { return Message{Type: TypeOpponentDisconnected} }
func RoomExpired() Message          { return Message{Type: TypeRoomExpired} }
func Pong() Message                 { return Message{Type: TypePong} }

func UpdateGame(s GameState) Message {
	return Message{Type: TypeUpdateGame, Data: s}
}

func GameOver(s domain.Scores) Message {
	return Message{Type: TypeGameOver, Data: s}
}

func Error(code string) Message {
	return Message{Type: TypeError, Data: code}
}

func WhoAmI(s WhoAmIState) Message {
	return Message{Type: TypeWhoAmI, Data: s}
}
