package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/dkeye/pong/internal/domain"
)

// MaxRoomIDLen bounds room identifiers accepted from clients.
const MaxRoomIDLen = 128

var ErrBadPayload = errors.New("bad payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Encode serializes an outbound message.
func Encode(m Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Type, err)
	}
	return b, nil
}

// Decode parses an inbound envelope.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrBadPayload)
	}
	return env, nil
}

// DecodeJoin extracts the room id of a join_room event. Clients send it as
// a bare string; the id is opaque and kept byte for byte, but a blank one
// is rejected.
func DecodeJoin(env Envelope) (domain.RoomID, error) {
	var id string
	if err := json.Unmarshal(env.Data, &id); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if strings.TrimSpace(id) == "" || len(id) > MaxRoomIDLen {
		return "", fmt.Errorf("%w: room id length %d", ErrBadPayload, len(id))
	}
	return domain.RoomID(id), nil
}

// DecodePaddle extracts an update_paddle payload.
func DecodePaddle(env Envelope) (PaddleUpdate, error) {
	var p PaddleUpdate
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return PaddleUpdate{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if err := validate.Struct(p); err != nil {
		return PaddleUpdate{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return p, nil
}
