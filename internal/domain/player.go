package domain

import "fmt"

// PlayerNumber is the fixed ordinal of a player inside a room.
type PlayerNumber int

const (
	NoPlayer PlayerNumber = 0
	Player1  PlayerNumber = 1
	Player2  PlayerNumber = 2
)

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Side is the half of the field the player defends.
func (n PlayerNumber) Side() Side {
	if n == Player1 {
		return SideLeft
	}
	return SideRight
}

// PaddleX is the left edge of the paddle owned by this player.
func (n PlayerNumber) PaddleX() float64 {
	if n.Side() == SideLeft {
		return LeftPaddleX
	}
	return RightPaddleX
}

// Index maps an ordinal to a zero based array index.
func (n PlayerNumber) Index() int {
	return int(n) - 1
}

func (n PlayerNumber) String() string {
	return fmt.Sprintf("player%d", int(n))
}
