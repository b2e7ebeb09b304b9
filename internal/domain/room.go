package domain

type RoomID string

type RoomState int

const (
	RoomFilling RoomState = iota
	RoomActive
	RoomTerminal
)

func (s RoomState) String() string {
	switch s {
	case RoomFilling:
		return "filling"
	case RoomActive:
		return "active"
	case RoomTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Award gives a point to n.
func (s *Scores) Award(n PlayerNumber) {
	switch n {
	case Player1:
		s.Player1++
	case Player2:
		s.Player2++
	}
}

// Winner returns the player that reached the winning score, if any.
func (s Scores) Winner() PlayerNumber {
	switch {
	case s.Player1 >= WinningScore:
		return Player1
	case s.Player2 >= WinningScore:
		return Player2
	default:
		return NoPlayer
	}
}
