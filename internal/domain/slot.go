package domain

// Slot is a player's seat in a room. It holds no transport identity.
type Slot struct {
	Number  PlayerNumber
	PaddleY float64
}

func NewSlot(n PlayerNumber) *Slot {
	return &Slot{Number: n, PaddleY: PaddleStartY}
}

// MovePaddle stores the requested position clamped to the travel range.
func (s *Slot) MovePaddle(y float64) {
	s.PaddleY = Clamp(y, 0, PaddleMaxY)
}

// Hits reports whether the ball overlaps this slot's paddle.
func (s *Slot) Hits(b *Ball) bool {
	x := s.Number.PaddleX()
	return b.Left() <= x+PaddleWidth &&
		b.Right() >= x &&
		b.Pos.Y >= s.PaddleY &&
		b.Pos.Y <= s.PaddleY+PaddleHeight
}
