package core

import "github.com/dkeye/pong/internal/domain"

// Step advances the ball by one tick against the given paddles and reports
// which player scored, if any. Nil slots are empty seats.
//
// Both paddles are tested every tick. A ball inside both bands at once flips
// vx twice, which only degenerate geometry can produce.
func Step(ball *domain.Ball, slots [domain.MaxPlayers]*domain.Slot) domain.PlayerNumber {
	ball.Advance()

	if ball.TouchesWall() {
		ball.Vel = ball.Vel.ReflectY()
	}

	for _, s := range slots {
		if s != nil && s.Hits(ball) {
			ball.Vel = ball.Vel.ReflectX()
		}
	}

	switch {
	case ball.Pos.X <= 0:
		ball.Reset(-domain.BallSpeed)
		return domain.Player2
	case ball.Pos.X >= domain.FieldWidth:
		ball.Reset(domain.BallSpeed)
		return domain.Player1
	}
	return domain.NoPlayer
}
