package domain

type Ball struct {
	Pos    Vector2
	Vel    Vector2
	Radius float64
}

// NewBall returns a ball at the center moving down and to the right.
func NewBall() Ball {
	return Ball{
		Pos:    Center,
		Vel:    Vector2{X: BallSpeed, Y: BallSpeed},
		Radius: BallRadius,
	}
}

// Advance integrates one tick worth of velocity.
func (b *Ball) Advance() {
	b.Pos = b.Pos.Add(b.Vel)
}

// TouchesWall reports whether the ball is at or past the top or bottom bound.
// There is no positional correction: the caller only flips vy.
func (b *Ball) TouchesWall() bool {
	return b.Pos.Y <= b.Radius || b.Pos.Y >= FieldHeight-b.Radius
}

// Reset puts the ball back at the center. vx decides which side it travels to,
// vy is always positive.
func (b *Ball) Reset(vx float64) {
	b.Pos = Center
	b.Vel = Vector2{X: vx, Y: BallSpeed}
}

// Left and Right are the horizontal extent of the ball.
func (b *Ball) Left() float64  { return b.Pos.X - b.Radius }
func (b *Ball) Right() float64 { return b.Pos.X + b.Radius }
