// Package domain contains the game entities and the pure math they need.
// Nothing here knows about rooms, goroutines or transports.
package domain

import "time"

// Playfield geometry. Clients draw with the same numbers, so these are not
// configurable.
const (
	FieldWidth  = 600.0
	FieldHeight = 400.0

	BallRadius = 10.0
	BallSpeed  = 5.0

	PaddleWidth  = 10.0
	PaddleHeight = 100.0
	PaddleStartY = 150.0
	PaddleMaxY   = FieldHeight - PaddleHeight
	LeftPaddleX  = 10.0
	RightPaddleX = FieldWidth - 2*PaddleWidth
	WinningScore = 5
	DefaultTick  = 16 * time.Millisecond
	MaxPlayers   = 2
	centerX      = FieldWidth / 2
	centerY      = FieldHeight / 2
)

// Center is where the ball starts and where it is put back after a point.
var Center = Vector2{X: centerX, Y: centerY}
