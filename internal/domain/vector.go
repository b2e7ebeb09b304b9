package domain

type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// ReflectX mirrors the horizontal component.
func (v Vector2) ReflectX() Vector2 {
	return Vector2{X: -v.X, Y: v.Y}
}

// ReflectY mirrors the vertical component.
func (v Vector2) ReflectY() Vector2 {
	return Vector2{X: v.X, Y: -v.Y}
}

// Clamp limits f to [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
