package constellation

import "math"

// Vector2 is a mutable 2D coordinate used for the cursor and touch points.
type Vector2 struct {
	X, Y float64
}

// Set moves the vector to (x, y)
func (v *Vector2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

// DistanceTo returns the Euclidean distance between v and o
func (v Vector2) DistanceTo(o Vector2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// AngleTo returns the angle of the direction pointing from v to o
func (v Vector2) AngleTo(o Vector2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Segment is a line from A to B
type Segment struct {
	A, B Vector2
}
