package neon

import "math"

// Vec2 is a point or velocity on the ground plane.
// X is lateral (0 is the track centre), Z is depth (grows away from the player).
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Z - o.Z} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Z * s} }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Heading returns a unit vector rotated by angle radians from straight ahead (+Z).
func Heading(angle float64) Vec2 {
	return Vec2{X: math.Sin(angle), Z: math.Cos(angle)}
}
