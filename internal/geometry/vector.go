// Package geometry provides the 2D vector and circle primitives the physics
// code is built on. Vectors are r2.Point values and are always copied.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vector is a 2D displacement or velocity.
type Vector = r2.Point

// Point is a Vector used as a position.
type Point = r2.Point

// Diff returns the vector from a to b (b - a).
func Diff(a, b Point) Vector {
	return b.Sub(a)
}

// LengthSquared returns |v|². Use it when comparing distances to skip the sqrt.
func LengthSquared(v Vector) float64 {
	return v.Dot(v)
}

// Length returns |v|.
func Length(v Vector) float64 {
	return math.Sqrt(LengthSquared(v))
}

// Normalize returns v scaled to unit length.
// The zero vector has no direction; the result is NaN and callers must
// special-case it.
func Normalize(v Vector) Vector {
	return DivVS(v, Length(v))
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector) float64 {
	return a.Dot(b)
}

// Component-wise arithmetic. The suffix names the operand kinds in order:
// V for a vector, S for a scalar applied to both components.

func AddVV(a, b Vector) Vector         { return a.Add(b) }
func AddVS(v Vector, s float64) Vector { return Vector{X: v.X + s, Y: v.Y + s} }
func AddSV(s float64, v Vector) Vector { return Vector{X: s + v.X, Y: s + v.Y} }

func SubVV(a, b Vector) Vector         { return a.Sub(b) }
func SubVS(v Vector, s float64) Vector { return Vector{X: v.X - s, Y: v.Y - s} }
func SubSV(s float64, v Vector) Vector { return Vector{X: s - v.X, Y: s - v.Y} }

func MulVV(a, b Vector) Vector         { return Vector{X: a.X * b.X, Y: a.Y * b.Y} }
func MulVS(v Vector, s float64) Vector { return v.Mul(s) }
func MulSV(s float64, v Vector) Vector { return v.Mul(s) }

func DivVV(a, b Vector) Vector         { return Vector{X: a.X / b.X, Y: a.Y / b.Y} }
func DivVS(v Vector, s float64) Vector { return Vector{X: v.X / s, Y: v.Y / s} }
func DivSV(s float64, v Vector) Vector { return Vector{X: s / v.X, Y: s / v.Y} }

// Quadrant classifies v by the signs of its components:
// 1 is x≥0,y≥0; 2 is x<0,y≥0; 3 is x<0,y<0; 4 is x≥0,y<0.
func Quadrant(v Vector) int {
	switch {
	case v.X >= 0 && v.Y >= 0:
		return 1
	case v.X < 0 && v.Y >= 0:
		return 2
	case v.X < 0:
		return 3
	default:
		return 4
	}
}

// IsLeft reports whether v points into quadrant 2 or 3.
func IsLeft(v Vector) bool {
	q := Quadrant(v)
	return q == 2 || q == 3
}
