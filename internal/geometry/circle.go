package geometry

import "math"

// Circle is a disc at Position with the given Radius (>= 0).
type Circle struct {
	Position Point
	Radius   float64
}

// CircleHalf selects one side of a circle's vertical centerline.
type CircleHalf int

const (
	Left CircleHalf = iota
	Right
)

func (h CircleHalf) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// SemicircleArc is a goal: a band of solid material on one half of a circle.
// The band spans radii Radius*(1-ArcWidth) to Radius on the Half side. The
// inner circle is the goal's back wall; the other half is the open mouth.
type SemicircleArc struct {
	Circle
	ArcWidth float64 // fraction of Radius, in [0, 1)
	Half     CircleHalf
}

// InnerRadius returns the radius of the arc's inner wall.
func (a SemicircleArc) InnerRadius() float64 {
	return a.Radius * (1 - a.ArcWidth)
}

// InnerCircle returns the circle traced by the arc's inner wall.
func (a SemicircleArc) InnerCircle() Circle {
	return Circle{Position: a.Position, Radius: a.InnerRadius()}
}

// OnSolidSide reports whether p lies on the arc's solid half.
// Points exactly on the centerline count as right.
func (a SemicircleArc) OnSolidSide(p Point) bool {
	return IsLeft(Diff(a.Position, p)) == (a.Half == Left)
}

// Corners returns the four points where the band meets the centerline:
// outer top, outer bottom, inner top, inner bottom.
func (a SemicircleArc) Corners() [4]Point {
	x, y := a.Position.X, a.Position.Y
	inner := a.InnerRadius()
	return [4]Point{
		{X: x, Y: y + a.Radius},
		{X: x, Y: y - a.Radius},
		{X: x, Y: y + inner},
		{X: x, Y: y - inner},
	}
}

// IntersectCircles returns the two points where the circles' outlines cross,
// using the radical line construction. It reports false when the circles are
// disjoint, one contains the other, they share a center, or rounding
// produces a NaN or negative root.
func IntersectCircles(c0, c1 Circle) ([2]Point, bool) {
	var none [2]Point

	d := Length(Diff(c0.Position, c1.Position))
	r0, r1 := c0.Radius, c1.Radius
	if d == 0 || d > r0+r1 || d < math.Abs(r0-r1) {
		return none, false
	}

	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	hh := r0*r0 - a*a
	if hh < 0 || math.IsNaN(hh) {
		return none, false
	}
	h := math.Sqrt(hh)

	p0, p1 := c0.Position, c1.Position
	mid := Point{
		X: p0.X + a*(p1.X-p0.X)/d,
		Y: p0.Y + a*(p1.Y-p0.Y)/d,
	}
	ox := h * (p1.Y - p0.Y) / d
	oy := h * (p1.X - p0.X) / d

	return [2]Point{
		{X: mid.X + ox, Y: mid.Y - oy},
		{X: mid.X - ox, Y: mid.Y + oy},
	}, true
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return DivVS(AddVV(a, b), 2)
}
