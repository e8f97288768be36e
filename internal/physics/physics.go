// Package physics provides collision detection and impulse resolution for
// circles and semicircular goal arcs.
package physics

import "github.com/tomz197/goalball/internal/geometry"

// Manifold describes one contact: how deep the shapes overlap and the unit
// direction from the first shape toward the second.
type Manifold struct {
	Penetration float64
	Normal      geometry.Vector
}

// sameCenterNormal is used when two circles share a center and no direction
// can be derived from their positions. Arbitrary, but fixed for
// reproducibility.
var sameCenterNormal = geometry.Normalize(geometry.Vector{X: 1, Y: 2})

// DetectCircleCircle returns the contact between c1 and c2, if they touch.
func DetectCircleCircle(c1, c2 geometry.Circle) (Manifold, bool) {
	// Vector from c1 to c2
	n := geometry.Diff(c1.Position, c2.Position)
	r := c1.Radius + c2.Radius

	if geometry.LengthSquared(n) > r*r {
		return Manifold{}, false
	}

	d := geometry.Length(n)
	if d != 0 {
		return Manifold{
			Penetration: r - d,
			Normal:      geometry.Normalize(n),
		}, true
	}

	return Manifold{
		Penetration: c1.Radius,
		Normal:      sameCenterNormal,
	}, true
}

// PointInCircle checks if p is strictly inside c.
func PointInCircle(p geometry.Point, c geometry.Circle) bool {
	return geometry.LengthSquared(geometry.Diff(c.Position, p)) < c.Radius*c.Radius
}

// cornerRadius stands in for a zero-size circle at an arc's end caps
// (float64 machine epsilon).
const cornerRadius = 0x1p-52
