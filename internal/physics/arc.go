package physics

import "github.com/tomz197/goalball/internal/geometry"

// DetectCircleSemicircleArc returns the contact between a circle and a goal
// arc. Cases are tried in a fixed order and the first match wins:
//
//  1. the circle is inside the goal mouth and touches the inner wall
//  2. the circle is outside the arc on its solid half
//  3. the circle touches one of the four end-cap corners
//
// Anything else is no contact.
func DetectCircleSemicircleArc(circle geometry.Circle, arc geometry.SemicircleArc) (Manifold, bool) {
	if m, ok := detectConcave(circle, arc); ok {
		return m, true
	}
	if m, ok := detectOuter(circle, arc); ok {
		return m, true
	}
	return detectCorners(circle, arc)
}

// detectConcave handles a circle whose center is inside the inner wall on the
// solid side. The midpoint of the two outline crossings approximates the
// contact point; the normal points from it back to the circle's center.
func detectConcave(circle geometry.Circle, arc geometry.SemicircleArc) (Manifold, bool) {
	inner := arc.InnerCircle()
	if !arc.OnSolidSide(circle.Position) || !PointInCircle(circle.Position, inner) {
		return Manifold{}, false
	}

	pts, ok := geometry.IntersectCircles(circle, inner)
	if !ok {
		return Manifold{}, false
	}
	contact := geometry.Midpoint(pts[0], pts[1])

	return Manifold{
		Penetration: circle.Radius - geometry.Length(geometry.Diff(circle.Position, contact)),
		Normal:      geometry.Normalize(geometry.Diff(contact, circle.Position)),
	}, true
}

// detectOuter treats the arc as a full circle when the test circle sits
// beyond its outer radius on the solid half.
func detectOuter(circle geometry.Circle, arc geometry.SemicircleArc) (Manifold, bool) {
	if !arc.OnSolidSide(circle.Position) {
		return Manifold{}, false
	}
	if geometry.LengthSquared(geometry.Diff(arc.Position, circle.Position)) <= arc.Radius*arc.Radius {
		return Manifold{}, false
	}
	return DetectCircleCircle(circle, arc.Circle)
}

// detectCorners tests the band's end caps as points.
func detectCorners(circle geometry.Circle, arc geometry.SemicircleArc) (Manifold, bool) {
	for _, corner := range arc.Corners() {
		m, ok := DetectCircleCircle(circle, geometry.Circle{Position: corner, Radius: cornerRadius})
		if ok {
			return m, true
		}
	}
	return Manifold{}, false
}
