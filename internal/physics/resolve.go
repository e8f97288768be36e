package physics

import (
	"math"

	"github.com/tomz197/goalball/internal/geometry"
)

// ImmovableMass is the mass given to walls and goal posts. Its inverse is
// zero, so an impulse never changes an immovable body's velocity.
var ImmovableMass = math.Inf(1)

// CollisionInfo is the part of a body needed to resolve one contact.
type CollisionInfo struct {
	Velocity    geometry.Vector
	Restitution float64 // 0 = inelastic, 1 = perfectly elastic
	Mass        float64
}

// Immovable returns the CollisionInfo of a static obstacle.
func Immovable(restitution float64) CollisionInfo {
	return CollisionInfo{Restitution: restitution, Mass: ImmovableMass}
}

// Resolution holds the post-impulse velocities of both bodies.
type Resolution struct {
	Velocity1 geometry.Vector
	Velocity2 geometry.Vector
}

// Resolve applies an impulse along normal (pointing from obj1 to obj2).
// It reports false and leaves velocities alone if the bodies are already
// separating.
func Resolve(obj1, obj2 CollisionInfo, normal geometry.Vector) (Resolution, bool) {
	rv := geometry.Diff(obj1.Velocity, obj2.Velocity)
	velAlongNormal := geometry.Dot(rv, normal)

	if velAlongNormal > 0 {
		return Resolution{}, false
	}

	e := math.Min(obj1.Restitution, obj2.Restitution)

	j := -(1 + e) * velAlongNormal
	j /= 1/obj1.Mass + 1/obj2.Mass

	impulse := geometry.MulSV(j, normal)
	return Resolution{
		Velocity1: geometry.SubVV(obj1.Velocity, geometry.MulSV(1/obj1.Mass, impulse)),
		Velocity2: geometry.AddVV(obj2.Velocity, geometry.MulSV(1/obj2.Mass, impulse)),
	}, true
}
