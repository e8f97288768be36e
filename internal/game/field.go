package game

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/physics"
)

// Field is the static geometry of a match: the walls and both goals.
type Field struct {
	Bounds    r2.Rect
	LeftGoal  geometry.SemicircleArc // defended by player 1
	RightGoal geometry.SemicircleArc // defended by player 2
}

// NewField derives the field geometry from cfg.
func NewField(cfg *config.Config) Field {
	bounds := r2.Rect{
		X: r1.Interval{Lo: 0, Hi: cfg.Field.Width},
		Y: r1.Interval{Lo: 0, Hi: cfg.Field.Height},
	}
	center := bounds.Center()

	goal := func(x float64, half geometry.CircleHalf) geometry.SemicircleArc {
		return geometry.SemicircleArc{
			Circle: geometry.Circle{
				Position: geometry.Point{X: x, Y: center.Y},
				Radius:   cfg.Goal.Radius,
			},
			ArcWidth: cfg.Goal.ArcWidth,
			Half:     half,
		}
	}

	return Field{
		Bounds:    bounds,
		LeftGoal:  goal(center.X-cfg.Goal.OffsetX, geometry.Left),
		RightGoal: goal(center.X+cfg.Goal.OffsetX, geometry.Right),
	}
}

// Center returns the middle of the field.
func (f Field) Center() geometry.Point {
	return f.Bounds.Center()
}

// Goals returns both goals, left first.
func (f Field) Goals() [2]geometry.SemicircleArc {
	return [2]geometry.SemicircleArc{f.LeftGoal, f.RightGoal}
}

// DetectWalls returns a contact for each wall c crosses (two in a corner).
// Normals point out of the field, from the circle toward the wall.
func (f Field) DetectWalls(c geometry.Circle) []physics.Manifold {
	p, r := c.Position, c.Radius
	walls := [4]physics.Manifold{
		{Penetration: r - (p.X - f.Bounds.X.Lo), Normal: geometry.Vector{X: -1}},
		{Penetration: r - (f.Bounds.X.Hi - p.X), Normal: geometry.Vector{X: 1}},
		{Penetration: r - (p.Y - f.Bounds.Y.Lo), Normal: geometry.Vector{Y: -1}},
		{Penetration: r - (f.Bounds.Y.Hi - p.Y), Normal: geometry.Vector{Y: 1}},
	}

	var contacts []physics.Manifold
	for _, w := range walls {
		if w.Penetration > 0 {
			contacts = append(contacts, w)
		}
	}
	return contacts
}

// GoalScored reports whether the ball has gone into a goal and, if so,
// which player scored. The ball is in once its center is inside the inner
// wall on the goal's solid side.
func (f Field) GoalScored(ball geometry.Point) (scorer int, ok bool) {
	if inGoal(f.LeftGoal, ball) {
		return 2, true
	}
	if inGoal(f.RightGoal, ball) {
		return 1, true
	}
	return 0, false
}

func inGoal(goal geometry.SemicircleArc, p geometry.Point) bool {
	return goal.OnSolidSide(p) && physics.PointInCircle(p, goal.InnerCircle())
}
