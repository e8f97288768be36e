package game

import (
	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/motion"
	"github.com/tomz197/goalball/internal/physics"
)

// Inputs holds the held keys steering each player this tick. A nil entry
// leaves that player unsteered.
type Inputs struct {
	Player1 motion.KeyHistory
	Player2 motion.KeyHistory
}

// Events reports what happened during a tick.
type Events struct {
	Goal     bool
	Scorer   int // 1 or 2 when Goal is set
	Contacts int // resolved contacts
}

// entity pairs a body with its collision shape and material.
type entity struct {
	body        *Body
	radius      float64
	restitution float64
	mass        float64
}

func (e entity) circle() geometry.Circle {
	return geometry.Circle{Position: e.body.Position, Radius: e.radius}
}

func (e entity) info() physics.CollisionInfo {
	return physics.CollisionInfo{Velocity: e.body.Velocity, Restitution: e.restitution, Mass: e.mass}
}

// Step advances s by one tick at time now (seconds since start):
// velocities from held keys, contacts between every body pair, against
// both goals and against the walls, then positions by velocity.
func Step(cfg *config.Config, s *State, now float64, in Inputs) Events {
	s.advance(now)
	dt := s.Delta()

	// Rates are per second; scale them by the frame's elapsed time.
	playerRates := cfg.PlayerRates().Scaled(dt)
	ballRates := cfg.BallRates().Scaled(dt)

	s.Player1.Velocity = motion.UpdateVelocity(s.Player1.Velocity, playerRates, controls(in.Player1, cfg.Player1))
	s.Player2.Velocity = motion.UpdateVelocity(s.Player2.Velocity, playerRates, controls(in.Player2, cfg.Player2))
	s.Ball.Velocity = motion.UpdateVelocity(s.Ball.Velocity, ballRates, nil)

	p1 := entity{&s.Player1, cfg.Player.Radius, cfg.Player.Restitution, cfg.Player.Mass}
	p2 := entity{&s.Player2, cfg.Player.Radius, cfg.Player.Restitution, cfg.Player.Mass}
	ball := entity{&s.Ball, cfg.Ball.Radius, cfg.Ball.Restitution, cfg.Ball.Mass}

	var ev Events
	for _, pair := range [][2]entity{{p1, p2}, {p1, ball}, {p2, ball}} {
		if collideBodies(pair[0], pair[1]) {
			ev.Contacts++
		}
	}

	field := NewField(cfg)
	bodies := []entity{p1, p2, ball}
	for _, goal := range field.Goals() {
		for _, e := range bodies {
			m, ok := physics.DetectCircleSemicircleArc(e.circle(), goal)
			if ok && collideStatic(e, goalNormal(e, goal, m.Normal), cfg.Goal.Restitution) {
				ev.Contacts++
			}
		}
	}
	for _, e := range bodies {
		for _, m := range field.DetectWalls(e.circle()) {
			if collideStatic(e, m.Normal, cfg.Field.WallRestitution) {
				ev.Contacts++
			}
		}
	}

	for _, e := range bodies {
		e.body.Position = geometry.AddVV(e.body.Position, e.body.Velocity)
	}

	if scorer, ok := field.GoalScored(s.Ball.Position); ok {
		ev.Goal = true
		ev.Scorer = scorer
		if scorer == 1 {
			s.Score.Player1++
		} else {
			s.Score.Player2++
		}
		s.KickOff(cfg)
	}

	return ev
}

func controls(keys motion.KeyHistory, seat config.SeatConfig) *motion.Controls {
	if keys == nil {
		return nil
	}
	return &motion.Controls{Keys: keys, Mapping: seat.Keys}
}

// collideBodies resolves contact between two moving bodies.
func collideBodies(a, b entity) bool {
	m, ok := physics.DetectCircleCircle(a.circle(), b.circle())
	if !ok {
		return false
	}
	res, ok := physics.Resolve(a.info(), b.info(), m.Normal)
	if !ok {
		return false
	}
	a.body.Velocity = res.Velocity1
	b.body.Velocity = res.Velocity2
	return true
}

// goalNormal orients an arc manifold from the body toward the goal. Inside
// the mouth the detector reports the back wall's normal, which points at
// the body, so it is flipped.
func goalNormal(e entity, goal geometry.SemicircleArc, normal geometry.Vector) geometry.Vector {
	c := e.circle()
	inner := goal.InnerCircle()
	if !goal.OnSolidSide(c.Position) || !physics.PointInCircle(c.Position, inner) {
		return normal
	}
	if _, ok := geometry.IntersectCircles(c, inner); !ok {
		return normal
	}
	return geometry.MulSV(-1, normal)
}

// collideStatic resolves contact between a body and an immovable obstacle
// lying along normal.
func collideStatic(e entity, normal geometry.Vector, restitution float64) bool {
	res, ok := physics.Resolve(e.info(), physics.Immovable(restitution), normal)
	if !ok {
		return false
	}
	e.body.Velocity = res.Velocity1
	return true
}
