package game

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/input"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func held(keys ...input.Key) input.Snapshot {
	tr := input.NewTracker(0)
	now := time.Now()
	for _, k := range keys {
		tr.Press(k, now)
	}
	return tr.Snapshot()
}

// quietState returns a state with the ball parked away from everything.
func quietState(cfg *config.Config) *State {
	s := NewState(cfg)
	s.Ball.Position = geometry.Point{X: 60, Y: 10}
	return s
}

func TestNewState(t *testing.T) {
	cfg := config.Default()
	s := NewState(cfg)

	if s.Player1.Position != cfg.Player1.Start || s.Player2.Position != cfg.Player2.Start {
		t.Errorf("players not at their starts: %v, %v", s.Player1.Position, s.Player2.Position)
	}
	if s.Ball.Position != (geometry.Point{X: 60, Y: 40}) {
		t.Errorf("ball at %v, expected field center", s.Ball.Position)
	}
	if s.FrameCount != 0 {
		t.Errorf("FrameCount = %d", s.FrameCount)
	}
}

func TestStepAdvancesTiming(t *testing.T) {
	cfg := config.Default()
	s := quietState(cfg)

	Step(cfg, s, 0.5, Inputs{})
	Step(cfg, s, 0.75, Inputs{})

	if s.FrameCount != 2 {
		t.Errorf("FrameCount = %d, expected 2", s.FrameCount)
	}
	if s.PreviousFrameTimestamp != 0.5 || s.CurrentFrameTimestamp != 0.75 {
		t.Errorf("timestamps = %v, %v", s.PreviousFrameTimestamp, s.CurrentFrameTimestamp)
	}
	if s.Delta() != 0.25 {
		t.Errorf("Delta = %v, expected 0.25", s.Delta())
	}
}

func TestStepSteersOnlyMappedPlayer(t *testing.T) {
	cfg := config.Default()
	s := quietState(cfg)

	// One second elapsed: acceleration 1.5 is capped at max speed 1.2.
	Step(cfg, s, 1, Inputs{Player1: held("d"), Player2: held("d")})

	if !approx(s.Player1.Velocity.X, cfg.Player.MaxSpeed) || s.Player1.Velocity.Y != 0 {
		t.Errorf("player 1 velocity = %v", s.Player1.Velocity)
	}
	if !approx(s.Player1.Position.X, cfg.Player1.Start.X+cfg.Player.MaxSpeed) {
		t.Errorf("player 1 position = %v", s.Player1.Position)
	}
	if s.Player2.Velocity != (geometry.Vector{}) {
		t.Errorf("player 2 moved on player 1's keys: %v", s.Player2.Velocity)
	}
	if s.Ball.Velocity != (geometry.Vector{}) {
		t.Errorf("ball moved: %v", s.Ball.Velocity)
	}
}

func TestStepPlayersCollide(t *testing.T) {
	cfg := config.Default()
	s := quietState(cfg)
	s.Player1 = Body{Position: geometry.Point{X: 50, Y: 40}, Velocity: geometry.Vector{X: 1}}
	s.Player2 = Body{Position: geometry.Point{X: 57, Y: 40}, Velocity: geometry.Vector{X: -1}}

	ev := Step(cfg, s, 0, Inputs{})

	if ev.Contacts != 1 {
		t.Errorf("Contacts = %d, expected 1", ev.Contacts)
	}
	// Equal masses, restitution 0.7: each rebounds at 0.7.
	if !approx(s.Player1.Velocity.X, -0.7) || !approx(s.Player2.Velocity.X, 0.7) {
		t.Errorf("velocities = %v, %v", s.Player1.Velocity, s.Player2.Velocity)
	}
}

func TestStepBallRebounds(t *testing.T) {
	cfg := config.Default()

	t.Run("wall", func(t *testing.T) {
		s := NewState(cfg)
		s.Ball = Body{Position: geometry.Point{X: 119, Y: 5}, Velocity: geometry.Vector{X: 2}}

		ev := Step(cfg, s, 0, Inputs{})

		if ev.Contacts != 1 {
			t.Errorf("Contacts = %d, expected 1", ev.Contacts)
		}
		// min(ball 0.9, wall 0.8) restitution
		if !approx(s.Ball.Velocity.X, -1.6) || s.Ball.Velocity.Y != 0 {
			t.Errorf("ball velocity = %v, expected (-1.6, 0)", s.Ball.Velocity)
		}
	})

	t.Run("corner", func(t *testing.T) {
		s := NewState(cfg)
		s.Ball = Body{Position: geometry.Point{X: 1, Y: 1}, Velocity: geometry.Vector{X: -1, Y: -1}}

		ev := Step(cfg, s, 0, Inputs{})

		if ev.Contacts != 2 {
			t.Errorf("Contacts = %d, expected 2", ev.Contacts)
		}
		if s.Ball.Velocity.X <= 0 || s.Ball.Velocity.Y <= 0 {
			t.Errorf("ball velocity = %v, expected to point back into the field", s.Ball.Velocity)
		}
	})

	t.Run("goal_post", func(t *testing.T) {
		s := NewState(cfg)
		s.Ball = Body{Position: geometry.Point{X: 110, Y: 26.5}, Velocity: geometry.Vector{Y: 1}}

		ev := Step(cfg, s, 0, Inputs{})

		if ev.Contacts != 1 {
			t.Errorf("Contacts = %d, expected 1", ev.Contacts)
		}
		if s.Ball.Velocity.Y >= 0 {
			t.Errorf("ball velocity = %v, expected to bounce up off the goal", s.Ball.Velocity)
		}
	})
}

func TestStepGoalBackWall(t *testing.T) {
	cfg := config.Default()

	// Left goal: center (14, 40), inner radius 9.
	t.Run("moving_in_bounces", func(t *testing.T) {
		s := NewState(cfg)
		s.Player1 = Body{Position: geometry.Point{X: 8, Y: 40}, Velocity: geometry.Vector{X: -1}}

		ev := Step(cfg, s, 0, Inputs{})

		if ev.Contacts != 1 {
			t.Errorf("Contacts = %d, expected 1", ev.Contacts)
		}
		// min(player 0.7, goal 0.8) restitution
		if !approx(s.Player1.Velocity.X, 0.7) || !approx(s.Player1.Velocity.Y, 0) {
			t.Errorf("velocity = %v, expected (0.7, 0)", s.Player1.Velocity)
		}
		if !approx(s.Player1.Position.X, 8.7) {
			t.Errorf("position = %v, expected x 8.7", s.Player1.Position)
		}
	})

	t.Run("never_passes_through", func(t *testing.T) {
		s := NewState(cfg)
		s.Player1 = Body{Position: geometry.Point{X: 10, Y: 40}, Velocity: geometry.Vector{X: -1}}
		center := NewField(cfg).LeftGoal.Position

		for i := 0; i < 10; i++ {
			Step(cfg, s, 0, Inputs{})
			if d := geometry.Length(geometry.Diff(center, s.Player1.Position)); d > 9 {
				t.Fatalf("tick %d: player center %v is %.2f from the goal center, inside the back wall", i, s.Player1.Position, d)
			}
		}
	})

	t.Run("moving_out_is_free", func(t *testing.T) {
		s := NewState(cfg)
		s.Player1 = Body{Position: geometry.Point{X: 8, Y: 40}, Velocity: geometry.Vector{X: 1}}

		ev := Step(cfg, s, 0, Inputs{})

		if ev.Contacts != 0 {
			t.Errorf("Contacts = %d, expected 0", ev.Contacts)
		}
		if s.Player1.Velocity != (geometry.Vector{X: 1}) {
			t.Errorf("velocity = %v, expected (1, 0)", s.Player1.Velocity)
		}
	})
}

func TestStepGoalScoredResetsBodies(t *testing.T) {
	cfg := config.Default()
	s := NewState(cfg)
	s.Player1.Position = geometry.Point{X: 30, Y: 60}
	s.Ball = Body{Position: geometry.Point{X: 14.5, Y: 40}, Velocity: geometry.Vector{X: -1}}

	ev := Step(cfg, s, 0, Inputs{})

	if !ev.Goal || ev.Scorer != 2 {
		t.Fatalf("Events = %+v, expected a goal for player 2", ev)
	}
	if s.Score != (Score{Player2: 1}) {
		t.Errorf("Score = %+v", s.Score)
	}
	if s.Ball.Position != NewField(cfg).Center() || s.Ball.Velocity != (geometry.Vector{}) {
		t.Errorf("ball not reset: %+v", s.Ball)
	}
	if s.Player1.Position != cfg.Player1.Start {
		t.Errorf("player 1 not reset: %v", s.Player1.Position)
	}
	if s.FrameCount != 1 {
		t.Errorf("kick-off reset the frame count")
	}
}

func TestFieldGeometry(t *testing.T) {
	cfg := config.Default()
	f := NewField(cfg)

	if f.LeftGoal.Position != (geometry.Point{X: 14, Y: 40}) || f.LeftGoal.Half != geometry.Left {
		t.Errorf("left goal = %+v", f.LeftGoal)
	}
	if f.RightGoal.Position != (geometry.Point{X: 106, Y: 40}) || f.RightGoal.Half != geometry.Right {
		t.Errorf("right goal = %+v", f.RightGoal)
	}

	tests := []struct {
		name   string
		ball   geometry.Point
		scorer int
		ok     bool
	}{
		{"center", geometry.Point{X: 60, Y: 40}, 0, false},
		{"left_mouth", geometry.Point{X: 16, Y: 40}, 0, false},
		{"left_goal", geometry.Point{X: 10, Y: 40}, 2, true},
		{"right_goal", geometry.Point{X: 110, Y: 42}, 1, true},
		{"behind_left_goal", geometry.Point{X: 3, Y: 40}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer, ok := f.GoalScored(tt.ball)
			if scorer != tt.scorer || ok != tt.ok {
				t.Errorf("GoalScored(%v) = %d, %v; expected %d, %v", tt.ball, scorer, ok, tt.scorer, tt.ok)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	cfg := config.Default()
	s := NewState(cfg)
	s.Score.Player1 = 3
	snap := s.Snapshot()

	s.Ball.Position.X = 0
	if snap.Ball.X != 60 || snap.Score.Player1 != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
}
