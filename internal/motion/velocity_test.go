package motion

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/input"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

var wasd = input.KeyMapping{Left: "a", Up: "w", Right: "d", Down: "s"}

func held(keys ...input.Key) input.Snapshot {
	tr := input.NewTracker(0)
	now := time.Now()
	for _, k := range keys {
		tr.Press(k, now)
	}
	return tr.Snapshot()
}

func TestUpdateComponentSpeed(t *testing.T) {
	const accel, reverse = 1.0, 3.0

	tests := []struct {
		name         string
		speed        float64
		keys         KeyHistory
		want         float64
		wantNoChange bool
	}{
		{"no_keys", 2, held(), 2, true},
		{"nil_keys", -2, nil, -2, true},
		{"unrelated_key", 2, held("w"), 2, true},
		{"positive_from_rest", 0, held("d"), 1, false},
		{"positive_continuing", 2, held("d"), 3, false},
		{"positive_braking", -2, held("d"), 1, false},
		{"negative_from_rest", 0, held("a"), -1, false},
		{"negative_braking", 2, held("a"), -1, false},
		{"latest_wins_negative", 0, held("d", "a"), -1, false},
		{"latest_wins_positive", 0, held("a", "d"), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, noChange := UpdateComponentSpeed(tt.speed, accel, reverse, tt.keys, "a", "d")
			if got != tt.want || noChange != tt.wantNoChange {
				t.Errorf("UpdateComponentSpeed = %v, %v; expected %v, %v", got, noChange, tt.want, tt.wantNoChange)
			}
		})
	}
}

func TestUpdateVelocityNeverAcceleratesWithoutKeys(t *testing.T) {
	rates := Rates{MaxSpeed: 10, Acceleration: 1, ReverseAcceleration: 2, Drag: 0.1}
	speeds := []geometry.Vector{{X: 3}, {Y: -2}, {X: 1, Y: 1}, {X: -4, Y: 0.5}, {}}

	for _, v := range speeds {
		for _, controls := range []*Controls{nil, {Keys: held(), Mapping: wasd}} {
			got := UpdateVelocity(v, rates, controls)
			if geometry.Length(got) > geometry.Length(v) {
				t.Errorf("UpdateVelocity(%v) = %v sped up with no keys held", v, got)
			}
		}
	}
}

func TestUpdateVelocityVectorDragPreservesDirection(t *testing.T) {
	rates := Rates{MaxSpeed: 100, Drag: 0.5}
	v := geometry.Vector{X: 3, Y: 4}

	got := UpdateVelocity(v, rates, nil)

	if !approx(geometry.Length(got), 4) {
		t.Errorf("speed = %v, expected 4 (5 - 2*drag)", geometry.Length(got))
	}
	if !approx(got.X/got.Y, 0.75) {
		t.Errorf("direction changed: %v", got)
	}
}

func TestUpdateVelocityVectorDragStopsAtZero(t *testing.T) {
	got := UpdateVelocity(geometry.Vector{X: 0.3, Y: -0.4}, Rates{MaxSpeed: 1, Drag: 1}, nil)
	if got != (geometry.Vector{}) {
		t.Errorf("UpdateVelocity = %v, expected zero", got)
	}
}

func TestUpdateVelocitySingleAxisDrag(t *testing.T) {
	rates := Rates{MaxSpeed: 100, Acceleration: 1, ReverseAcceleration: 1, Drag: 0.5}

	t.Run("drags_idle_y", func(t *testing.T) {
		got := UpdateVelocity(geometry.Vector{X: 2, Y: 3}, rates, &Controls{Keys: held("d"), Mapping: wasd})
		if got.X != 3 || got.Y != 2.5 {
			t.Errorf("UpdateVelocity = %v, expected (3, 2.5)", got)
		}
	})

	t.Run("drags_idle_x_without_crossing_zero", func(t *testing.T) {
		got := UpdateVelocity(geometry.Vector{X: -0.2, Y: 1}, rates, &Controls{Keys: held("w"), Mapping: wasd})
		if got.X != 0 || got.Y != 0 {
			t.Errorf("UpdateVelocity = %v, expected (0, 0)", got)
		}
	})
}

func TestUpdateVelocityUpIsNegativeY(t *testing.T) {
	rates := Rates{MaxSpeed: 100, Acceleration: 1, ReverseAcceleration: 1}
	got := UpdateVelocity(geometry.Vector{}, rates, &Controls{Keys: held("w", "a"), Mapping: wasd})
	if got.X != -1 || got.Y != -1 {
		t.Errorf("UpdateVelocity = %v, expected (-1, -1)", got)
	}
}

func TestUpdateVelocityClampsSpeed(t *testing.T) {
	rates := Rates{MaxSpeed: 1, Acceleration: 5, ReverseAcceleration: 5}
	got := UpdateVelocity(geometry.Vector{}, rates, &Controls{Keys: held("s", "d"), Mapping: wasd})

	if !approx(geometry.Length(got), 1) {
		t.Errorf("speed = %v, expected 1", geometry.Length(got))
	}
	if !approx(got.X, got.Y) {
		t.Errorf("clamp changed direction: %v", got)
	}
}

func TestRatesScaled(t *testing.T) {
	r := Rates{MaxSpeed: 2, Acceleration: 10, ReverseAcceleration: 20, Drag: 4}.Scaled(0.5)
	want := Rates{MaxSpeed: 2, Acceleration: 5, ReverseAcceleration: 10, Drag: 2}
	if r != want {
		t.Errorf("Scaled = %+v, expected %+v", r, want)
	}
}
