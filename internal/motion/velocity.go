// Package motion updates body velocities from held keys, acceleration,
// drag and a speed cap.
package motion

import (
	"math"

	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/input"
)

// KeyHistory answers which of two keys was pressed more recently while
// still held. input.Snapshot implements it.
type KeyHistory interface {
	LatestPressed(a, b input.Key) (input.Key, bool)
}

var _ KeyHistory = input.Snapshot{}

// Rates are the tunables applied to a velocity each tick.
type Rates struct {
	MaxSpeed            float64 // cap on the velocity's magnitude
	Acceleration        float64 // change while a direction key is held
	ReverseAcceleration float64 // change while braking against current motion
	Drag                float64 // per-axis decay while no key is held
}

// Scaled returns r with the per-second rates multiplied by dt seconds.
// MaxSpeed is not a rate and is left alone.
func (r Rates) Scaled(dt float64) Rates {
	return Rates{
		MaxSpeed:            r.MaxSpeed,
		Acceleration:        r.Acceleration * dt,
		ReverseAcceleration: r.ReverseAcceleration * dt,
		Drag:                r.Drag * dt,
	}
}

// Controls links a body to the keys that steer it.
type Controls struct {
	Keys    KeyHistory
	Mapping input.KeyMapping
}

// UpdateVelocity returns current updated for one tick. A nil controls
// (an unsteered body such as the ball) only ever drags.
//
// When exactly one axis has no key held, drag pulls that axis toward zero.
// When neither has, drag of 2*Drag is applied to the speed instead, so the
// direction of travel is preserved rather than bending toward an axis.
func UpdateVelocity(current geometry.Vector, rates Rates, controls *Controls) geometry.Vector {
	var xKeys, yKeys *axisKeys
	if controls != nil {
		m := controls.Mapping
		xKeys = &axisKeys{keys: controls.Keys, negative: m.Left, positive: m.Right}
		// Up moves the body up the screen, which is negative y.
		yKeys = &axisKeys{keys: controls.Keys, negative: m.Up, positive: m.Down}
	}

	x, xNoChange := xKeys.update(current.X, rates)
	y, yNoChange := yKeys.update(current.Y, rates)

	switch {
	case xNoChange && !yNoChange:
		x = dragComponent(x, rates.Drag)
	case yNoChange && !xNoChange:
		y = dragComponent(y, rates.Drag)
	case xNoChange && yNoChange:
		v := geometry.Vector{X: x, Y: y}
		if speed := geometry.Length(v); speed > 0 {
			newSpeed := math.Max(0, speed-rates.Drag*2)
			v = geometry.MulVS(v, newSpeed/speed)
			x, y = v.X, v.Y
		}
	}

	v := geometry.Vector{X: x, Y: y}
	if speed := geometry.Length(v); speed > rates.MaxSpeed {
		v = geometry.MulVS(v, rates.MaxSpeed/speed)
	}
	return v
}

// UpdateComponentSpeed updates one velocity component from the most
// recently pressed of its two direction keys. Accelerating against the
// current motion uses reverseAccel. If neither key is held (or keys is
// nil) speed is returned unchanged with noChange set.
func UpdateComponentSpeed(
	speed, accel, reverseAccel float64,
	keys KeyHistory,
	negative, positive input.Key,
) (newSpeed float64, noChange bool) {
	if keys == nil {
		return speed, true
	}

	pressed, ok := keys.LatestPressed(negative, positive)
	switch {
	case !ok:
		return speed, true
	case pressed == negative:
		if speed > 0 {
			return speed - reverseAccel, false
		}
		return speed - accel, false
	default:
		if speed < 0 {
			return speed + reverseAccel, false
		}
		return speed + accel, false
	}
}

type axisKeys struct {
	keys               KeyHistory
	negative, positive input.Key
}

func (a *axisKeys) update(speed float64, rates Rates) (float64, bool) {
	if a == nil {
		return speed, true
	}
	return UpdateComponentSpeed(speed, rates.Acceleration, rates.ReverseAcceleration, a.keys, a.negative, a.positive)
}

// dragComponent moves v toward zero by drag without crossing it.
func dragComponent(v, drag float64) float64 {
	switch {
	case v > 0:
		return math.Max(0, v-drag)
	case v < 0:
		return math.Min(0, v+drag)
	default:
		return 0
	}
}
