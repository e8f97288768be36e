// Package config centralizes all tunable game parameters.
//
// Positions and sizes are in logical field units. Velocities are in units
// per tick; accelerations and drag are per second and get scaled by the
// frame's elapsed time before use.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/input"
	"github.com/tomz197/goalball/internal/motion"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is read-only once the game starts.
type Config struct {
	Field   FieldConfig  `toml:"field"`
	Player  PlayerConfig `toml:"player"`
	Player1 SeatConfig   `toml:"player1"`
	Player2 SeatConfig   `toml:"player2"`
	Ball    BallConfig   `toml:"ball"`
	Goal    GoalConfig   `toml:"goal"`
	Input   InputConfig  `toml:"input"`
	Loop    LoopConfig   `toml:"loop"`
	Server  ServerConfig `toml:"server"`
	Debug   DebugConfig  `toml:"debug"`
}

// FieldConfig describes the walled playing area.
type FieldConfig struct {
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"` // in canvas sub-pixels, so half as many terminal rows
	WallRestitution float64 `toml:"wall_restitution"`
}

// PlayerConfig applies to both players.
type PlayerConfig struct {
	Radius              float64 `toml:"radius"`
	Acceleration        float64 `toml:"acceleration"`
	ReverseAcceleration float64 `toml:"reverse_acceleration"`
	Drag                float64 `toml:"drag"`
	MaxSpeed            float64 `toml:"max_speed"`
	Restitution         float64 `toml:"restitution"`
	Mass                float64 `toml:"mass"`
}

// SeatConfig is per-player: where they kick off and which keys they use.
type SeatConfig struct {
	Start geometry.Point   `toml:"start"`
	Keys  input.KeyMapping `toml:"keys"`
}

// BallConfig describes the ball. The ball is never steered, so it has no
// acceleration.
type BallConfig struct {
	Radius      float64 `toml:"radius"`
	Drag        float64 `toml:"drag"`
	MaxSpeed    float64 `toml:"max_speed"`
	Restitution float64 `toml:"restitution"`
	Mass        float64 `toml:"mass"`
}

// GoalConfig describes both goals. They sit OffsetX either side of the
// field center.
type GoalConfig struct {
	Radius      float64 `toml:"radius"`
	ArcWidth    float64 `toml:"arc_width"`
	OffsetX     float64 `toml:"offset_x"`
	Restitution float64 `toml:"restitution"`
}

// InputConfig tunes key handling.
type InputConfig struct {
	// Hold keeps a key down this long after its last key-down, since
	// terminals never report key-up.
	Hold time.Duration `toml:"hold"`
}

// LoopConfig controls frame pacing.
type LoopConfig struct {
	TickRate int `toml:"tick_rate"` // ticks per second
}

// ServerConfig applies to SSH sessions.
type ServerConfig struct {
	InactivityWarn       time.Duration `toml:"inactivity_warn"`
	InactivityDisconnect time.Duration `toml:"inactivity_disconnect"`
	ShutdownDisplay      time.Duration `toml:"shutdown_display"` // how long the shutdown notice shows before disconnecting
	MaxTermWidth         int           `toml:"max_term_width"`
	MaxTermHeight        int           `toml:"max_term_height"`
}

// DebugConfig holds switches useful while tuning.
type DebugConfig struct {
	LogFPS       bool `toml:"log_fps"`
	OnlyDrawOnce bool `toml:"only_draw_once"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			Width:           120,
			Height:          80,
			WallRestitution: 0.8,
		},
		Player: PlayerConfig{
			Radius:              4,
			Acceleration:        1.5,
			ReverseAcceleration: 3,
			Drag:                0.75,
			MaxSpeed:            1.2,
			Restitution:         0.7,
			Mass:                4,
		},
		Player1: SeatConfig{
			Start: geometry.Point{X: 36, Y: 40},
			Keys:  input.KeyMapping{Left: "a", Up: "w", Right: "d", Down: "s"},
		},
		Player2: SeatConfig{
			Start: geometry.Point{X: 84, Y: 40},
			Keys: input.KeyMapping{
				Left:  input.KeyArrowLeft,
				Up:    input.KeyArrowUp,
				Right: input.KeyArrowRight,
				Down:  input.KeyArrowDown,
			},
		},
		Ball: BallConfig{
			Radius:      2.5,
			Drag:        0.3,
			MaxSpeed:    2.5,
			Restitution: 0.9,
			Mass:        1,
		},
		Goal: GoalConfig{
			Radius:      12,
			ArcWidth:    0.25,
			OffsetX:     46,
			Restitution: 0.8,
		},
		Input: InputConfig{Hold: input.DefaultHoldDuration},
		Loop:  LoopConfig{TickRate: 60},
		Server: ServerConfig{
			InactivityWarn:       90 * time.Second,
			InactivityDisconnect: 120 * time.Second,
			ShutdownDisplay:      10 * time.Second,
			MaxTermWidth:         240,
			MaxTermHeight:        80,
		},
	}
}

// Load returns Default overlaid with the TOML file at path. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: %s: unknown keys %v", ErrInvalid, path, undecoded)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the physics relies on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0, "field size %vx%v", c.Field.Width, c.Field.Height)
	check(c.Player.Radius >= 0, "player radius %v < 0", c.Player.Radius)
	check(c.Ball.Radius >= 0, "ball radius %v < 0", c.Ball.Radius)
	check(c.Goal.Radius >= 0, "goal radius %v < 0", c.Goal.Radius)
	check(c.Goal.ArcWidth >= 0 && c.Goal.ArcWidth < 1, "goal arc width %v outside [0, 1)", c.Goal.ArcWidth)
	check(c.Player.Mass > 0, "player mass %v <= 0", c.Player.Mass)
	check(c.Ball.Mass > 0, "ball mass %v <= 0", c.Ball.Mass)
	check(c.Player.MaxSpeed >= 0 && c.Ball.MaxSpeed >= 0, "negative max speed")
	check(c.Player.Acceleration >= 0 && c.Player.ReverseAcceleration >= 0, "negative player acceleration")
	check(c.Player.Drag >= 0 && c.Ball.Drag >= 0, "negative drag")
	check(c.Loop.TickRate > 0, "tick rate %d <= 0", c.Loop.TickRate)
	check(c.Server.InactivityWarn <= c.Server.InactivityDisconnect,
		"inactivity warning %v after disconnect %v", c.Server.InactivityWarn, c.Server.InactivityDisconnect)
	check(c.Server.MaxTermWidth > 0 && c.Server.MaxTermHeight > 0,
		"max terminal size %dx%d", c.Server.MaxTermWidth, c.Server.MaxTermHeight)

	for name, r := range map[string]float64{
		"player": c.Player.Restitution,
		"ball":   c.Ball.Restitution,
		"goal":   c.Goal.Restitution,
		"wall":   c.Field.WallRestitution,
	} {
		check(r >= 0 && r <= 1, "%s restitution %v outside [0, 1]", name, r)
	}

	for name, keys := range map[string]input.KeyMapping{"player1": c.Player1.Keys, "player2": c.Player2.Keys} {
		for _, k := range keys.Keys() {
			check(k != "", "%s has an unbound direction", name)
		}
	}

	return errors.Join(errs...)
}

// PlayerRates returns the players' velocity tunables, per second.
func (c *Config) PlayerRates() motion.Rates {
	return motion.Rates{
		MaxSpeed:            c.Player.MaxSpeed,
		Acceleration:        c.Player.Acceleration,
		ReverseAcceleration: c.Player.ReverseAcceleration,
		Drag:                c.Player.Drag,
	}
}

// BallRates returns the ball's velocity tunables, per second.
func (c *Config) BallRates() motion.Rates {
	return motion.Rates{MaxSpeed: c.Ball.MaxSpeed, Drag: c.Ball.Drag}
}

// TickTime returns the target duration of one tick.
func (c *Config) TickTime() time.Duration {
	return time.Second / time.Duration(c.Loop.TickRate)
}
