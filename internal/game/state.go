// Package game holds the match state and advances it one tick at a time.
package game

import (
	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/geometry"
)

// Body is the moving part of an entity.
type Body struct {
	Position geometry.Point
	Velocity geometry.Vector
}

// Score counts goals per player.
type Score struct {
	Player1 int
	Player2 int
}

// State is the single mutable game state. It is owned by one goroutine (the
// local loop or the server) and mutated in place by Step.
type State struct {
	FrameCount             uint64
	PreviousFrameTimestamp float64 // seconds
	CurrentFrameTimestamp  float64 // seconds

	Player1 Body
	Player2 Body
	Ball    Body

	Score Score
}

// NewState creates the kick-off state for cfg.
func NewState(cfg *config.Config) *State {
	s := &State{}
	s.KickOff(cfg)
	return s
}

// KickOff puts every body back at its starting position, at rest.
// Score and frame timing are kept.
func (s *State) KickOff(cfg *config.Config) {
	s.Player1 = Body{Position: cfg.Player1.Start}
	s.Player2 = Body{Position: cfg.Player2.Start}
	s.Ball = Body{Position: NewField(cfg).Center()}
}

// Delta returns the seconds elapsed between the last two frames.
func (s *State) Delta() float64 {
	return s.CurrentFrameTimestamp - s.PreviousFrameTimestamp
}

// advance starts a new frame at now (seconds).
func (s *State) advance(now float64) {
	s.FrameCount++
	s.PreviousFrameTimestamp = s.CurrentFrameTimestamp
	s.CurrentFrameTimestamp = now
}

// Snapshot is an immutable copy of State for renderers.
type Snapshot struct {
	FrameCount uint64
	Player1    geometry.Point
	Player2    geometry.Point
	Ball       geometry.Point
	Score      Score
}

// Snapshot copies the positions and score.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		FrameCount: s.FrameCount,
		Player1:    s.Player1.Position,
		Player2:    s.Player2.Position,
		Ball:       s.Ball.Position,
		Score:      s.Score,
	}
}
