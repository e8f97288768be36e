package server

import (
	"github.com/tomz197/goalball/internal/game"
)

// Seat identifies which player a client controls.
type Seat int

const (
	Spectator Seat = iota // watching, waiting for a free seat
	Seat1                 // player 1, left half, defends the left goal
	Seat2                 // player 2, right half
)

func (s Seat) String() string {
	switch s {
	case Seat1:
		return "player 1"
	case Seat2:
		return "player 2"
	default:
		return "spectator"
	}
}

// MatchSnapshot is an immutable view of the match for rendering.
type MatchSnapshot struct {
	game.Snapshot
	Names   [2]string // usernames in seats 1 and 2, empty when free
	Clients int       // everyone connected, spectators included
}

// Ready reports whether both seats are taken.
func (m *MatchSnapshot) Ready() bool {
	return m.Names[0] != "" && m.Names[1] != ""
}
