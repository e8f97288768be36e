package client

import (
	"time"

	"github.com/tomz197/goalball/internal/loop/server"
)

// GameState represents the current phase for a client.
type GameState int

const (
	GameStateWaiting  GameState = iota // Spectating until a seat frees up
	GameStatePlaying                   // Seated and steering
	GameStateShutdown                  // Server is shutting down
)

// goalBannerTime is how long the goal message stays up.
const goalBannerTime = 2 * time.Second

// ClientState holds per-connection state. Each client has its own instance.
type ClientState struct {
	GameState     GameState
	Seat          server.Seat
	Running       bool
	delta         time.Duration // Frame delta time
	shutdownTimer time.Duration // Countdown before auto-disconnect on shutdown
	goalTimer     time.Duration // Remaining goal banner time
	lastScorer    int
	isInactive    bool

	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateWaiting,
		Running:   true,
	}
}

func countdown(d *time.Duration, by time.Duration) {
	*d = max(*d-by, 0)
}
