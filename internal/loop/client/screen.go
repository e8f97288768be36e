package client

import (
	"fmt"
	"time"

	"github.com/tomz197/goalball/internal/draw"
	"github.com/tomz197/goalball/internal/geometry"
	"github.com/tomz197/goalball/internal/loop/server"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	snapshot := c.server.GetSnapshot()
	c.scene.Draw(c.canvas, snapshot.Snapshot)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	c.drawPlayerNames(snapshot)
	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// text writes s centered on centerCol and has the canvas repaint the cells
// underneath on the next frame.
func (c *Client) text(centerCol, row int, s string) {
	col := max(centerCol-len(s)/2, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len(s))
}

// drawUI draws the overlay for the current phase.
func (c *Client) drawUI(snapshot *server.MatchSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	draw.DrawScore(c.chunkWriter, c.canvas, snapshot.Score)

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen(centerX, centerY)
		return
	case c.state.isInactive:
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	if c.state.goalTimer > 0 {
		c.text(centerX, centerY-4, fmt.Sprintf("GOAL! Player %d scores", c.state.lastScorer))
	}
	c.text(centerX, termHeight, statusLine(c.state, snapshot))
}

// statusLine describes the client's seat, padded so shorter lines overwrite
// longer ones.
func statusLine(state *ClientState, snapshot *server.MatchSnapshot) string {
	var s string
	switch {
	case state.GameState != GameStatePlaying:
		s = fmt.Sprintf("Watching, waiting for a free seat (%d connected)  Q quits", snapshot.Clients)
	case !snapshot.Ready():
		s = fmt.Sprintf("You are %s, waiting for an opponent  Q quits", state.Seat)
	default:
		s = fmt.Sprintf("You are %s  WASD or arrows move  Q quits", state.Seat)
	}
	return fmt.Sprintf("%-64s", s)
}

// drawPlayerNames draws usernames above the seated players.
func (c *Client) drawPlayerNames(snapshot *server.MatchSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	radius := c.cfg.Player.Radius

	for i, pos := range [2]geometry.Point{snapshot.Player1, snapshot.Player2} {
		name := snapshot.Names[i]
		if name == "" {
			continue
		}
		col, row := c.canvas.LogicalToTerminal(pos.X, pos.Y-radius-2)
		col -= len(name) / 2
		if row < 2 || row > termHeight || col < 1 || col+len(name) > termWidth {
			continue
		}
		c.chunkWriter.WriteAt(col, row, name)
		c.canvas.MarkTextDirty(col, row, len(name))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	left := c.cfg.Server.InactivityDisconnect - time.Since(c.lastInput)
	c.text(centerX, centerY-2, "INACTIVITY WARNING")
	c.text(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds())))
	c.text(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.text(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.text(centerX, centerY-1, "The server is restarting for maintenance.")
	c.text(centerX, centerY, "Please reconnect in a moment.")
	c.text(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer.Seconds())+1))
	c.text(centerX, centerY+4, "Press Q to disconnect now")
}
