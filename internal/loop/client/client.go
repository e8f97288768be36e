// Package client runs one SSH session: it forwards held keys to the shared
// server and renders the server's snapshots.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/draw"
	"github.com/tomz197/goalball/internal/input"
	"github.com/tomz197/goalball/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	cfg          *config.Config
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	scene        *draw.Scene
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	keys         *input.Tracker
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(cfg *config.Config, gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	scene := draw.NewScene(cfg)
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(cfg.Server, termWidth, termHeight)
	canvas := scene.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		cfg:          cfg,
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		state:        NewClientState(),
		scene:        scene,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		keys:         input.NewTracker(cfg.Input.Hold),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	frameTime := c.cfg.TickTime()
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processServerEvents()
		c.updateScreen()
		c.updateTimers()

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends held keys to the server.
func (c *Client) processInput(now time.Time) {
	frame := c.inputStream.ReadInto(c.keys, now)

	if len(frame.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if idle := now.Sub(c.lastInput); idle > c.cfg.Server.InactivityDisconnect {
		c.state.Running = false
	} else if idle > c.cfg.Server.InactivityWarn {
		c.state.isInactive = true
	}

	if frame.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}

	if c.state.GameState == GameStatePlaying {
		c.server.SendInput(c.handle.ID, c.keys.Snapshot())
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventSeated:
				c.keys.Reset()
				c.state.Seat = event.Seat
				if c.state.GameState != GameStateShutdown {
					c.state.GameState = GameStatePlaying
				}
			case server.EventGoal:
				c.keys.Reset()
				c.state.lastScorer = event.Scorer
				c.state.goalTimer = goalBannerTime
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = c.cfg.Server.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(c.cfg.Server, termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

func (c *Client) updateTimers() {
	countdown(&c.state.goalTimer, c.state.delta)
	if c.state.GameState == GameStateShutdown {
		countdown(&c.state.shutdownTimer, c.state.delta)
		if c.state.shutdownTimer == 0 {
			c.state.Running = false
		}
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(cfg config.ServerConfig, termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, cfg.MaxTermWidth)
	renderHeight = min(termHeight, cfg.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
