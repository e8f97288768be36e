// Package loop runs a local match: both players share one keyboard.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/draw"
	"github.com/tomz197/goalball/internal/game"
	"github.com/tomz197/goalball/internal/input"
)

// Options configures Run.
type Options struct {
	Config       *config.Config
	Logger       *log.Logger // nil discards logs
	TermSizeFunc draw.TermSizeFunc
}

// Run starts the local loop with the standard Input → Update → Draw cycle.
// It returns when 'q' is pressed or the input ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	state := game.NewState(cfg)
	scene := draw.NewScene(cfg)
	stream := input.StartStream(r)
	keys := input.NewTracker(cfg.Input.Hold)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	termWidth, termHeight, _ := termSize()
	canvas := scene.NewCanvas(termWidth, termHeight)
	out := draw.NewChunkWriter(w, 0, 0)

	var fps *FPSMeter
	if cfg.Debug.LogFPS {
		fps = NewFPSMeter(logger, "local", time.Now())
	}

	start := time.Now()
	tick := cfg.TickTime()

	for {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		frame := stream.ReadInto(keys, frameStart)
		if frame.Quit || stream.Closed() {
			break
		}
		held := keys.Snapshot()

		// ===== UPDATE PHASE =====
		ev := game.Step(cfg, state, frameStart.Sub(start).Seconds(), game.Inputs{Player1: held, Player2: held})
		if ev.Goal {
			logger.Info("goal", "scorer", ev.Scorer, "p1", state.Score.Player1, "p2", state.Score.Player2)
			keys.Reset()
		}

		if width, height, err := termSize(); err == nil &&
			(width != canvas.TerminalWidth() || height != canvas.TerminalHeight()) {
			draw.ClearScreen(out)
			canvas.Resize(width, height)
		}

		// ===== DRAW PHASE =====
		if err := drawFrame(out, canvas, scene, state.Snapshot()); err != nil {
			return err
		}
		fps.Tick(time.Now())

		if cfg.Debug.OnlyDrawOnce {
			logger.Debug("single frame drawn, stopping")
			break
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < tick {
			time.Sleep(tick - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

func drawFrame(out *draw.ChunkWriter, canvas *draw.Canvas, scene *draw.Scene, snap game.Snapshot) error {
	scene.Draw(canvas, snap)
	if err := canvas.Render(out); err != nil {
		return err
	}
	draw.DrawScore(out, canvas, snap.Score)
	return out.Flush()
}
