package draw

import (
	"fmt"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/game"
	"github.com/tomz197/goalball/internal/geometry"
)

// Palette (256-color indices).
const (
	ColorWall    Color = 244
	ColorGoal    Color = 255
	ColorBall    Color = 220
	ColorPlayer1 Color = 39
	ColorPlayer2 Color = 203
)

// Scene draws match snapshots onto a canvas. Everything but the moving
// bodies is fixed for the lifetime of a config.
type Scene struct {
	field        game.Field
	playerRadius float64
	ballRadius   float64
}

// NewScene prepares a scene for cfg.
func NewScene(cfg *config.Config) *Scene {
	return &Scene{
		field:        game.NewField(cfg),
		playerRadius: cfg.Player.Radius,
		ballRadius:   cfg.Ball.Radius,
	}
}

// NewCanvas returns a canvas whose logical space is the field.
func (sc *Scene) NewCanvas(termWidth, termHeight int) *Canvas {
	b := sc.field.Bounds
	return NewScaledCanvas(termWidth, termHeight, b.X.Hi, b.Y.Hi)
}

// Draw clears c and paints the field, both goals and the three bodies.
// Players are painted last so they stay visible when overlapping the ball.
func (sc *Scene) Draw(c *Canvas, snap game.Snapshot) {
	c.Clear()

	b := sc.field.Bounds
	c.StrokeRect(geometry.Point{X: b.X.Lo, Y: b.Y.Lo}, geometry.Point{X: b.X.Hi, Y: b.Y.Hi}, ColorWall)
	for _, goal := range sc.field.Goals() {
		c.FillArc(goal, ColorGoal)
	}

	c.FillCircle(geometry.Circle{Position: snap.Ball, Radius: sc.ballRadius}, ColorBall)
	c.FillCircle(geometry.Circle{Position: snap.Player1, Radius: sc.playerRadius}, ColorPlayer1)
	c.FillCircle(geometry.Circle{Position: snap.Player2, Radius: sc.playerRadius}, ColorPlayer2)
}

// ScoreLine formats the score for the HUD.
func ScoreLine(s game.Score) string {
	return fmt.Sprintf(" P1 %d : %d P2 ", s.Player1, s.Player2)
}

// DrawScore writes the score centered on the top row of c.
func DrawScore(cw *ChunkWriter, c *Canvas, s game.Score) {
	cw.WriteCentered(c.TerminalWidth()/2, 1, ScoreLine(s))
}
