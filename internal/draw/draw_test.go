package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/goalball/internal/config"
	"github.com/tomz197/goalball/internal/game"
	"github.com/tomz197/goalball/internal/geometry"
)

// newCanvas maps one logical unit to one sub-pixel.
func newCanvas(w, h int) *Canvas {
	return NewScaledCanvas(w, h, float64(w), float64(h*2))
}

func TestFillCircle(t *testing.T) {
	c := newCanvas(20, 10)
	c.FillCircle(geometry.Circle{Position: geometry.Point{X: 10, Y: 10}, Radius: 3}, ColorBall)

	if got := c.At(10, 10); got != ColorBall {
		t.Errorf("center = %d, want %d", got, ColorBall)
	}
	if got := c.At(14, 10); got != 0 {
		t.Errorf("outside = %d, want 0", got)
	}
	if got := c.At(0, 0); got != 0 {
		t.Errorf("corner = %d, want 0", got)
	}
}

func TestFillCircleClipsAtEdges(t *testing.T) {
	c := newCanvas(10, 5)
	// Must not panic.
	c.FillCircle(geometry.Circle{Position: geometry.Point{X: 0, Y: 0}, Radius: 4}, ColorBall)
	if got := c.At(0, 0); got != ColorBall {
		t.Errorf("At(0,0) = %d, want %d", got, ColorBall)
	}
}

func TestFillArcOnlySolidSide(t *testing.T) {
	c := newCanvas(40, 20)
	arc := geometry.SemicircleArc{
		Circle:   geometry.Circle{Position: geometry.Point{X: 20, Y: 20}, Radius: 10},
		ArcWidth: 0.3,
		Half:     geometry.Left,
	}
	c.FillArc(arc, ColorGoal)

	tests := []struct {
		name string
		x, y int
		want Color
	}{
		{"left band", 11, 20, ColorGoal},
		{"right band", 28, 20, 0},
		{"mouth", 17, 20, 0},
		{"outside", 5, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		top, bottom Color
		ch          rune
		fg, bg      Color
	}{
		{0, 0, ' ', 0, 0},
		{5, 5, BlockFull, 5, 0},
		{5, 0, BlockUpperHalf, 5, 0},
		{0, 7, BlockLowerHalf, 7, 0},
		{5, 7, BlockUpperHalf, 5, 7},
	}
	for _, tt := range tests {
		ch, fg, bg := cell(tt.top, tt.bottom)
		if ch != tt.ch || fg != tt.fg || bg != tt.bg {
			t.Errorf("cell(%d,%d) = %q,%d,%d, want %q,%d,%d", tt.top, tt.bottom, ch, fg, bg, tt.ch, tt.fg, tt.bg)
		}
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := newCanvas(10, 5)
	c.FillCircle(geometry.Circle{Position: geometry.Point{X: 5, Y: 5}, Radius: 1}, ColorPlayer1)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(first.String(), BlockFull) && !strings.ContainsRune(first.String(), BlockUpperHalf) {
		t.Errorf("first render has no blocks: %q", first.String())
	}

	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatal(err)
	}
	if second.String() != "\033[0m" {
		t.Errorf("unchanged render = %q, want only a reset", second.String())
	}

	c.ForceRedraw()
	var third bytes.Buffer
	if err := c.Render(&third); err != nil {
		t.Fatal(err)
	}
	if third.String() != first.String() {
		t.Errorf("forced render differs from the first full render")
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(3, 4, "hi")
	big := strings.Repeat("x", maxChunkSize*2+7)
	cw.WriteString(big)

	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[5;5Hhi" + big
	if out.String() != want {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(want))
	}
	if cw.Len() != 0 {
		t.Errorf("buffer not reset: %d bytes", cw.Len())
	}
}

func TestSceneDraw(t *testing.T) {
	cfg := config.Default()
	sc := NewScene(cfg)
	c := sc.NewCanvas(int(cfg.Field.Width), int(cfg.Field.Height)/2)

	snap := game.NewState(cfg).Snapshot()
	sc.Draw(c, snap)

	px := func(p geometry.Point) Color { return c.At(int(p.X), int(p.Y)) }
	if got := px(snap.Player1); got != ColorPlayer1 {
		t.Errorf("player 1 pixel = %d", got)
	}
	if got := px(snap.Player2); got != ColorPlayer2 {
		t.Errorf("player 2 pixel = %d", got)
	}
	if got := px(snap.Ball); got != ColorBall {
		t.Errorf("ball pixel = %d", got)
	}
	if got := c.At(0, 0); got != ColorWall {
		t.Errorf("wall pixel = %d", got)
	}
	// Back of the left goal: 12 units left of its center at x=14.
	if got := c.At(3, 40); got != ColorGoal {
		t.Errorf("goal pixel = %d", got)
	}
}

func TestScoreLine(t *testing.T) {
	if got := ScoreLine(game.Score{Player1: 2, Player2: 10}); got != " P1 2 : 10 P2 " {
		t.Errorf("ScoreLine = %q", got)
	}
}

func TestMarkTextDirtyRepaints(t *testing.T) {
	c := newCanvas(10, 5)
	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}

	c.MarkTextDirty(3, 2, 2)
	c.MarkTextDirty(9, 9, 4) // off screen, ignored
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if want := "\033[2;3H \033[2;4H \033[0m"; out.String() != want {
		t.Errorf("render = %q, want %q", out.String(), want)
	}
}
