// Package draw renders the field to a terminal using half-block characters,
// which gives two square-ish sub-pixels per character cell.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/goalball/internal/geometry"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a 256-color palette index. Zero means empty.
type Color uint8

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	prev           []Color // Pixels as last rendered, for diffing
	dirty          []bool  // Cells overwritten by text: [row * termWidth + col]
	forceRedraw    bool

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prev = make([]Color, subPixelHeight*termWidth)
		c.dirty = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.forceRedraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty marks n cells starting at 1-based (col, row) as overwritten
// by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.dirty[row*c.termWidth+x] = true
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// At returns the color at terminal sub-pixel (x, y).
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// toLogical returns the logical coordinates of the center of sub-pixel (x, y).
func (c *Canvas) toLogical(x, y int) geometry.Point {
	return geometry.Point{
		X: (float64(x) + 0.5) / c.scaleX,
		Y: (float64(y) + 0.5) / c.scaleY,
	}
}

// Fill sets every sub-pixel whose center lies inside the logical box
// [lo, hi] and satisfies inside.
func (c *Canvas) Fill(lo, hi geometry.Point, col Color, inside func(p geometry.Point) bool) {
	x0 := max(int(math.Floor(lo.X*c.scaleX)), 0)
	x1 := min(int(math.Ceil(hi.X*c.scaleX)), c.termWidth-1)
	y0 := max(int(math.Floor(lo.Y*c.scaleY)), 0)
	y1 := min(int(math.Ceil(hi.Y*c.scaleY)), c.subPixelHeight-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(c.toLogical(x, y)) {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillCircle draws a solid disc.
func (c *Canvas) FillCircle(circle geometry.Circle, col Color) {
	r := geometry.Vector{X: circle.Radius, Y: circle.Radius}
	rr := circle.Radius * circle.Radius
	c.Fill(circle.Position.Sub(r), circle.Position.Add(r), col, func(p geometry.Point) bool {
		return geometry.LengthSquared(geometry.Diff(circle.Position, p)) <= rr
	})
}

// FillArc draws a goal's solid band.
func (c *Canvas) FillArc(arc geometry.SemicircleArc, col Color) {
	r := geometry.Vector{X: arc.Radius, Y: arc.Radius}
	outer := arc.Radius * arc.Radius
	inner := arc.InnerRadius() * arc.InnerRadius()
	c.Fill(arc.Position.Sub(r), arc.Position.Add(r), col, func(p geometry.Point) bool {
		d := geometry.LengthSquared(geometry.Diff(arc.Position, p))
		return d <= outer && d >= inner && arc.OnSolidSide(p)
	})
}

// StrokeRect outlines the logical rectangle [lo, hi] one sub-pixel thick.
func (c *Canvas) StrokeRect(lo, hi geometry.Point, col Color) {
	x0 := int(math.Floor(lo.X * c.scaleX))
	x1 := min(int(math.Ceil(hi.X*c.scaleX)), c.termWidth) - 1
	y0 := int(math.Floor(lo.Y * c.scaleY))
	y1 := min(int(math.Ceil(hi.Y*c.scaleY)), c.subPixelHeight) - 1

	for x := x0; x <= x1; x++ {
		c.setPixel(x, y0, col)
		c.setPixel(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		c.setPixel(x0, y, col)
		c.setPixel(x1, y, col)
	}
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// Render writes every cell that changed since the last Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	var lastFg, lastBg Color

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			dirty := c.dirty[row*c.termWidth+col]
			if !c.forceRedraw && !dirty && top == c.prev[topOffset+col] && bottom == c.prev[bottomOffset+col] {
				continue
			}

			ch, fg, bg := cell(top, bottom)
			c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			if fg != lastFg || bg != lastBg {
				c.setColors(fg, bg)
				lastFg, lastBg = fg, bg
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	c.renderBuf.WriteString("\033[0m")

	copy(c.prev, c.pixels)
	clear(c.dirty)
	c.forceRedraw = false

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// cell picks the character and colors showing top over bottom.
func cell(top, bottom Color) (ch rune, fg, bg Color) {
	switch {
	case top == 0 && bottom == 0:
		return ' ', 0, 0
	case top == bottom:
		return BlockFull, top, 0
	case bottom == 0:
		return BlockUpperHalf, top, 0
	case top == 0:
		return BlockLowerHalf, bottom, 0
	default:
		return BlockUpperHalf, top, bottom
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) setColors(fg, bg Color) {
	c.renderBuf.WriteString("\033[0m")
	if fg != 0 {
		c.renderBuf.WriteString("\033[38;5;")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(fg), 10))
		c.renderBuf.WriteByte('m')
	}
	if bg != 0 {
		c.renderBuf.WriteString("\033[48;5;")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(bg), 10))
		c.renderBuf.WriteByte('m')
	}
}
