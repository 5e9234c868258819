package draw

import (
	"io"
	"math"
	"strconv"

	"github.com/tomz197/geosteroids/internal/physics"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 24

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps world coordinates (y pointing up) onto terminal sub-pixels and only
// rewrites cells that changed since the previous Render.
type Canvas struct {
	termWidth      int    // Terminal columns used for rendering
	termHeight     int    // Terminal rows used for rendering
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set
	prev           []bool // pixels as of the last Render
	dirty          []bool // Per cell: overwritten by text, must be redrawn
	forceRedraw    bool

	// Scaling from world to pixel coordinates
	worldWidth  float64
	worldHeight float64
	scaleX      float64 // termWidth / worldWidth
	scaleY      float64 // (termHeight*2) / worldHeight
	camera      physics.Vector

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf  []byte
	polygonBuf []physics.Vector
}

// NewCanvas creates a canvas showing a worldWidth x worldHeight playfield on
// termWidth x termHeight terminal cells.
func NewCanvas(termWidth, termHeight int, worldWidth, worldHeight float64) *Canvas {
	c := &Canvas{
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the world size.
// A real size change forces a full redraw; the caller clears the terminal.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		subPixelHeight := termHeight * 2
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.prev = make([]bool, subPixelHeight*termWidth)
		c.dirty = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.forceRedraw = true
	}

	c.scaleX = float64(c.termWidth) / c.worldWidth
	c.scaleY = float64(c.subPixelHeight) / c.worldHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// SetCamera shifts everything drawn afterwards by -offset world units.
func (c *Canvas) SetCamera(offset physics.Vector) {
	c.camera = offset
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render paint every set cell from scratch.
// Call it after clearing the terminal.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty records that text was written over width cells starting at
// the 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.dirty[r*c.termWidth+x] = true
	}
}

// toPixel maps a world position to sub-pixel coordinates.
func (c *Canvas) toPixel(p physics.Vector) (px, py int) {
	x := p.X - c.camera.X
	y := c.worldHeight - (p.Y - c.camera.Y)
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// setPixel sets a pixel at sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetPoint sets the pixel under a world position.
func (c *Canvas) SetPoint(p physics.Vector) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in world space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 physics.Vector) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws the closed outline through points.
func (c *Canvas) DrawPolygon(points []physics.Vector) {
	if len(points) < 2 {
		return
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawCircle draws a circle outline approximated by a regular polygon.
func (c *Canvas) DrawCircle(center physics.Vector, radius float64) {
	if radius <= 0 {
		c.SetPoint(center)
		return
	}
	points := c.borrowPoints(circleSegments)
	for i := range points {
		points[i] = center.Add(physics.FromAngle(float64(i)*360/circleSegments, radius))
	}
	c.DrawPolygon(points)
}

// borrowPoints returns a reusable slice valid until the next call.
func (c *Canvas) borrowPoints(n int) []physics.Vector {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]physics.Vector, n)
	}
	return c.polygonBuf[:n]
}

// Render writes every changed cell to w using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			if c.forceRedraw {
				if !top && !bottom {
					continue // Terminal was cleared; nothing to erase
				}
			} else {
				unchanged := top == c.prev[topOffset+col] && bottom == c.prev[bottomOffset+col]
				if unchanged && !c.dirty[row*c.termWidth+col] {
					continue
				}
			}

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				ch = BlockEmpty
			}

			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
			buf = append(buf, 'H')
			buf = append(buf, string(ch)...)
		}
	}

	copy(c.prev, c.pixels)
	clear(c.dirty)
	c.forceRedraw = false
	c.renderBuf = buf

	w.Write(buf)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf []byte
	moveTo := func(row, col int) {
		buf = append(buf, "\033["...)
		buf = strconv.AppendInt(buf, int64(row), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(col), 10)
		buf = append(buf, 'H')
	}
	hline := func(row int, l, r string) {
		if hasH {
			moveTo(row, left)
			buf = append(buf, l...)
		} else {
			moveTo(row, c.offsetCol+1)
		}
		for range c.termWidth {
			buf = append(buf, "─"...)
		}
		if hasH {
			buf = append(buf, r...)
		}
	}

	if hasV {
		hline(top, "┌", "┐")
		hline(bottom, "└", "┘")
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			moveTo(row, left)
			buf = append(buf, "│"...)
			moveTo(row, right)
			buf = append(buf, "│"...)
		}
	}

	w.Write(buf)
}

// TerminalWidth returns the rendered column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the rendered row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// WorldToTerminal converts a world position to a 1-based canvas cell (col, row),
// ignoring the centering offset. Useful for placing text next to drawn objects.
func (c *Canvas) WorldToTerminal(p physics.Vector) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}

// TerminalToWorld converts a 1-based absolute terminal cell, as reported by
// mouse events, to the world position at the center of that cell. ok is false
// for cells outside the canvas.
func (c *Canvas) TerminalToWorld(col, row int) (p physics.Vector, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return physics.Vector{}, false
	}

	x := (float64(cx)+0.5)/c.scaleX + c.camera.X
	y := c.worldHeight - (float64(cy)*2+1)/c.scaleY + c.camera.Y
	return physics.Vec(x, y), true
}
