package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is a grid of styled character cells with a depth buffer. Depth
// is distance from the camera; nearer writes win.
type Canvas struct {
	width  int
	height int
	cells  []Cell
	depth  []float64
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		depth:  make([]float64, width*height),
	}
	c.Clear()
	return c
}

// Clear resets every cell to a blank at infinite depth.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
		c.depth[i] = math.Inf(1)
	}
}

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, false
	}
	return y*c.width + x, true
}

// Set writes a cell regardless of depth. A style without a background
// keeps the background already in the cell.
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if i, ok := c.index(x, y); ok {
		c.cells[i] = Cell{Char: char, Style: keepBackground(c.cells[i].Style, style)}
	}
}

// Plot writes a cell if depth is nearer than what the cell already holds.
func (c *Canvas) Plot(x, y int, depth float64, char rune, style tcell.Style) bool {
	i, ok := c.index(x, y)
	if !ok || depth >= c.depth[i] {
		return false
	}
	c.depth[i] = depth
	c.cells[i] = Cell{Char: char, Style: keepBackground(c.cells[i].Style, style)}
	return true
}

// Fill paints a background at depth without drawing a character.
func (c *Canvas) Fill(x, y int, depth float64, style tcell.Style) {
	if i, ok := c.index(x, y); ok && depth < c.depth[i] {
		c.depth[i] = depth
		c.cells[i] = Cell{Char: ' ', Style: style}
	}
}

// Depth returns the depth at a cell, +Inf when empty or off canvas.
func (c *Canvas) Depth(x, y int) float64 {
	if i, ok := c.index(x, y); ok {
		return c.depth[i]
	}
	return math.Inf(1)
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if i, ok := c.index(x, y); ok {
		return c.cells[i]
	}
	return blank
}

// DrawText writes text starting at (x, y), advancing by each rune's
// display width. It returns the number of columns used.
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		c.Set(col, y, r, style)
		w := runewidth.RuneWidth(r)
		if w == 2 {
			c.Set(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// DrawLine draws from (x0, y0) to (x1, y1) with Bresenham's algorithm,
// interpolating depth between the end points.
func (c *Canvas) DrawLine(x0, y0 int, d0 float64, x1, y1 int, d1 float64, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	steps := max(dx, dy)
	err := dx - dy

	for i := 0; ; i++ {
		d := d0
		if steps > 0 {
			d = d0 + (d1-d0)*float64(i)/float64(steps)
		}
		c.Plot(x0, y0, d, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.Char == 0 {
				continue // right half of a wide rune
			}
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}

func keepBackground(under, over tcell.Style) tcell.Style {
	_, bg, _ := over.Decompose()
	if bg != tcell.ColorDefault {
		return over
	}
	_, underBg, _ := under.Decompose()
	return over.Background(underBg)
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
