// Package canvas implements the terminal drawing surface simulations render
// onto. Each character cell packs 2x4 braille dots, so a W x H cell canvas
// exposes a (W*2) x (H*4) sub-pixel drawable area.
package canvas

import (
	"math"
	"strings"
)

// Braille dot layout within a cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const emptyCell = 0x2800

// Canvas is a braille-cell drawing surface. Cells holding overlay text keep
// their ASCII rune until the next Clear.
type Canvas struct {
	cols, rows int
	grid       [][]rune
}

func New(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the cell grid. Existing content is discarded.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.grid = make([][]rune, rows)
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
		for j := range c.grid[i] {
			c.grid[i][j] = emptyCell
		}
	}
}

// Size returns the drawable area in sub-pixels.
func (c *Canvas) Size() (int, int) {
	return c.cols * 2, c.rows * 4
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	cell := c.grid[row][col]
	if cell < emptyCell || cell > emptyCell+0xFF {
		// Cell occupied by overlay text; dots lose.
		return
	}
	c.grid[row][col] = cell | dotMask[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = emptyCell
		}
	}
}

// Line draws with Bresenham's algorithm in sub-pixel coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
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
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// Circle draws an outline of radius r in sub-pixels around (cx, cy).
func (c *Canvas) Circle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	steps := 8 * r
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(cx+int(math.Round(float64(r)*math.Cos(a))), cy+int(math.Round(float64(r)*math.Sin(a))))
	}
}

// Text writes an ASCII overlay starting at a cell position. Runes outside the
// grid are dropped.
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.rows {
		return
	}
	for i, r := range s {
		x := col + i
		if x < 0 || x >= c.cols {
			continue
		}
		c.grid[row][x] = r
	}
}

// Dots returns the set sub-pixels, for exporters that redraw the canvas in
// another medium.
func (c *Canvas) Dots() [][2]int {
	out := make([][2]int, 0)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cell := c.grid[row][col]
			if cell < emptyCell || cell > emptyCell+0xFF {
				continue
			}
			pattern := cell - emptyCell
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotMask[dy][dx] != 0 {
						out = append(out, [2]int{col*2 + dx, row*4 + dy})
					}
				}
			}
		}
	}
	return out
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
