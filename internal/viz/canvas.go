package viz

import "strings"

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank rune = 0x2800

// Ink selects the style a cell is drawn with.
type Ink int

const (
	InkAxis Ink = iota
	InkField
	InkContour
	InkSurface
	InkPositive
	InkNegative
	numInks
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Pen is the ink recorded for cells touched by Set and DrawLine.
	Pen    Ink
	ink    [][]Ink
	labels map[[2]int]label
}

type label struct {
	text string
	ink  Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		ink:    make([][]Ink, h),
		labels: make(map[[2]int]label),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.ink[i] = make([]Ink, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Pixels returns the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.ink[row][col] = c.Pen
}

// IsSet reports whether the sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// InkAt returns the ink of cell (col, row).
func (c *Canvas) InkAt(col, row int) Ink {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return InkAxis
	}
	return c.ink[row][col]
}

// Label places a single-cell text marker over the dots at cell (col, row).
func (c *Canvas) Label(col, row int, text string, ink Ink) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.labels[[2]int{col, row}] = label{text, ink}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.ink[i][j] = InkAxis
		}
	}
	clear(c.labels)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
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

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if l, ok := c.labels[[2]int{col, row}]; ok {
				b.WriteString(l.text)
				continue
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with one lipgloss style per ink.
func (c *Canvas) Render(th Theme) string {
	styles := th.inkStyles()
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if l, ok := c.labels[[2]int{col, row}]; ok {
				b.WriteString(styles[l.ink].Render(l.text))
				continue
			}
			if r == blank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(styles[c.ink[row][col]].Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
