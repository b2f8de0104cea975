package viz

import (
	"strings"
	"unicode/utf8"
)

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

const blank = 0x2800

// dashOn and dashOff are the lengths, in sub-pixels, of a dash and its gap.
const (
	dashOn  = 3
	dashOff = 2
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	labels        [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		labels: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.labels[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// dot returns the cell holding sub-pixel (x, y) and its Braille bit. The
// canvas spans (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) dot(x, y int) (*rune, rune, bool) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return nil, 0, false
	}
	return &c.Grid[y/4][x/2], rune(pixelMap[y%4][x%2]), true
}

// Set lights the sub-pixel at (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if cell, bit, ok := c.dot(x, y); ok {
		*cell |= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	cell, bit, ok := c.dot(x, y)
	return ok && *cell&bit != 0
}

// Clear blanks both the dots and the labels.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.labels[i][j] = 0
		}
	}
}

// DrawLine draws a solid Bresenham line between two sub-pixels.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, false)
}

// DrawDashed draws a line that alternates dashOn lit and dashOff dark pixels.
func (c *Canvas) DrawDashed(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, true)
}

func (c *Canvas) line(x0, y0, x1, y1 int, dashed bool) {
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

	for n := 0; ; n++ {
		if !dashed || n%(dashOn+dashOff) < dashOn {
			c.Set(x0, y0)
		}
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

// Label writes s centred on the cell (col, row). Labels are drawn over the
// Braille layer and clipped at the canvas edge.
func (c *Canvas) Label(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	start := col - utf8.RuneCountInString(s)/2
	if start < 0 {
		start = 0
	}
	i := start
	for _, r := range s {
		if i >= c.Width {
			break
		}
		c.labels[row][i] = r
		i++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if l := c.labels[i][j]; l != 0 {
				b.WriteRune(l)
				continue
			}
			b.WriteRune(r)
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
