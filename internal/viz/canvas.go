package viz

import (
	"strings"

	"github.com/san-kum/scramble/internal/scramble"
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

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(brailleBlank)), w))
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates.
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
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// DotPlot draws one dot per table entry: index on the x axis, image on the
// y axis growing upwards. Tables larger than the canvas are scaled down.
func DotPlot(p scramble.Permutation, width, height int) *Canvas {
	c := NewCanvas(width, height)
	n := len(p)
	if n == 0 || width <= 0 || height <= 0 {
		return c
	}

	px, py := width*2, height*4
	for i, v := range p {
		x := scale(i, n, px)
		y := py - 1 - scale(v, n, py)
		c.Set(x, y)
	}
	return c
}

// scale maps i in [0, n) onto [0, size).
func scale(i, n, size int) int {
	if n <= 1 {
		return 0
	}
	return i * (size - 1) / (n - 1)
}
