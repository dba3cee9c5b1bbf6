package svgdraw

import (
	"image/color"
	"math"
	"strings"

	"github.com/benoitkugler/svgplot/svgpath"
	"github.com/charmbracelet/x/ansi"
)

// braille dot bits, indexed by [row][column] inside a character
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	fullBlock   = '█'
)

// Canvas is a Driver plotting on a grid of terminal characters.
// Each character holds 2x4 braille dots; filled cells are
// drawn with full blocks.
// The zero value is not usable: see NewCanvas.
type Canvas struct {
	cols, rows int

	dots   []rune // braille bits, one item per character
	blocks []bool
	colors []color.NRGBA

	color color.NRGBA
}

var _ Driver = (*Canvas)(nil)

// NewCanvas returns an empty canvas of cols x rows characters.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Canvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]rune, cols*rows),
		blocks: make([]bool, cols*rows),
		colors: make([]color.NRGBA, cols*rows),
		color:  color.NRGBA{A: 0xff},
	}
}

// Size returns the dimensions of the canvas, in characters.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Clear erases the canvas.
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
		c.blocks[i] = false
	}
}

func (c *Canvas) SetColor(col color.NRGBA) { c.color = col }

// SetStrokeWidth is a no-op: braille dots have a fixed width.
func (c *Canvas) SetStrokeWidth(float64) {}

// dotAt maps a canvas point to a dot position,
// flipping the vertical axis.
func (c *Canvas) dotAt(x, y float64) (px, py int) {
	w, h := c.cols*2, c.rows*4
	px = int(math.Round(x / 100 * float64(w-1)))
	py = int(math.Round((100 - y) / 100 * float64(h-1)))
	return px, py
}

func (c *Canvas) setDot(px, py int) {
	if px < 0 || py < 0 || px >= c.cols*2 || py >= c.rows*4 {
		return
	}
	i := (py/4)*c.cols + px/2
	c.dots[i] |= brailleDots[py%4][px%2]
	c.colors[i] = c.color
}

// line plots the dots between the two positions (Bresenham)
func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.setDot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// clip restricts the segment to the 0-100 canvas box (Liang-Barsky),
// so that only the visible dots are walked. ok is false when nothing
// is visible or a coordinate is not finite.
func clip(x0, y0, x1, y1 float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	for _, v := range [6]float64{x0, y0, x1, y1, dx, dy} {
		if !isFinite(v) {
			return 0, 0, 0, 0, false
		}
	}
	t0, t1 := 0., 1.
	for _, edge := range [4][2]float64{{-dx, x0}, {dx, 100 - x0}, {-dy, y0}, {dy, 100 - y0}} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 { // parallel and outside
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func (c *Canvas) Polyline(run svgpath.Path) {
	if len(run) == 1 {
		if p := run[0]; p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100 {
			c.setDot(c.dotAt(p.X, p.Y))
		}
		return
	}
	for i := 1; i < len(run); i++ {
		x0, y0, x1, y1, ok := clip(run[i-1].X, run[i-1].Y, run[i].X, run[i].Y)
		if !ok {
			continue
		}
		px0, py0 := c.dotAt(x0, y0)
		px1, py1 := c.dotAt(x1, y1)
		c.line(px0, py0, px1, py1)
	}
}

func (c *Canvas) Cells(cells svgpath.Path) {
	for _, p := range cells {
		px, py := c.dotAt(p.X, p.Y)
		if px < 0 || py < 0 || px >= c.cols*2 || py >= c.rows*4 {
			continue
		}
		i := (py/4)*c.cols + px/2
		c.blocks[i] = true
		c.colors[i] = c.color
	}
}

func (c *Canvas) char(i int) rune {
	switch {
	case c.blocks[i]:
		return fullBlock
	case c.dots[i] != 0:
		return brailleBase + c.dots[i]
	default:
		return ' '
	}
}

// Lines returns the content of the canvas, one string per row.
// When colored is true, the characters are wrapped in ANSI
// foreground color sequences.
func (c *Canvas) Lines(colored bool) []string {
	out := make([]string, c.rows)
	for r := range out {
		var (
			sb      strings.Builder
			segment strings.Builder
			current color.NRGBA
		)
		flush := func() {
			if segment.Len() == 0 {
				return
			}
			sb.WriteString(ansi.Style{}.ForegroundColor(current).Styled(segment.String()))
			segment.Reset()
		}
		for col := 0; col < c.cols; col++ {
			i := r*c.cols + col
			ch := c.char(i)
			if !colored || ch == ' ' {
				flush()
				sb.WriteRune(ch)
				continue
			}
			if c.colors[i] != current {
				flush()
				current = c.colors[i]
			}
			segment.WriteRune(ch)
		}
		flush()
		out[r] = sb.String()
	}
	return out
}

// String returns the uncolored content of the canvas.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(false), "\n")
}
