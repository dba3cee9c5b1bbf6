// Implements the flattening of SVG path data into
// sequences of points living in a canonical 0-100 box,
// which can then be consumed by plotting drivers.
package svgpath

import (
	"fmt"
	"math"
	"strings"
)

// Vec is a point or a vector in user space,
// before any transformation or normalization.
type Vec struct {
	X, Y float64
}

// reflect returns the reflection of v about the center c.
func (v Vec) reflect(c Vec) Vec {
	return Vec{X: 2*c.X - v.X, Y: 2*c.Y - v.Y}
}

// Point is a normalized point. Connect is false when
// the pen is lifted before reaching the point, that is
// no segment should be drawn from the previous point.
type Point struct {
	X, Y    float64
	Connect bool
}

// Path is a sequence of normalized points.
// Only the Connect flag of the second point of each
// adjacent pair is meaningful when plotting.
type Path []Point

// String returns a readable representation of the path,
// using M for pen-up points and L for connected ones.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, pt := range p {
		cmd := "L"
		if i == 0 || !pt.Connect {
			cmd = "M"
		}
		chunks[i] = fmt.Sprintf("%s%4.3f,%4.3f", cmd, pt.X, pt.Y)
	}
	return strings.Join(chunks, " ")
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start adds a point which interrupts the current run.
func (p *Path) Start(x, y float64) {
	*p = append(*p, Point{X: x, Y: y, Connect: false})
}

// Line adds a point connected to the previous one.
func (p *Path) Line(x, y float64) {
	*p = append(*p, Point{X: x, Y: y, Connect: true})
}

// Bounds returns the axis aligned bounding box of the path.
// ok is false for an empty path.
func (p Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(p) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY, true
}

// ViewBox holds the dimensions of the source coordinate system.
// Only the width and height are used to scale geometry: the
// origin is kept for snapshots and drivers.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// Validate returns ErrDegenerateGeometry if one of the
// dimensions can't be used as a divisor.
func (vb ViewBox) Validate() error {
	for _, v := range [2]float64{vb.Width, vb.Height} {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: viewBox is %gx%g", ErrDegenerateGeometry, vb.Width, vb.Height)
		}
	}
	return nil
}

// Scales returns the divisors mapping user space to the 0-100 box.
func (vb ViewBox) Scales() (sx, sy float64) {
	return vb.Width / 100, vb.Height / 100
}

// Normalize maps a user space point to the 0-100 box,
// flipping the vertical axis so that the origin is bottom-left.
func (vb ViewBox) Normalize(x, y float64) (float64, float64) {
	sx, sy := vb.Scales()
	return x / sx, 100 - y/sy
}
