package svgicon

import (
	"math"

	"github.com/benoitkugler/svgplot/svgpath"
)

// The filled interior of a shape is approximated by enumerating
// the integer cells of the 0-100 canvas. Concavity, holes and
// self intersections are not taken into account.

// clampCells restricts the integer range [lo, hi) to the canvas
func clampCells(lo, hi int) (int, int) {
	return max(lo, 0), min(hi, 101)
}

// FillBounds returns the cells strictly inside the bounding box of the
// normalized points: i in [floor(minX)+1, floor(maxX)) and
// j in [floor(minY)+1, floor(maxY)).
func FillBounds(points svgpath.Path) svgpath.Path {
	minX, minY, maxX, maxY, ok := points.Bounds()
	if !ok {
		return nil
	}
	i0, i1 := clampCells(int(math.Floor(minX))+1, int(math.Floor(maxX)))
	j0, j1 := clampCells(int(math.Floor(minY))+1, int(math.Floor(maxY)))
	var out svgpath.Path
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			out.Line(float64(i), float64(j))
		}
	}
	return out
}

// FillRect returns the cells covered by the (untransformed) rectangle
// x, y, width, height given in user space: the integer cells (i, k)
// whose normalized source coordinates lie in [x, x+width) × [y, y+height).
// The cells are returned in the flipped space, as (i, 100-k).
func FillRect(vb svgpath.ViewBox, x, y, width, height float64) svgpath.Path {
	sx, sy := vb.Scales()
	nx, ny := x/sx, y/sy
	nw, nh := width/sx, height/sy
	i0, i1 := clampCells(int(math.Ceil(nx)), int(math.Ceil(nx+nw)))
	k0, k1 := clampCells(int(math.Ceil(ny)), int(math.Ceil(ny+nh)))
	var out svgpath.Path
	for i := i0; i < i1; i++ {
		for k := k0; k < k1; k++ {
			out.Line(float64(i), 100-float64(k))
		}
	}
	return out
}
