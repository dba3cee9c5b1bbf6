// Given the render records of an SVG document, implements how to
// draw them on screen.
// This requires a driver implementing the actual draw operations,
// such as a terminal canvas, a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"image/color"

	"github.com/benoitkugler/svgplot/svgicon"
	"github.com/benoitkugler/svgplot/svgpath"
)

// Driver knows how to do the actual draw operations
// but doesn't need any SVG kwowledge.
// In particular, points are already transformed and normalized
// to the 0-100 canvas, with the origin at the bottom-left corner.
type Driver interface {
	// SetColor set the color for the next operations
	SetColor(c color.NRGBA)

	// SetStrokeWidth set the width of the next polylines,
	// in canvas units: 1 is one hundredth of the canvas width
	SetStrokeWidth(w float64)

	// Polyline strokes a connected run of points.
	// A run may contain a single point.
	Polyline(run svgpath.Path)

	// Cells paints the given integer cells
	Cells(cells svgpath.Path)
}

// Runs splits the points into connected runs: a new run
// starts at every point whose Connect flag is false.
// The flag of the first point is ignored.
func Runs(points svgpath.Path) []svgpath.Path {
	var (
		out   []svgpath.Path
		start int
	)
	for i := 1; i < len(points); i++ {
		if !points[i].Connect {
			out = append(out, points[start:i])
			start = i
		}
	}
	if start < len(points) {
		out = append(out, points[start:])
	}
	return out
}

// Draw sends the records to the driver, in order.
// Outlines use the stroke color and fill records the fill color,
// svgicon.NeutralColor replacing missing ones.
func Draw(records []svgicon.RenderRecord, driver Driver) {
	for _, rec := range records {
		if rec.IsFill {
			driver.SetColor(rec.Style.FillColor())
			if len(rec.Points) != 0 {
				driver.Cells(rec.Points)
			}
			continue
		}
		driver.SetColor(rec.Style.StrokeColor())
		driver.SetStrokeWidth(rec.Style.StrokeWidth)
		for _, run := range Runs(rec.Points) {
			driver.Polyline(run)
		}
	}
}
