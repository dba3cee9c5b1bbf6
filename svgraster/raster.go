// Implements a raster backend to plot SVG render records,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/benoitkugler/svgplot/svgdraw"
	"github.com/benoitkugler/svgplot/svgicon"
	"github.com/benoitkugler/svgplot/svgpath"
	"github.com/disintegration/imaging"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer plots the 0-100 canvas on a width x height image.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	width, height int
	strokeWidth   float64 // in pixels
}

// NewRenderer returns a renderer with default values.
// If scanner is nil, a default scanner rasterx.ScannerGV
// drawing on `dst` is used.
func NewRenderer(width, height int, dst draw.Image, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		scanner = rasterx.NewScannerGV(width, height, dst, dst.Bounds())
	}
	rd := &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
		width:  width,
		height: height,
	}
	rd.SetStrokeWidth(svgicon.DefaultStrokeWidth)
	return rd
}

// Options configures the image output.
type Options struct {
	Width, Height int
	// Background is painted before the records, if not nil
	Background color.Color
	// Oversample renders at a larger size, then downsamples
	// the image. Values lower than 2 disable it.
	Oversample int
}

// RasterRecords renders the records into a new image.
func RasterRecords(records []svgicon.RenderRecord, opts Options) image.Image {
	w, h := opts.Width, opts.Height
	if opts.Oversample > 1 {
		w, h = w*opts.Oversample, h*opts.Oversample
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	renderer := NewRenderer(w, h, img, nil)
	svgdraw.Draw(records, renderer)
	if opts.Oversample > 1 {
		return imaging.Resize(img, opts.Width, opts.Height, imaging.Lanczos)
	}
	return img
}

// RasterSVGToImage extracts, renders and rasterizes
// the SVG document into an image.
func RasterSVGToImage(svg io.Reader, renderOpts svgicon.Options, opts Options) (image.Image, error) {
	res, err := svgicon.Render(svg, renderOpts)
	if err != nil {
		return nil, err
	}
	return RasterRecords(res.Records, opts), nil
}

// WritePNG encodes the image as PNG.
func WritePNG(out io.Writer, img image.Image) error {
	return imaging.Encode(out, img, imaging.PNG)
}

// toFixed converts a canvas point to pixel coordinates
func (rd *Renderer) toFixed(x, y float64) fixed.Point26_6 {
	px := x / 100 * float64(rd.width)
	py := (100 - y) / 100 * float64(rd.height)
	return fixed.Point26_6{X: fixed.Int26_6(px * 64), Y: fixed.Int26_6(py * 64)}
}

func (rd *Renderer) SetColor(c color.NRGBA) {
	rd.dasher.SetColor(c)
	rd.filler.SetColor(c)
}

// SetStrokeWidth uses canvas units: a width of 1
// is one hundredth of the image width.
func (rd *Renderer) SetStrokeWidth(w float64) {
	rd.strokeWidth = max(w/100*float64(rd.width), 1)
}

func (rd *Renderer) Polyline(run svgpath.Path) {
	if len(run) == 1 { // a lonely point is painted as a dot
		rd.filler.Clear()
		rd.square(run[0].X, run[0].Y, rd.strokeWidth/2/float64(rd.width)*100)
		rd.filler.Draw()
		return
	}
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(rd.strokeWidth*64), 4*64,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	rd.dasher.Start(rd.toFixed(run[0].X, run[0].Y))
	for _, p := range run[1:] {
		rd.dasher.Line(rd.toFixed(p.X, p.Y))
	}
	rd.dasher.Stop(false)
	rd.dasher.Draw()
}

// square adds a square centered on (x, y) to the filler,
// with half side r, in canvas units
func (rd *Renderer) square(x, y, r float64) {
	rd.filler.Start(rd.toFixed(x-r, y-r))
	rd.filler.Line(rd.toFixed(x+r, y-r))
	rd.filler.Line(rd.toFixed(x+r, y+r))
	rd.filler.Line(rd.toFixed(x-r, y+r))
	rd.filler.Stop(true)
}

// Cells paints each cell as a square of side 1 (in canvas units).
func (rd *Renderer) Cells(cells svgpath.Path) {
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	for _, c := range cells {
		rd.square(c.X, c.Y, 0.5)
	}
	rd.filler.Draw()
}
