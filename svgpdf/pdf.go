// Implements a PDF backend to plot SVG render records,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/svgplot/svgdraw"
	"github.com/benoitkugler/svgplot/svgicon"
	"github.com/benoitkugler/svgplot/svgpath"
	"github.com/jung-kurt/gofpdf"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer plots the 0-100 canvas on a square area of a PDF page.
type Renderer struct {
	pdf *gofpdf.Fpdf

	x, y, size float64 // canvas position, in page units
}

// NewRenderer return a renderer which will write to the given `pdf`,
// in the square whose top-left corner is (x, y).
func NewRenderer(pdf *gofpdf.Fpdf, x, y, size float64) *Renderer {
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	return &Renderer{pdf: pdf, x: x, y: y, size: size}
}

// toPage maps a canvas point to page coordinates,
// whose vertical axis points down.
func (r *Renderer) toPage(x, y float64) (float64, float64) {
	return r.x + x/100*r.size, r.y + (100-y)/100*r.size
}

func (r *Renderer) SetColor(c color.NRGBA) {
	r.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetAlpha(float64(c.A)/255., "Normal")
}

func (r *Renderer) SetStrokeWidth(w float64) {
	r.pdf.SetLineWidth(w / 100 * r.size)
}

func (r *Renderer) Polyline(run svgpath.Path) {
	if len(run) == 1 {
		x, y := r.toPage(run[0].X, run[0].Y)
		r.pdf.Circle(x, y, r.pdf.GetLineWidth()/2, "F")
		return
	}
	r.pdf.MoveTo(r.toPage(run[0].X, run[0].Y))
	for _, p := range run[1:] {
		r.pdf.LineTo(r.toPage(p.X, p.Y))
	}
	r.pdf.DrawPath("D")
}

// Cells paints each cell as a square of side 1 (in canvas units).
func (r *Renderer) Cells(cells svgpath.Path) {
	side := r.size / 100
	for _, c := range cells {
		x, y := r.toPage(c.X, c.Y)
		r.pdf.Rect(x-side/2, y-side/2, side, side, "F")
	}
}

// Options configures the PDF output.
type Options struct {
	Title       string // optional, printed above the drawing
	Compression bool
}

// WritePDF writes an A4 document with one page
// showing the records.
func WritePDF(out io.Writer, records []svgicon.RenderRecord, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(opts.Compression)
	pdf.AddPage()

	left, top, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	y := top
	if opts.Title != "" {
		pdf.SetFont("Helvetica", "", 14)
		pdf.Text(left, y+5, opts.Title)
		y += 10
	}
	svgdraw.Draw(records, NewRenderer(pdf, left, y, pageWidth-left-right))
	return pdf.Output(out)
}

// RenderSVGToPDF extracts and renders the SVG document, then writes
// it as PDF.
func RenderSVGToPDF(svg io.Reader, out io.Writer, renderOpts svgicon.Options, opts Options) error {
	res, err := svgicon.Render(svg, renderOpts)
	if err != nil {
		return err
	}
	return WritePDF(out, res.Records, opts)
}
