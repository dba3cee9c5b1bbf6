package svgpdf

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/svgplot/svgicon"
	"github.com/benoitkugler/svgplot/svgpath"
	"github.com/jung-kurt/gofpdf"
)

const sample = `<svg viewBox="0 0 100 100">
	<rect x="10" y="10" width="5" height="5" style="stroke: rgb(0, 0, 0); fill: rgb(255, 0, 0);"/>
	<path d="M 50 50 L 60 60 M 70 70 L 80 70"/>
</svg>`

func TestRenderSVGToPDF(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSVGToPDF(strings.NewReader(sample), &buf, svgicon.Options{}, Options{Title: "Sample"})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.") {
		t.Fatalf("invalid PDF header %q", out[:min(len(out), 10)])
	}
	if !strings.Contains(out, " re f") {
		t.Error("expected filled cells")
	}
	if !strings.Contains(out, " l") || !strings.Contains(out, " m") {
		t.Error("expected path operators")
	}
	if !strings.Contains(out, "(Sample) Tj") {
		t.Error("expected the title")
	}
}

func TestRenderSVGToPDFInvalid(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSVGToPDF(strings.NewReader("<svg/>"), &buf, svgicon.Options{}, Options{})
	if !errors.Is(err, svgicon.ErrMalformedDocument) {
		t.Errorf("expected malformed document, got %v", err)
	}
}

func TestToPage(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	r := NewRenderer(pdf, 10, 20, 50)
	for _, test := range []struct {
		p    svgpath.Point
		x, y float64
	}{
		{svgpath.Point{X: 0, Y: 0}, 10, 70},
		{svgpath.Point{X: 100, Y: 100}, 60, 20},
		{svgpath.Point{X: 50, Y: 25}, 35, 57.5},
	} {
		if x, y := r.toPage(test.p.X, test.p.Y); x != test.x || y != test.y {
			t.Errorf("%v: expected (%g, %g), got (%g, %g)", test.p, test.x, test.y, x, y)
		}
	}

	r.SetColor(color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
	r.SetStrokeWidth(2)
	if w := pdf.GetLineWidth(); w != 1 {
		t.Errorf("expected a width of 1mm, got %g", w)
	}
	r.Polyline(svgpath.Path{{X: 10, Y: 10}})
	r.Cells(svgpath.Path{{X: 1, Y: 1}, {X: 2, Y: 1}})
	if err := pdf.Error(); err != nil {
		t.Error(err)
	}
}
