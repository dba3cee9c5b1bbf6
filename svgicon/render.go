package svgicon

import (
	"errors"
	"io"
	"strings"

	"github.com/benoitkugler/svgplot/svgpath"
)

// Options tunes the rendering. The zero value is usable.
type Options struct {
	ErrorMode ErrorMode

	CurveSteps int // samples per Bézier segment, svgpath.DefaultSteps if zero
	ArcPoints  int // samples per arc are ArcPoints + 1, svgpath.DefaultSteps if zero
}

// RenderRecord is one drawable sequence of normalized points.
// Fill records hold the cells to paint rather than a polyline.
type RenderRecord struct {
	Points svgpath.Path
	Style  Style
	IsFill bool
}

// Result is the output of a rendering pass.
type Result struct {
	ViewBox     svgpath.ViewBox
	Records     []RenderRecord
	Diagnostics []Diagnostic
}

// Render extracts and renders the SVG document read from `stream`.
func Render(stream io.Reader, opts Options) (*Result, error) {
	doc, err := Extract(stream, opts.ErrorMode)
	if err != nil {
		return nil, err
	}
	return doc.Render(opts)
}

// RenderString is a convenience wrapper around Render.
func RenderString(s string, opts Options) (*Result, error) {
	return Render(strings.NewReader(s), opts)
}

// Render flattens the elements of the document into records,
// in document order. The fill record of an element, if any, immediately
// follows its outline. Invalid elements are skipped or abort the
// rendering, according to opts.ErrorMode.
//
// Render does not modify the document, and repeated calls
// return identical results.
func (doc *Document) Render(opts Options) (*Result, error) {
	if err := doc.ViewBox.Validate(); err != nil {
		return nil, err
	}
	rd := renderer{
		vb:    doc.ViewBox,
		opts:  opts,
		diags: diagnostics{mode: opts.ErrorMode},
	}
	rd.diags.list = append(rd.diags.list, doc.Diagnostics...)
	for i, el := range doc.Elements {
		if err := rd.renderElement(doc.elementIndex(i), el); err != nil {
			return nil, err
		}
	}
	Logger().Debug("svg rendered", "records", len(rd.records), "diagnostics", len(rd.diags.list))
	return &Result{ViewBox: doc.ViewBox, Records: rd.records, Diagnostics: rd.diags.list}, nil
}

type renderer struct {
	vb      svgpath.ViewBox
	opts    Options
	diags   diagnostics
	records []RenderRecord
}

// transform parses the transform attribute. Unsupported functions
// are reported but the element is still drawn.
func (rd *renderer) transform(index int, tag, attr string) (svgpath.Matrix2D, error) {
	m, err := svgpath.ParseTransform(attr)
	if errors.Is(err, ErrUnsupportedTransform) {
		rd.diags.warn(index, tag, err.Error(), err)
		err = nil
	}
	return m, err
}

func (rd *renderer) renderElement(index int, el Element) error {
	var (
		outline svgpath.Path
		fill    svgpath.Path
		style   = el.ElementStyle()
		err     error
	)
	switch el := el.(type) {
	case PathRecord:
		outline, err = rd.flattenPath(index, el)
		if err == nil && style.Fill != nil {
			fill = FillBounds(outline)
		}
	case RectRecord:
		var m svgpath.Matrix2D
		m, err = rd.transform(index, el.Tag(), el.Transform)
		if err != nil {
			break
		}
		outline = rd.polyline(m,
			svgpath.Vec{X: el.X, Y: el.Y},
			svgpath.Vec{X: el.X + el.Width, Y: el.Y},
			svgpath.Vec{X: el.X + el.Width, Y: el.Y + el.Height},
			svgpath.Vec{X: el.X, Y: el.Y + el.Height},
			svgpath.Vec{X: el.X, Y: el.Y},
		)
		if style.Fill != nil {
			if m.IsIdentity() {
				fill = FillRect(rd.vb, el.X, el.Y, el.Width, el.Height)
			} else {
				fill = FillBounds(outline)
			}
		}
	case LineRecord:
		var m svgpath.Matrix2D
		m, err = rd.transform(index, el.Tag(), el.Transform)
		if err != nil {
			break
		}
		outline = rd.polyline(m, svgpath.Vec{X: el.X1, Y: el.Y1}, svgpath.Vec{X: el.X2, Y: el.Y2})
	}
	if err != nil {
		return rd.diags.add(index, el.Tag(), err)
	}

	rd.records = append(rd.records, RenderRecord{Points: outline, Style: style})
	if style.Fill != nil {
		if _, isLine := el.(LineRecord); !isLine {
			rd.records = append(rd.records, RenderRecord{Points: fill, Style: style, IsFill: true})
		}
	}
	return nil
}

func (rd *renderer) flattenPath(index int, el PathRecord) (svgpath.Path, error) {
	m, err := rd.transform(index, el.Tag(), el.Transform)
	if err != nil {
		return nil, err
	}
	ip := svgpath.NewInterpreter(rd.vb, m)
	ip.CurveSteps = rd.opts.CurveSteps
	ip.ArcPoints = rd.opts.ArcPoints
	points, err := ip.Flatten(el.D)
	if err != nil {
		return nil, err
	}
	for _, w := range ip.Warnings() {
		rd.diags.warn(index, el.Tag(), w, nil)
	}
	return points, nil
}

// polyline transforms, normalizes and connects the given points
func (rd *renderer) polyline(m svgpath.Matrix2D, points ...svgpath.Vec) svgpath.Path {
	out := make(svgpath.Path, 0, len(points))
	for _, p := range points {
		x, y := m.Transform(p.X, p.Y)
		out.Line(rd.vb.Normalize(x, y))
	}
	return out
}
