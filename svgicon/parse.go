package svgicon

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/benoitkugler/svgplot/svgpath"
)

// extractCursor is used while reading SVG files
type extractCursor struct {
	doc     *Document
	diags   diagnostics
	seenSVG bool
	inTitle bool
	index   int // number of drawable elements seen
}

func (c *extractCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "svg":
		if c.seenSVG { // nested svg elements are drawn in the root coordinates
			c.diags.warn(-1, "svg", "nested <svg> element: viewBox ignored", nil)
			return nil
		}
		c.seenSVG = true
		return c.readViewBox(se.Attr)
	case "title":
		c.inTitle = true
		c.doc.Titles = append(c.doc.Titles, "")
		return nil
	}

	df, ok := drawFuncs[se.Name.Local]
	if !ok { // unrecognized elements are ignored
		return nil
	}
	index := c.index
	c.index++

	style, err := readStyle(se.Attr)
	if err != nil {
		c.diags.warn(index, se.Name.Local, "invalid style", err)
	}
	el, err := df(se.Attr, style)
	if err != nil {
		return c.diags.add(index, se.Name.Local, err)
	}
	if el == nil { // valid, but nothing to draw
		return nil
	}
	c.doc.Elements = append(c.doc.Elements, el)
	c.doc.indexes = append(c.doc.indexes, index)
	return nil
}

func (c *extractCursor) readViewBox(attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "viewBox" {
			continue
		}
		points, err := svgpath.ParseNumbers(attr.Value)
		if err != nil || len(points) != 4 {
			return fmt.Errorf("%w: invalid viewBox %q", ErrMalformedDocument, attr.Value)
		}
		c.doc.ViewBox = svgpath.ViewBox{MinX: points[0], MinY: points[1], Width: points[2], Height: points[3]}
		return nil
	}
	return fmt.Errorf("%w: missing viewBox attribute", ErrMalformedDocument)
}

// readStyle merges the presentation attributes and the style attribute,
// the later taking precedence.
func readStyle(attrs []xml.Attr) (Style, error) {
	var (
		raw   string
		pairs []string
	)
	for _, attr := range attrs {
		switch k := strings.ToLower(attr.Name.Local); k {
		case "style":
			raw = attr.Value
		case "stroke", "fill", "stroke-width":
			pairs = append(pairs, k+":"+attr.Value)
		}
	}
	pairs = append(pairs, raw)
	s, err := ParseStyle(strings.Join(pairs, ";"))
	s.Raw = raw
	return s, err
}
