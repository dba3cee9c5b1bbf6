package svgicon

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgplot/svgpath"
)

// elementFunc builds the record for one drawable element.
// A nil Element with a nil error means there is nothing to draw.
type elementFunc func(attrs []xml.Attr, style Style) (Element, error)

var drawFuncs = map[string]elementFunc{
	"path":     pathF,
	"rect":     rectF,
	"line":     lineF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
}

func parseFloat(attr xml.Attr) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %s: invalid number %q", ErrMalformedPath, attr.Name.Local, attr.Value)
	}
	return f, nil
}

func transformAttr(attrs []xml.Attr) string {
	for _, attr := range attrs {
		if attr.Name.Local == "transform" {
			return attr.Value
		}
	}
	return ""
}

func pathF(attrs []xml.Attr, style Style) (Element, error) {
	out := PathRecord{Style: style, Transform: transformAttr(attrs)}
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			out.D = attr.Value
		}
	}
	if strings.TrimSpace(out.D) == "" {
		return nil, fmt.Errorf("%w: missing path data", ErrMalformedPath)
	}
	return out, nil
}

func rectF(attrs []xml.Attr, style Style) (Element, error) {
	out := RectRecord{Style: style, Transform: transformAttr(attrs)}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			out.X, err = parseFloat(attr)
		case "y":
			out.Y, err = parseFloat(attr)
		case "width":
			out.Width, err = parseFloat(attr)
		case "height":
			out.Height, err = parseFloat(attr)
		}
		if err != nil {
			return nil, err
		}
	}
	if out.Width < 0 || out.Height < 0 {
		return nil, fmt.Errorf("%w: negative rectangle size %gx%g", ErrMalformedPath, out.Width, out.Height)
	}
	return out, nil
}

func lineF(attrs []xml.Attr, style Style) (Element, error) {
	out := LineRecord{Style: style, Transform: transformAttr(attrs)}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			out.X1, err = parseFloat(attr)
		case "x2":
			out.X2, err = parseFloat(attr)
		case "y1":
			out.Y1, err = parseFloat(attr)
		case "y2":
			out.Y2, err = parseFloat(attr)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func circleF(attrs []xml.Attr, style Style) (Element, error) {
	var cx, cy, rx, ry float64
	var err error
	tag := "ellipse"
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseFloat(attr)
		case "cy":
			cy, err = parseFloat(attr)
		case "r":
			rx, err = parseFloat(attr)
			ry = rx
			tag = "circle"
		case "rx":
			rx, err = parseFloat(attr)
		case "ry":
			ry, err = parseFloat(attr)
		}
		if err != nil {
			return nil, err
		}
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil, nil
	}
	// two half arcs, since an arc can't join identical end points
	d := fmt.Sprintf("M %g %g A %g %g 0 1 0 %g %g A %g %g 0 1 0 %g %g Z",
		cx+rx, cy, rx, ry, cx-rx, cy, rx, ry, cx+rx, cy)
	return PathRecord{D: d, Style: style, Transform: transformAttr(attrs), tag: tag}, nil
}

// readPoints returns the path data joining the points of a polyline
func readPoints(attrs []xml.Attr) (string, error) {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		points, err := svgpath.ParseNumbers(attr.Value)
		if err != nil {
			return "", err
		}
		if len(points)%2 != 0 {
			return "", fmt.Errorf("%w: odd number of coordinates in points", ErrMalformedPath)
		}
		if len(points) < 4 {
			return "", nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "M %g %g", points[0], points[1])
		for i := 2; i < len(points)-1; i += 2 {
			fmt.Fprintf(&sb, " L %g %g", points[i], points[i+1])
		}
		return sb.String(), nil
	}
	return "", nil
}

func polylineF(attrs []xml.Attr, style Style) (Element, error) {
	d, err := readPoints(attrs)
	if err != nil || d == "" {
		return nil, err
	}
	return PathRecord{D: d, Style: style, Transform: transformAttr(attrs), tag: "polyline"}, nil
}

func polygonF(attrs []xml.Attr, style Style) (Element, error) {
	d, err := readPoints(attrs)
	if err != nil || d == "" {
		return nil, err
	}
	return PathRecord{D: d + " Z", Style: style, Transform: transformAttr(attrs), tag: "polygon"}, nil
}
