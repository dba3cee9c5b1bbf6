// Provides the extraction of drawable elements from SVG documents,
// and their rendering into ordered records of normalized points.
// The records can then be consumed by plotting drivers.
// See for example svgplot/svgdraw, svgplot/svgraster or svgplot/svgpdf .
package svgicon

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/svgplot/svgpath"
	"golang.org/x/net/html/charset"
)

// Element is one of PathRecord, RectRecord or LineRecord.
type Element interface {
	// Tag returns the name of the SVG element
	Tag() string
	// ElementStyle returns the parsed style of the element.
	ElementStyle() Style
}

// PathRecord is a <path> element. Circles, ellipses,
// polylines and polygons are also converted to paths.
type PathRecord struct {
	D         string
	Style     Style
	Transform string

	tag string // when lowered from another shape
}

// RectRecord is a <rect> element.
type RectRecord struct {
	X, Y, Width, Height float64
	Style               Style
	Transform           string
}

// LineRecord is a <line> element.
type LineRecord struct {
	X1, Y1, X2, Y2 float64
	Style          Style
	Transform      string
}

func (p PathRecord) Tag() string {
	if p.tag != "" {
		return p.tag
	}
	return "path"
}
func (RectRecord) Tag() string { return "rect" }
func (LineRecord) Tag() string { return "line" }

func (p PathRecord) ElementStyle() Style { return p.Style }
func (r RectRecord) ElementStyle() Style { return r.Style }
func (l LineRecord) ElementStyle() Style { return l.Style }

// Document holds the drawable content of an SVG file,
// in document order.
type Document struct {
	ViewBox  svgpath.ViewBox
	Titles   []string // Title elements collect here
	Elements []Element

	// Diagnostics lists the elements skipped during extraction
	// and the invalid styles.
	Diagnostics []Diagnostic

	// indexes[i] is the position of Elements[i] among all
	// the drawable elements, including the skipped ones
	indexes []int
}

// elementIndex returns the position of Elements[i] in the document
func (doc *Document) elementIndex(i int) int {
	if i < len(doc.indexes) {
		return doc.indexes[i]
	}
	return i
}

// Extract reads the drawable elements from the given io.Reader.
// This only supports a sub-set of SVG: the <path>, <rect>, <line>,
// <circle>, <ellipse>, <polyline> and <polygon> elements, with their
// style and transform attributes.
// errMode determines if invalid elements are skipped silently, skipped
// with a warning or abort the extraction.
// The returned error wraps ErrMalformedDocument when the document
// has no <svg> element or no valid viewBox.
func Extract(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := &Document{}
	cursor := &extractCursor{doc: doc, diags: diagnostics{mode: errMode}}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if err = cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if se.Name.Local == "title" {
				cursor.inTitle = false
			}
		case xml.CharData:
			if cursor.inTitle {
				doc.Titles[len(doc.Titles)-1] += string(se)
			}
		}
	}
	if !cursor.seenSVG {
		return nil, fmt.Errorf("%w: missing <svg> element", ErrMalformedDocument)
	}
	doc.Diagnostics = cursor.diags.list
	return doc, nil
}

// ExtractString is a convenience wrapper around Extract.
func ExtractString(s string, errMode ErrorMode) (*Document, error) {
	return Extract(strings.NewReader(s), errMode)
}

// ExtractFile reads the elements from the named file.
// See Extract for the supported subset.
func ExtractFile(svgFile string, errMode ErrorMode) (*Document, error) {
	fin, errf := os.Open(svgFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return Extract(fin, errMode)
}
