package svgicon

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgplot/svgpath"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips invalid elements silently
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips invalid elements, and logs a warning
	WarnErrorMode
	// StrictErrorMode aborts the rendering on the first invalid element
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("ErrorMode(%d)", uint8(m))
	}
}

// ParseErrorMode is the inverse of ErrorMode.String
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn", "":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("invalid error mode %q (expected ignore, warn or strict)", s)
}

var (
	// ErrMalformedDocument is returned when the document has no <svg>
	// element or no usable viewBox.
	ErrMalformedDocument = errors.New("malformed document")

	ErrMalformedPath        = svgpath.ErrMalformedPath
	ErrUnsupportedTransform = svgpath.ErrUnsupportedTransform
	ErrDegenerateGeometry   = svgpath.ErrDegenerateGeometry
)

// ElementError wraps a failure of one element,
// identified by its position in the document.
type ElementError struct {
	Index int    // position of the element among the drawable ones
	Tag   string // element name
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d (<%s>): %s", e.Index, e.Tag, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// Diagnostic is a non fatal issue found while
// extracting or rendering a document.
type Diagnostic struct {
	Index   int // element index, or -1 for the document itself
	Tag     string
	Message string
	Err     error // may be nil for simple warnings
}

func (d Diagnostic) String() string {
	if d.Index < 0 {
		return d.Message
	}
	return fmt.Sprintf("<%s> #%d: %s", d.Tag, d.Index, d.Message)
}

// diagnostics collects issues and applies the error mode
type diagnostics struct {
	mode ErrorMode
	list []Diagnostic
}

// add records a skipped element. In strict mode, the error
// is returned and should abort the processing.
func (ds *diagnostics) add(index int, tag string, err error) error {
	if ds.mode == StrictErrorMode {
		return &ElementError{Index: index, Tag: tag, Err: err}
	}
	d := Diagnostic{Index: index, Tag: tag, Message: err.Error(), Err: err}
	ds.list = append(ds.list, d)
	if ds.mode == WarnErrorMode {
		Logger().Warn("svg element skipped", "tag", tag, "index", index, "err", err)
	}
	return nil
}

// warn records an issue which never aborts the processing,
// such as an unsupported transform or path command.
func (ds *diagnostics) warn(index int, tag string, msg string, err error) {
	ds.list = append(ds.list, Diagnostic{Index: index, Tag: tag, Message: msg, Err: err})
	if ds.mode == WarnErrorMode {
		Logger().Warn(msg, "tag", tag, "index", index)
	} else {
		Logger().Debug(msg, "tag", tag, "index", index)
	}
}
