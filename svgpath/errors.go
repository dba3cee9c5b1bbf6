package svgpath

import "errors"

var (
	// ErrMalformedPath is returned for path data or transform
	// arguments which can't be interpreted.
	ErrMalformedPath = errors.New("malformed path")

	// ErrUnsupportedTransform is returned when a transform function
	// is not recognized. The function is then treated as the identity.
	ErrUnsupportedTransform = errors.New("unsupported transform")

	// ErrDegenerateGeometry is returned when the viewBox has a zero dimension.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
