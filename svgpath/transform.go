package svgpath

import (
	"fmt"
	"math"
	"strings"
)

// ParseTransform reads an SVG transform attribute, such as
// "translate(10, 20) rotate(45)", and returns the composed matrix.
// An empty attribute is the identity.
//
// Unknown functions are skipped (they act as the identity) and reported
// with an error wrapping ErrUnsupportedTransform, alongside the usable matrix.
// Badly formed lists or wrong argument counts return the identity and an
// error wrapping ErrMalformedPath.
func ParseTransform(v string) (Matrix2D, error) {
	m := Identity
	var unsupported []string
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return Identity, fmt.Errorf("%w: badly formed transform %q", ErrMalformedPath, v)
		}
		args, err := parseNumbers(d[1])
		if err != nil {
			return Identity, err
		}
		name := strings.ToLower(strings.TrimSpace(d[0]))
		var ok bool
		m, ok, err = readTransformFunc(m, name, args)
		if err != nil {
			return Identity, err
		}
		if !ok {
			unsupported = append(unsupported, name)
		}
	}
	if len(unsupported) != 0 {
		return m, fmt.Errorf("%w: %s", ErrUnsupportedTransform, strings.Join(unsupported, ", "))
	}
	return m, nil
}

// readTransformFunc applies one transform function to m1.
// ok is false if the function is not recognized, and m1 is then returned unchanged.
func readTransformFunc(m1 Matrix2D, k string, args []float64) (_ Matrix2D, ok bool, err error) {
	ln := len(args)
	mismatch := func() (Matrix2D, bool, error) {
		return m1, true, fmt.Errorf("%w: %d arguments for %s", ErrMalformedPath, ln, k)
	}
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(args[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(args[1], args[2]).
				Rotate(args[0]*math.Pi/180).
				Translate(-args[1], -args[2])
		} else {
			return mismatch()
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(args[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(args[0], args[1])
		} else {
			return mismatch()
		}
	case "skewx":
		if ln != 1 {
			return mismatch()
		}
		m1 = m1.SkewX(args[0] * math.Pi / 180)
	case "skewy":
		if ln != 1 {
			return mismatch()
		}
		m1 = m1.SkewY(args[0] * math.Pi / 180)
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(args[0], args[0])
		} else if ln == 2 {
			m1 = m1.Scale(args[0], args[1])
		} else {
			return mismatch()
		}
	case "matrix":
		if ln != 6 {
			return mismatch()
		}
		m1 = m1.Mult(Matrix2D{
			A: args[0],
			B: args[1],
			C: args[2],
			D: args[3],
			E: args[4],
			F: args[5],
		})
	default:
		return m1, false, nil
	}
	return m1, true, nil
}
