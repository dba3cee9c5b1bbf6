package svgpath

import (
	"math"
)

// This file implements the evaluation of curves
// into fixed resolution point samples.

// DefaultSteps is the number of samples used to flatten
// Bézier curves and elliptical arcs. It matches the
// resolution of coarse displays rather than the curve length.
const DefaultSteps = 100

// quadratic polynomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// QuadAt evaluates the quadratic curve (p0, p1, p2) at t.
func QuadAt(p0, p1, p2 Vec, t float64) Vec {
	return Vec{X: bezierQuad(p0.X, p1.X, p2.X, t), Y: bezierQuad(p0.Y, p1.Y, p2.Y, t)}
}

// CubicAt evaluates the cubic curve (p0, p1, p2, p3) at t.
func CubicAt(p0, p1, p2, p3 Vec, t float64) Vec {
	return Vec{
		X: bezierSpline(p0.X, p1.X, p2.X, p3.X, t),
		Y: bezierSpline(p0.Y, p1.Y, p2.Y, p3.Y, t),
	}
}

// SampleQuad returns `steps` samples at t = i/steps, for i in [0, steps).
// The end point is not included: it is the start of the next segment.
func SampleQuad(p0, p1, p2 Vec, steps int) []Vec {
	out := make([]Vec, steps)
	for i := range out {
		out[i] = QuadAt(p0, p1, p2, float64(i)/float64(steps))
	}
	return out
}

// SampleCubic is the same as SampleQuad, for a cubic curve.
func SampleCubic(p0, p1, p2, p3 Vec, steps int) []Vec {
	out := make([]Vec, steps)
	for i := range out {
		out[i] = CubicAt(p0, p1, p2, p3, float64(i)/float64(steps))
	}
	return out
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// ArcCenter is the center parameterization of an elliptical arc.
type ArcCenter struct {
	Center     Vec
	Rx, Ry     float64 // radii, possibly scaled up to reach the end point
	Start      float64 // angle of the start point, in radians
	Delta      float64 // swept angle, positive when sweep is set
	XRotation  float64 // in radians
	Degenerate bool    // the arc is a straight line (zero radius)
}

// FindArcCenter converts the endpoint description of an SVG arc
// into its center description. The delta is rotated into the ellipse
// frame, where radii too small to span the end points are scaled up
// uniformly. The center is chosen according to largeArc == sweep, and
// the swept angle is adjusted so that its sign follows `sweep`.
// The end points must differ.
func FindArcCenter(start Vec, rx, ry, xRotDeg float64, largeArc, sweep bool, end Vec) ArcCenter {
	rx, ry = math.Abs(rx), math.Abs(ry)
	rot := xRotDeg * math.Pi / 180
	if rx == 0 || ry == 0 {
		return ArcCenter{Rx: rx, Ry: ry, XRotation: rot, Degenerate: true}
	}
	sin, cos := math.Sincos(rot)

	dx2, dy2 := (start.X-end.X)/2, (start.Y-end.Y)/2
	x1p := cos*dx2 + sin*dy2
	y1p := -sin*dx2 + cos*dy2

	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		lambda = math.Sqrt(lambda)
		rx *= lambda
		ry *= lambda
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	var factor float64
	if num > 0 && den > 0 { // num may be slightly negative after the lambda correction
		factor = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		factor = -factor
	}
	cxp := factor * rx * y1p / ry
	cyp := -factor * ry * x1p / rx

	center := Vec{
		X: cos*cxp - sin*cyp + (start.X+end.X)/2,
		Y: sin*cxp + cos*cyp + (start.Y+end.Y)/2,
	}

	startAngle := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	delta := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx) - startAngle
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}
	return ArcCenter{Center: center, Rx: rx, Ry: ry, Start: startAngle, Delta: delta, XRotation: rot}
}

// SampleArc flattens an SVG elliptical arc from start to end into
// numPoints+1 samples, both end points included.
// Identical end points omit the arc and nil is returned. A zero radius
// turns the arc into a straight line, sampled with the same count.
func SampleArc(start Vec, rx, ry, xRotDeg float64, largeArc, sweep bool, end Vec, numPoints int) []Vec {
	if start == end {
		return nil
	}
	if numPoints < 1 {
		numPoints = 1
	}
	out := make([]Vec, numPoints+1)
	arc := FindArcCenter(start, rx, ry, xRotDeg, largeArc, sweep, end)
	if arc.Degenerate {
		for i := range out {
			t := float64(i) / float64(numPoints)
			out[i] = Vec{X: start.X + (end.X-start.X)*t, Y: start.Y + (end.Y-start.Y)*t}
		}
		return out
	}
	sin, cos := math.Sincos(arc.XRotation)
	for i := range out {
		eta := arc.Start + arc.Delta*float64(i)/float64(numPoints)
		out[i].X, out[i].Y = ellipsePointAt(arc.Rx, arc.Ry, sin, cos, eta, arc.Center.X, arc.Center.Y)
	}
	// Just makes the end points exact; no roundoff error
	out[0], out[numPoints] = start, end
	return out
}
