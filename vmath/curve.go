package vmath

// CubicBezier is a cubic Bezier curve through four control points
type CubicBezier struct {
	P0, P1, P2, P3 Vec3
}

// Position evaluates the curve at t in [0, 1]
func (c CubicBezier) Position(t float64) Vec3 {
	u := 1.0 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Vec3{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
		Z: a*c.P0.Z + b*c.P1.Z + d*c.P2.Z + e*c.P3.Z,
	}
}

// StepArc builds the curve used for a foot step: endpoints at src and dst
// with both inner control points raised to height above the midpoint
func StepArc(src, dst Vec3, height float64) CubicBezier {
	center := V3Lerp(src, dst, 0.5)
	center.Y += height
	return CubicBezier{P0: src, P1: center, P2: center, P3: dst}
}
