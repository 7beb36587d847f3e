package spheretrace

import "math"

// solveQuadratic solves a*x^2 + b*x + c = 0 in single precision.
// It returns the two real roots with x1 <= x2 (given a > 0) and ok=true,
// or ok=false when the discriminant is negative and no real roots exist.
//
// All arithmetic stays in float32. The intersection test feeds this with
// a = |direction|^2 of a non-zero direction, so a is never zero here.
func solveQuadratic(a, b, c float32) (x1, x2 float32, ok bool) {
	d := b*b - 4*a*c
	if d < 0 {
		return 0, 0, false
	}
	sq := float32(math.Sqrt(float64(d)))
	den := 1 / (2 * a)
	x1 = (-b - sq) * den
	x2 = (-b + sq) * den
	return x1, x2, true
}
