package spheretrace

// IntersectSphere tests the ray against one sphere. On a hit within
// (0, r.MaxT] it tightens r.MaxT to the hit distance and returns true;
// otherwise it leaves the ray untouched and returns false.
//
// Because a reported hit is always at least as close as the current bound,
// calling this for the same ray across any permutation of spheres leaves
// the final MaxT (and the last sphere to report true) identical: the test
// is order-invariant, which is what makes per-pixel work freely
// parallelizable.
func (r *Ray) IntersectSphere(s *Sphere) bool {
	// Ray origin in the sphere's local frame.
	ox := r.Origin[0] - s.Center[0]
	oy := r.Origin[1] - s.Center[1]
	oz := r.Origin[2] - s.Center[2]

	a := r.Dir[0]*r.Dir[0] + r.Dir[1]*r.Dir[1] + r.Dir[2]*r.Dir[2]
	b := 2 * (ox*r.Dir[0] + oy*r.Dir[1] + oz*r.Dir[2])
	c := ox*ox + oy*oy + oz*oz - s.Radius*s.Radius

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return false
	}

	// Entirely beyond the current closest hit, or entirely behind the
	// origin.
	if t0 > r.MaxT || t1 < 0 {
		return false
	}

	// t0 <= 0 < t1 means the origin is inside the sphere; the visible
	// surface is the far root.
	if t0 > 0 {
		r.MaxT = t0
	} else {
		r.MaxT = t1
	}
	return true
}
