package spheretrace

// Ray is a per-pixel transient: origin, direction, and the distance of the
// nearest intersection found so far. One Ray is built and consumed entirely
// within the processing of a single pixel; it is never shared.
type Ray struct {
	// Origin is the ray starting point in world space.
	Origin [3]float32
	// Dir is the ray direction. The orthographic camera fixes it to
	// (0, 0, 1) for every pixel.
	Dir [3]float32
	// MaxT is the current closest-hit bound. Intersection tests only ever
	// tighten it, never move it back.
	MaxT float32
}

// RayThrough builds the orthographic camera ray for pixel (i, j): origin at
// the center of the pixel's image-plane cell on the near plane, direction
// (0, 0, 1), closest-hit bound spanning the whole clip range.
func (c *Config) RayThrough(i, j int) Ray {
	return Ray{
		Origin: [3]float32{
			c.Left + (c.PlaneWidth/float32(c.Width))*(float32(i)+0.5),
			c.Bottom + (c.PlaneHeight/float32(c.Height))*(float32(j)+0.5),
			c.Near,
		},
		Dir:  [3]float32{0, 0, 1},
		MaxT: c.Far - c.Near,
	}
}
