package spheretrace

// Sphere is one scene object: an opaque sphere with a flat albedo.
// Spheres are immutable once generated; every consumer reads them in place.
type Sphere struct {
	// Center is the sphere center in world space.
	Center [3]float32
	// Radius is the sphere radius, always > 0.
	Radius float32
	// Color is the flat RGB albedo, each channel in [0, 1).
	Color [3]float32
}

// GenerateSpheres builds the scene: cfg.NumSpheres spheres populated in
// strict index order, each consuming exactly seven draws from the seeded
// random source in the order cx, cy, cz, radius, r, g, b.
//
// Generation is intentionally sequential. The whole scene derives from one
// random stream, and the draw order is part of the output contract: two
// runs with the same Config produce identical sphere arrays.
func GenerateSpheres(cfg *Config) []Sphere {
	rng := NewRand(cfg.Seed)
	spheres := make([]Sphere, cfg.NumSpheres)
	for i := range spheres {
		spheres[i] = generateSphere(rng)
	}
	return spheres
}

// generateSphere draws one sphere. Centers land in [-10,10)x[-10,10) on
// the image plane axes and [-5,15) in depth; radii in [0.15, 1.65).
func generateSphere(rng *Rand) Sphere {
	var s Sphere
	s.Center[0] = rng.Float32()*20 - 10
	s.Center[1] = rng.Float32()*20 - 10
	s.Center[2] = rng.Float32()*20 - 5
	s.Radius = (rng.Float32() + 0.1) * 1.5
	s.Color[0] = rng.Float32()
	s.Color[1] = rng.Float32()
	s.Color[2] = rng.Float32()
	return s
}
