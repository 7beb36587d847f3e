package spheretrace

// Default configuration constants. These match the reference scene: a
// 2048x2048 frame of 512 spheres scattered over a 20x20 image plane.
const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 2048
	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 2048
	// DefaultNumSpheres is the default number of generated spheres.
	DefaultNumSpheres = 512
	// DefaultSeed is the default scene seed.
	DefaultSeed = 0x88e8fff4
)

// Config holds the full render configuration: image dimensions, scene
// parameters and the orthographic camera frustum. A Config is immutable
// once handed to GenerateSpheres or a render driver; the zero value is not
// usable, start from DefaultConfig.
type Config struct {
	// Width and Height are the output image dimensions in pixels.
	Width  int
	Height int

	// NumSpheres is the number of spheres the scene builder generates.
	NumSpheres int

	// Seed initializes the deterministic random source. The same seed
	// always produces the same scene.
	Seed uint32

	// Left and Bottom are the world-space coordinates of the lower-left
	// corner of the image plane; PlaneWidth and PlaneHeight are its
	// extents. Pixel (i, j) maps to the center of its plane cell.
	Left, Bottom            float32
	PlaneWidth, PlaneHeight float32

	// Near and Far are the clip planes along +Z. Rays start at Near and
	// accept hits up to Far-Near away.
	Near, Far float32

	// Background is the color written for pixels whose ray hits nothing.
	Background [3]float32

	// Workers is the worker count for parallel drivers. Zero means one
	// worker per CPU.
	Workers int
}

// DefaultConfig returns the reference configuration: 2048x2048 pixels,
// 512 spheres, seed 0x88e8fff4, image plane [-10,10]x[-10,10], clip planes
// at -10 and 10, background (0.1, 0.1, 0.1).
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		NumSpheres:  DefaultNumSpheres,
		Seed:        DefaultSeed,
		Left:        -10,
		Bottom:      -10,
		PlaneWidth:  20,
		PlaneHeight: 20,
		Near:        -10,
		Far:         10,
		Background:  [3]float32{0.1, 0.1, 0.1},
	}
}

// Option configures a Config during creation.
// Use functional options to customize rendering behavior.
//
// Example:
//
//	// Reference configuration
//	cfg := spheretrace.NewConfig()
//
//	// Small deterministic test frame
//	cfg := spheretrace.NewConfig(
//	    spheretrace.WithSize(256, 256),
//	    spheretrace.WithSphereCount(32),
//	)
type Option func(*Config)

// NewConfig builds a Config from DefaultConfig plus the given options.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSize sets the output image dimensions in pixels.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSphereCount sets the number of generated spheres.
func WithSphereCount(n int) Option {
	return func(c *Config) {
		c.NumSpheres = n
	}
}

// WithSeed sets the scene seed.
func WithSeed(seed uint32) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithPlane sets the image plane: lower-left corner and extents in world
// space.
func WithPlane(left, bottom, width, height float32) Option {
	return func(c *Config) {
		c.Left = left
		c.Bottom = bottom
		c.PlaneWidth = width
		c.PlaneHeight = height
	}
}

// WithClip sets the near and far clip planes.
func WithClip(near, far float32) Option {
	return func(c *Config) {
		c.Near = near
		c.Far = far
	}
}

// WithBackground sets the color used when a ray hits no sphere.
func WithBackground(r, g, b float32) Option {
	return func(c *Config) {
		c.Background = [3]float32{r, g, b}
	}
}

// WithWorkers sets the worker count for parallel drivers.
// Zero selects one worker per CPU.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}
