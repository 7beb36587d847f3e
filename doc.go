// Package spheretrace renders a procedurally generated field of opaque
// spheres under an orthographic camera.
//
// # Overview
//
// spheretrace is a deterministic single-frame batch renderer. A fixed seed
// drives a scene builder that places a configurable number of spheres, each
// with its own center, radius and flat color; one parallel ray is traced
// through every pixel of the image plane and the closest intersected sphere
// decides the pixel color. Given the same configuration the output is
// bit-identical across runs and across execution backends.
//
// # Quick Start
//
//	import "github.com/gogpu/spheretrace"
//
//	cfg := spheretrace.DefaultConfig()
//	spheres := spheretrace.GenerateSpheres(&cfg)
//
//	frame := spheretrace.RenderParallel(spheres, &cfg)
//
//	// Save to PNG
//	frame.SavePNG("result.png")
//
// # Execution strategies
//
// The per-pixel trace is a pure function (TracePixel); every driver calls
// the same function, so all strategies produce the same frame:
//
//   - RenderSequential: one goroutine, pixels in row-major order.
//   - RenderParallel: a worker pool with one row of pixels per task.
//   - backend/: named dispatch backends (software worker pool, OpenCL
//     device dispatch, WebGPU compute pipeline) behind a registry.
//
// Device backends register themselves as an Accelerator; Render tries the
// accelerator first and transparently falls back to the CPU worker pool
// when the device is unavailable.
//
// # Determinism
//
// Scene generation is strictly sequential: each sphere consumes exactly
// seven draws from a seeded 32-bit generator in a fixed order. Rendering
// is a data-parallel map over pixels with no shared mutable state, so the
// frame is invariant to worker count and scheduling.
package spheretrace

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
