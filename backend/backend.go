package backend

import (
	"errors"

	"github.com/gogpu/spheretrace"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// TraceBackend is the interface for render dispatch backends.
// It abstracts how the per-pixel trace is executed, allowing the renderer
// to support multiple strategies (CPU worker pool, OpenCL device, WebGPU
// compute) behind one contract: one independent unit of work per pixel,
// scene read-only, frame fully written on return.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type TraceBackend interface {
	// Name returns the backend identifier (e.g., "software", "opencl").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Trace renders every pixel of the frame for the given scene and
	// configuration. It returns once all work-items have completed and
	// the results are visible in the frame.
	Trace(spheres []spheretrace.Sphere, cfg *spheretrace.Config, frame *spheretrace.Frame) error
}
