package backend

import (
	"github.com/gogpu/spheretrace"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU worker-pool backend.
	BackendSoftware = "software"
	// BackendOpenCL is the name of the OpenCL device backend (backend/opencl).
	BackendOpenCL = "opencl"
	// BackendWebGPU is the name of the WebGPU compute backend (backend/webgpu).
	BackendWebGPU = "webgpu"
)

// SoftwareBackend executes the trace on a CPU worker pool, one row of
// pixels per task. It is always available and is the fallback for every
// device backend.
type SoftwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() TraceBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software dispatch backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// Trace renders the frame on the worker pool. The frame contents are
// identical to the sequential driver's for any worker count.
func (b *SoftwareBackend) Trace(spheres []spheretrace.Sphere, cfg *spheretrace.Config, frame *spheretrace.Frame) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	spheretrace.RenderParallelInto(spheres, cfg, frame)
	return nil
}
