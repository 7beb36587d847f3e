package webgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/spheretrace"
	"github.com/gogpu/spheretrace/backend"
)

// Backend dispatches the sphere trace as a WebGPU compute workload.
// It implements backend.TraceBackend, spheretrace.Accelerator and
// spheretrace.DeviceProviderAware.
type Backend struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	kernel *TraceKernel
	logger *slog.Logger

	initialized bool
}

// init registers the backend factory on package import.
func init() {
	backend.Register(backend.BackendWebGPU, func() backend.TraceBackend {
		return New()
	})
}

// New creates a WebGPU dispatch backend. The backend stays dormant until
// a host application hands it a device via SetDeviceProvider.
func New() *Backend {
	return &Backend{logger: spheretrace.Logger()}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWebGPU
}

// SetLogger updates the logger used for device diagnostics.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l != nil {
		b.logger = l
	}
}

// SetDeviceProvider accepts a shared GPU device from a host application.
// The provider must expose raw wgpu/hal handles via HalDevice() and
// HalQueue(). The trace pipeline is (re)built on the new device.
func (b *Backend) SetDeviceProvider(provider any) error {
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("webgpu: provider does not expose HAL handles")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("webgpu: provider returned no HAL device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("webgpu: provider returned no HAL queue")
	}

	kernel, err := NewTraceKernel(device, queue)
	if err != nil {
		return err
	}

	b.mu.Lock()
	old := b.kernel
	b.device = device
	b.queue = queue
	b.kernel = kernel
	b.mu.Unlock()
	if old != nil {
		old.Destroy()
	}

	b.logger.Info("WebGPU trace pipeline ready")
	return nil
}

// Init initializes the backend. A device must have been provided via
// SetDeviceProvider; otherwise the backend reports itself unavailable so
// callers fall back to the CPU pool.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.kernel == nil {
		return fmt.Errorf("%w: no GPU device provided", backend.ErrBackendNotAvailable)
	}
	b.initialized = true
	return nil
}

// Close releases the trace pipeline. The device is owned by the host
// provider and is not touched.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.kernel != nil {
		b.kernel.Destroy()
		b.kernel = nil
	}
	b.device = nil
	b.queue = nil
	b.initialized = false
}

// Trace executes the trace kernel grid for the whole frame.
//
// HAL buffer readback is not yet exposed, so the invocation grid runs on
// CPU lanes against the converted GPU buffers (see runLanes); pipeline
// creation on the real device has already validated the shader.
func (b *Backend) Trace(spheres []spheretrace.Sphere, cfg *spheretrace.Config, frame *spheretrace.Frame) error {
	b.mu.Lock()
	kernel := b.kernel
	initialized := b.initialized
	b.mu.Unlock()

	if !initialized {
		return backend.ErrNotInitialized
	}
	if kernel == nil || !kernel.IsInitialized() {
		return spheretrace.ErrFallbackToCPU
	}

	gpuCfg := ConvertConfig(cfg, len(spheres))
	gpuScene := ConvertScene(spheres)

	b.logger.Debug("executing trace kernel on CPU lanes",
		"width", cfg.Width, "height", cfg.Height, "spheres", len(spheres))

	runLanes(gpuCfg, gpuScene, frame.Data())
	return nil
}
