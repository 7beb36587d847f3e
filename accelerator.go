package spheretrace

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the device accelerator cannot handle this
// render. The caller should transparently fall back to CPU rendering.
var ErrFallbackToCPU = errors.New("spheretrace: falling back to CPU rendering")

// Accelerator is an optional compute-device render provider.
//
// When registered via RegisterAccelerator, Render tries the device first.
// If the accelerator returns ErrFallbackToCPU or any other error, the
// frame is re-rendered on the CPU worker pool instead.
//
// Implementations are provided by device backend packages. Users opt in
// via blank import:
//
//	import _ "github.com/gogpu/spheretrace/backend/opencl" // enable OpenCL dispatch
type Accelerator interface {
	// Name returns the accelerator name (e.g., "opencl", "webgpu").
	Name() string

	// Init initializes device resources. Called once during registration.
	Init() error

	// Close releases device resources.
	Close()

	// Trace renders the whole frame on the device: one work-item per
	// pixel, scene read-only, each work-item writing only its own pixel.
	// Trace returns after every work-item has completed and the results
	// are visible in the frame.
	Trace(spheres []Sphere, cfg *Config, frame *Frame) error
}

// DeviceProviderAware is an optional interface for accelerators that can
// share a GPU device with an external provider (e.g., a host application
// window). When SetDeviceProvider is called, the accelerator reuses the
// provided device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator registers a device accelerator for optional
// device-side rendering.
//
// Only one accelerator can be registered. Subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration; if it fails, the accelerator is not registered and the
// error is returned.
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("spheretrace: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// UnregisterAccelerator removes and closes the registered accelerator.
// This is useful for testing.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// RegisteredAccelerator returns the currently registered accelerator, or
// nil if none.
func RegisteredAccelerator() Accelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator, enabling GPU device sharing. If no accelerator is
// registered or it doesn't support device sharing, this is a no-op.
func SetAcceleratorDeviceProvider(provider any) error {
	a := RegisteredAccelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
