package opencl

import (
	"fmt"
	"log/slog"
	"sync"

	cl "github.com/CyberChainXyz/go-opencl"

	"github.com/gogpu/spheretrace"
	"github.com/gogpu/spheretrace/backend"
)

// floatsPerSphere is the packed sphere stride in the device buffer:
// cx, cy, cz, radius, r, g, b.
const floatsPerSphere = 7

// Backend dispatches the trace kernel to an OpenCL device.
// It implements both backend.TraceBackend and spheretrace.Accelerator.
type Backend struct {
	mu sync.Mutex

	device *cl.OpenCLDevice
	runner *cl.OpenCLRunner
	logger *slog.Logger

	// Device buffers are cached across Trace calls and grown only when
	// the scene or frame outsizes them. The runner releases them on Free.
	sceneBuf   *cl.Buffer
	outBuf     *cl.Buffer
	sceneBytes int
	outBytes   int

	initialized bool
}

// init registers the backend factory and, when a device is usable,
// registers the backend as the device accelerator.
func init() {
	backend.Register(backend.BackendOpenCL, func() backend.TraceBackend {
		return New()
	})

	a := New()
	if err := spheretrace.RegisterAccelerator(a); err != nil {
		spheretrace.Logger().Warn("OpenCL accelerator not available", "err", err)
	}
}

// New creates an OpenCL dispatch backend. The device is not touched until
// Init.
func New() *Backend {
	return &Backend{logger: spheretrace.Logger()}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendOpenCL
}

// SetLogger updates the logger used for device diagnostics.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l != nil {
		b.logger = l
	}
}

// Init enumerates OpenCL platforms, picks the first device, and compiles
// the trace kernel. It returns backend.ErrBackendNotAvailable when no
// OpenCL runtime or device is present.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	device, err := firstDevice()
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrBackendNotAvailable, err)
	}

	runner, err := device.InitRunner()
	if err != nil {
		return fmt.Errorf("opencl: failed to init runner: %w", err)
	}

	if err := runner.CompileKernels([]string{traceKernel}, []string{"trace"}, ""); err != nil {
		runner.Free()
		return fmt.Errorf("opencl: failed to compile trace kernel: %w", err)
	}

	b.device = device
	b.runner = runner
	b.initialized = true
	b.logger.Info("OpenCL device selected", "device", device.Name)
	return nil
}

// Close releases the device runner.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.runner != nil {
		b.runner.Free()
		b.runner = nil
	}
	b.sceneBuf, b.outBuf = nil, nil
	b.sceneBytes, b.outBytes = 0, 0
	b.device = nil
	b.initialized = false
}

// Trace renders the frame on the device: the scene is uploaded read-only,
// the kernel runs one work-item per pixel over a width x height range, and
// the frame is read back after a blocking run.
func (b *Backend) Trace(spheres []spheretrace.Sphere, cfg *spheretrace.Config, frame *spheretrace.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}

	sceneData := packSpheres(spheres)
	out := frame.Data()

	if err := b.ensureBuffers(len(sceneData)*4, len(out)*4); err != nil {
		return err
	}
	if err := cl.WriteBuffer(b.runner, 0, b.sceneBuf, sceneData, true); err != nil {
		return fmt.Errorf("opencl: failed to upload scene: %w", err)
	}

	numSpheres := uint32(len(spheres))
	width := uint32(cfg.Width)
	height := uint32(cfg.Height)
	left, bottom := cfg.Left, cfg.Bottom
	planeW, planeH := cfg.PlaneWidth, cfg.PlaneHeight
	near, far := cfg.Near, cfg.Far
	bgR, bgG, bgB := cfg.Background[0], cfg.Background[1], cfg.Background[2]

	args := []cl.KernelParam{
		cl.BufferParam(b.sceneBuf),
		cl.Param(&numSpheres),
		cl.BufferParam(b.outBuf),
		cl.Param(&width),
		cl.Param(&height),
		cl.Param(&left),
		cl.Param(&bottom),
		cl.Param(&planeW),
		cl.Param(&planeH),
		cl.Param(&near),
		cl.Param(&far),
		cl.Param(&bgR),
		cl.Param(&bgG),
		cl.Param(&bgB),
	}

	b.logger.Debug("dispatching trace kernel",
		"width", cfg.Width, "height", cfg.Height, "spheres", len(spheres))

	global := []uint64{uint64(width), uint64(height)}
	if err := b.runner.RunKernel("trace", 2, nil, global, nil, args, true); err != nil {
		return fmt.Errorf("opencl: trace kernel failed: %w", err)
	}

	if err := cl.ReadBuffer(b.runner, 0, b.outBuf, out); err != nil {
		return fmt.Errorf("opencl: failed to read frame buffer: %w", err)
	}

	return nil
}

// ensureBuffers makes the cached device buffers at least the given sizes,
// allocating only when a call needs more than any earlier one.
func (b *Backend) ensureBuffers(sceneBytes, outBytes int) error {
	if b.sceneBuf == nil || b.sceneBytes < sceneBytes {
		buf, err := b.runner.CreateEmptyBuffer(cl.READ_ONLY, sceneBytes)
		if err != nil {
			return fmt.Errorf("opencl: failed to create scene buffer: %w", err)
		}
		b.sceneBuf, b.sceneBytes = buf, sceneBytes
	}
	if b.outBuf == nil || b.outBytes < outBytes {
		buf, err := b.runner.CreateEmptyBuffer(cl.WRITE_ONLY, outBytes)
		if err != nil {
			return fmt.Errorf("opencl: failed to create frame buffer: %w", err)
		}
		b.outBuf, b.outBytes = buf, outBytes
	}
	return nil
}

// firstDevice returns the first device of the first OpenCL platform.
func firstDevice() (*cl.OpenCLDevice, error) {
	info, err := cl.Info()
	if err != nil {
		return nil, err
	}
	for _, platform := range info.Platforms {
		if len(platform.Devices) > 0 {
			return platform.Devices[0], nil
		}
	}
	return nil, fmt.Errorf("no OpenCL devices found")
}

// packSpheres flattens the scene into the kernel's buffer layout.
func packSpheres(spheres []spheretrace.Sphere) []float32 {
	data := make([]float32, 0, len(spheres)*floatsPerSphere)
	for i := range spheres {
		s := &spheres[i]
		data = append(data,
			s.Center[0], s.Center[1], s.Center[2],
			s.Radius,
			s.Color[0], s.Color[1], s.Color[2],
		)
	}
	return data
}
