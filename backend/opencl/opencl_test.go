package opencl

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/spheretrace"
	"github.com/gogpu/spheretrace/backend"
)

func TestBackendName(t *testing.T) {
	b := New()
	if got := b.Name(); got != backend.BackendOpenCL {
		t.Errorf("Name() = %q, want %q", got, backend.BackendOpenCL)
	}
}

func TestTraceBeforeInit(t *testing.T) {
	cfg := spheretrace.NewConfig(spheretrace.WithSize(4, 4), spheretrace.WithSphereCount(2))
	spheres := spheretrace.GenerateSpheres(&cfg)
	frame := spheretrace.NewFrame(cfg.Width, cfg.Height)

	b := New()
	if err := b.Trace(spheres, &cfg, frame); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Trace before Init: err = %v, want ErrNotInitialized", err)
	}
}

func TestPackSpheres(t *testing.T) {
	spheres := []spheretrace.Sphere{
		{
			Center: [3]float32{1, 2, 3},
			Radius: 4,
			Color:  [3]float32{5, 6, 7},
		},
		{
			Center: [3]float32{-1, -2, -3},
			Radius: 0.5,
			Color:  [3]float32{0.1, 0.2, 0.3},
		},
	}

	got := packSpheres(spheres)
	want := []float32{
		1, 2, 3, 4, 5, 6, 7,
		-1, -2, -3, 0.5, 0.1, 0.2, 0.3,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("packSpheres:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestPackSpheresEmpty(t *testing.T) {
	if got := packSpheres(nil); len(got) != 0 {
		t.Errorf("packSpheres(nil) = %v, want empty", got)
	}
}

// TestDeviceTraceMatchesSequential runs the kernel on a real device and
// compares the frame against the sequential driver. Skipped when no
// OpenCL runtime is installed.
func TestDeviceTraceMatchesSequential(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		if errors.Is(err, backend.ErrBackendNotAvailable) {
			t.Skipf("Skipping: %v", err)
		}
		t.Fatalf("Init: %v", err)
	}
	defer b.Close()

	cfg := spheretrace.NewConfig(
		spheretrace.WithSize(128, 96),
		spheretrace.WithSphereCount(64),
	)
	spheres := spheretrace.GenerateSpheres(&cfg)
	want := spheretrace.RenderSequential(spheres, &cfg)

	got := spheretrace.NewFrame(cfg.Width, cfg.Height)
	if err := b.Trace(spheres, &cfg, got); err != nil {
		t.Fatalf("Trace: %v", err)
	}

	if !reflect.DeepEqual(got.Data(), want.Data()) {
		t.Error("device output differs from sequential render")
	}
}

// TestRepeatedTraceReusesBuffers renders several frames on one backend,
// including a smaller scene that fits the cached buffers, and checks each
// frame against the sequential driver. Skipped when no OpenCL runtime is
// installed.
func TestRepeatedTraceReusesBuffers(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		if errors.Is(err, backend.ErrBackendNotAvailable) {
			t.Skipf("Skipping: %v", err)
		}
		t.Fatalf("Init: %v", err)
	}
	defer b.Close()

	configs := []struct {
		name          string
		width, height int
		spheres       int
	}{
		{"first", 64, 48, 32},
		{"same size again", 64, 48, 32},
		{"smaller scene", 32, 24, 8},
		{"larger scene", 96, 64, 64},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := spheretrace.NewConfig(
				spheretrace.WithSize(tc.width, tc.height),
				spheretrace.WithSphereCount(tc.spheres),
			)
			spheres := spheretrace.GenerateSpheres(&cfg)
			want := spheretrace.RenderSequential(spheres, &cfg)

			got := spheretrace.NewFrame(cfg.Width, cfg.Height)
			if err := b.Trace(spheres, &cfg, got); err != nil {
				t.Fatalf("Trace: %v", err)
			}
			if !reflect.DeepEqual(got.Data(), want.Data()) {
				t.Error("device output differs from sequential render")
			}
		})
	}
}

// TestInitIdempotent verifies Init can be called repeatedly.
func TestInitIdempotent(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		t.Skipf("Skipping: %v", err)
	}
	defer b.Close()

	if err := b.Init(); err != nil {
		t.Errorf("second Init: %v", err)
	}
}
