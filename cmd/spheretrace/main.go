// Command spheretrace renders the procedural sphere scene to a PNG file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/spheretrace"
	"github.com/gogpu/spheretrace/backend"

	// Device backends register themselves on import.
	_ "github.com/gogpu/spheretrace/backend/opencl"
	_ "github.com/gogpu/spheretrace/backend/webgpu"
)

func main() {
	var (
		width   = flag.Int("width", spheretrace.DefaultWidth, "image width")
		height  = flag.Int("height", spheretrace.DefaultHeight, "image height")
		numSph  = flag.Int("spheres", spheretrace.DefaultNumSpheres, "number of spheres")
		seed    = flag.Uint("seed", spheretrace.DefaultSeed, "scene seed")
		workers = flag.Int("workers", 0, "worker count for CPU dispatch (0 = one per CPU)")
		name    = flag.String("backend", "", "dispatch backend (default: best available)")
		output  = flag.String("output", "result.png", "output file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		spheretrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := spheretrace.NewConfig(
		spheretrace.WithSize(*width, *height),
		spheretrace.WithSphereCount(*numSph),
		spheretrace.WithSeed(uint32(*seed)),
		spheretrace.WithWorkers(*workers),
	)

	// Scene generation is sequential and excluded from the timed span.
	spheres := spheretrace.GenerateSpheres(&cfg)

	b := selectBackend(*name)
	defer b.Close()
	log.Printf("Using backend: %s", b.Name())

	frame := spheretrace.NewFrame(cfg.Width, cfg.Height)

	start := time.Now()
	err := b.Trace(spheres, &cfg, frame)
	elapsed := time.Since(start)

	if err != nil {
		// Device declined mid-render; the CPU pool is all-or-nothing safe
		// to rerun.
		log.Printf("Backend %s failed (%v), re-rendering on CPU", b.Name(), err)
		start = time.Now()
		frame = spheretrace.RenderParallel(spheres, &cfg)
		elapsed = time.Since(start)
	}

	log.Printf("Execution time %d ms", elapsed.Milliseconds())

	if err := frame.SavePNG(*output); err != nil {
		log.Fatalf("Can't create image file on disk: %v", err)
	}

	log.Printf("Image saved to %s (%dx%d, %d spheres)", *output, cfg.Width, cfg.Height, len(spheres))
}

// selectBackend resolves the requested backend, or the best available one
// when none is named. Backends that fail to initialize fall back to the
// software pool, which always initializes.
func selectBackend(name string) backend.TraceBackend {
	if name != "" {
		b := backend.Get(name)
		if b == nil {
			log.Fatalf("Unknown backend %q (available: %v)", name, backend.Available())
		}
		if err := b.Init(); err != nil {
			log.Fatalf("Backend %q unavailable: %v", name, err)
		}
		return b
	}

	b, err := backend.InitDefault()
	if err == nil {
		return b
	}
	sw := backend.NewSoftwareBackend()
	if err := sw.Init(); err != nil {
		log.Fatalf("No backend available: %v", err)
	}
	return sw
}
