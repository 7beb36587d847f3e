package spheretrace

import (
	"runtime"
	"sync"
)

// TracePixel resolves the color of pixel (i, j): it builds the pixel's
// orthographic ray, tests it against every sphere in index order, and
// returns the color of the closest hit, or the background color when the
// ray hits nothing.
//
// The last sphere to report a hit is the closest one: IntersectSphere only
// ever tightens the ray's bound, so a later success is always an
// equal-or-closer hit than an earlier one.
//
// TracePixel is a pure function of its arguments. Every render driver —
// the sequential loop, the worker pool and the device kernels — computes
// exactly this, which is what guarantees identical frames across
// strategies.
func TracePixel(spheres []Sphere, cfg *Config, i, j int) (r, g, b float32) {
	ray := cfg.RayThrough(i, j)

	idx := -1
	for k := range spheres {
		if ray.IntersectSphere(&spheres[k]) {
			idx = k
		}
	}

	if idx < 0 {
		return cfg.Background[0], cfg.Background[1], cfg.Background[2]
	}
	s := &spheres[idx]
	return s.Color[0], s.Color[1], s.Color[2]
}

// RenderSequential renders the frame on the calling goroutine, pixels in
// row-major order.
func RenderSequential(spheres []Sphere, cfg *Config) *Frame {
	frame := NewFrame(cfg.Width, cfg.Height)
	for j := 0; j < cfg.Height; j++ {
		for i := 0; i < cfg.Width; i++ {
			r, g, b := TracePixel(spheres, cfg, i, j)
			frame.SetPixel(i, j, r, g, b)
		}
	}
	return frame
}

// RenderParallel renders the frame on a worker pool, one row of pixels per
// task. Per-pixel work is fully independent — the scene is read-only and
// every task writes a disjoint slice of the frame — so the result is
// identical to RenderSequential for any worker count.
func RenderParallel(spheres []Sphere, cfg *Config) *Frame {
	frame := NewFrame(cfg.Width, cfg.Height)
	RenderParallelInto(spheres, cfg, frame)
	return frame
}

// RenderParallelInto is RenderParallel writing into a caller-owned frame.
// The frame must match cfg.Width x cfg.Height.
func RenderParallelInto(spheres []Sphere, cfg *Config, frame *Frame) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rows := make(chan int, cfg.Height)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				for i := 0; i < cfg.Width; i++ {
					r, g, b := TracePixel(spheres, cfg, i, j)
					frame.SetPixel(i, j, r, g, b)
				}
			}
		}()
	}

	for j := 0; j < cfg.Height; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()
}

// Render renders the frame with the best available strategy: the
// registered device accelerator if any, falling back to the CPU worker
// pool when no accelerator is registered or the device declines the work.
//
// All strategies call the same per-pixel function, so the returned frame
// is the same whichever path executes.
func Render(spheres []Sphere, cfg *Config) *Frame {
	if a := RegisteredAccelerator(); a != nil {
		frame := NewFrame(cfg.Width, cfg.Height)
		err := a.Trace(spheres, cfg, frame)
		if err == nil {
			return frame
		}
		Logger().Warn("accelerator declined render, falling back to CPU",
			"accelerator", a.Name(), "err", err)
	}
	return RenderParallel(spheres, cfg)
}
