package webgpu

import (
	"math"
	"runtime"
	"sync"
)

// runLanes executes the trace kernel's invocation grid on CPU lanes,
// reading the same GPU-layout data the shader would (mirrors the WGSL
// algorithm). This serves as reference implementation and as the
// execution path while HAL buffer readback is pending.
//
// Workgroup rows are distributed over one worker per CPU; every lane
// writes only its own pixel, so the output is invariant to scheduling.
func runLanes(cfg GPUTraceConfig, spheres []GPUSphere, out []float32) {
	groupsX := (int(cfg.Width) + workgroupDim - 1) / workgroupDim
	groupsY := (int(cfg.Height) + workgroupDim - 1) / workgroupDim

	rows := make(chan int, groupsY)
	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gy := range rows {
				for gx := 0; gx < groupsX; gx++ {
					runWorkgroup(cfg, spheres, out, gx, gy)
				}
			}
		}()
	}

	for gy := 0; gy < groupsY; gy++ {
		rows <- gy
	}
	close(rows)
	wg.Wait()
}

// runWorkgroup executes all lanes of one 8x8 workgroup.
func runWorkgroup(cfg GPUTraceConfig, spheres []GPUSphere, out []float32, gx, gy int) {
	for ly := 0; ly < workgroupDim; ly++ {
		for lx := 0; lx < workgroupDim; lx++ {
			i := uint32(gx*workgroupDim + lx)
			j := uint32(gy*workgroupDim + ly)
			traceLane(cfg, spheres, out, i, j)
		}
	}
}

// traceLane is one shader invocation: resolve pixel (i, j).
// Mirrors cs_trace in trace.wgsl statement for statement.
func traceLane(cfg GPUTraceConfig, spheres []GPUSphere, out []float32, i, j uint32) {
	if i >= cfg.Width || j >= cfg.Height {
		return
	}

	ox := cfg.Left + (cfg.PlaneW/float32(cfg.Width))*(float32(i)+0.5)
	oy := cfg.Bottom + (cfg.PlaneH/float32(cfg.Height))*(float32(j)+0.5)
	oz := cfg.Near
	maxt := cfg.Far - cfg.Near

	idx := -1
	for k := uint32(0); k < cfg.NumSpheres; k++ {
		s := &spheres[k]
		lx := ox - s.CenterX
		ly := oy - s.CenterY
		lz := oz - s.CenterZ
		// Direction is (0, 0, 1): a = 1, b = 2*lz.
		b := 2 * lz
		c := lx*lx + ly*ly + lz*lz - s.Radius*s.Radius
		d := b*b - 4*c
		if d < 0 {
			continue
		}
		sq := float32(math.Sqrt(float64(d)))
		t0 := (-b - sq) * 0.5
		t1 := (-b + sq) * 0.5
		if t0 > maxt || t1 < 0 {
			continue
		}
		if t0 > 0 {
			maxt = t0
		} else {
			maxt = t1
		}
		idx = int(k)
	}

	p := (j*cfg.Width + i) * 3
	if idx >= 0 {
		s := &spheres[idx]
		out[p] = s.ColorR
		out[p+1] = s.ColorG
		out[p+2] = s.ColorB
	} else {
		out[p] = cfg.Background[0]
		out[p+1] = cfg.Background[1]
		out[p+2] = cfg.Background[2]
	}
}
