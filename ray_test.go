package spheretrace

import "testing"

func TestRayThrough(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		i, j int
		x, y float32
	}{
		{"lower-left pixel", 0, 0, -10 + (20.0/2048)*0.5, -10 + (20.0/2048)*0.5},
		{"center pixel", 1024, 1024, -10 + (20.0/2048)*1024.5, -10 + (20.0/2048)*1024.5},
		{"upper-right pixel", 2047, 2047, -10 + (20.0/2048)*2047.5, -10 + (20.0/2048)*2047.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cfg.RayThrough(tt.i, tt.j)

			if r.Origin[0] != tt.x || r.Origin[1] != tt.y {
				t.Errorf("origin = (%v, %v), want (%v, %v)", r.Origin[0], r.Origin[1], tt.x, tt.y)
			}
			if r.Origin[2] != cfg.Near {
				t.Errorf("origin.z = %v, want near plane %v", r.Origin[2], cfg.Near)
			}
			if r.Dir != [3]float32{0, 0, 1} {
				t.Errorf("dir = %v, want (0, 0, 1)", r.Dir)
			}
			if r.MaxT != cfg.Far-cfg.Near {
				t.Errorf("MaxT = %v, want %v", r.MaxT, cfg.Far-cfg.Near)
			}
		})
	}
}

func TestRayThroughConstantDirection(t *testing.T) {
	// Orthographic camera: every pixel's ray is parallel.
	cfg := NewConfig(WithSize(64, 64))
	for j := 0; j < cfg.Height; j += 13 {
		for i := 0; i < cfg.Width; i += 13 {
			r := cfg.RayThrough(i, j)
			if r.Dir != [3]float32{0, 0, 1} {
				t.Fatalf("pixel (%d,%d): dir = %v", i, j, r.Dir)
			}
		}
	}
}
