package webgpu

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/spheretrace"
)

//go:embed shaders/trace.wgsl
var traceShaderWGSL string

// workgroupDim is the workgroup edge length.
// Must match @workgroup_size in trace.wgsl.
const workgroupDim = 8

// GPUSphere is the GPU-compatible layout of spheretrace.Sphere.
// Must match the Sphere struct in trace.wgsl (vec3 + f32 pairs, 32 bytes).
type GPUSphere struct {
	CenterX float32
	CenterY float32
	CenterZ float32
	Radius  float32
	ColorR  float32
	ColorG  float32
	ColorB  float32
	Padding float32 // Padding for vec3 alignment
}

// GPUTraceConfig is the uniform block for the trace kernel.
// Must match Config in trace.wgsl (64 bytes).
type GPUTraceConfig struct {
	Width      uint32
	Height     uint32
	NumSpheres uint32
	Padding0   uint32
	Left       float32
	Bottom     float32
	PlaneW     float32
	PlaneH     float32
	Near       float32
	Far        float32
	Padding1   float32
	Padding2   float32
	Background [4]float32
}

// TraceKernel owns the compute pipeline for the sphere trace.
// It compiles the WGSL shader, creates bind group layouts, and manages
// the pipeline on the provided device.
type TraceKernel struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	tracePipeline hal.ComputePipeline
	shaderModule  hal.ShaderModule

	pipelineLayout   hal.PipelineLayout
	inputBindLayout  hal.BindGroupLayout
	outputBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	initialized bool
	shaderReady bool
}

// NewTraceKernel compiles the trace shader and creates the compute
// pipeline on the given device. Returns an error if GPU compute is not
// supported.
func NewTraceKernel(device hal.Device, queue hal.Queue) (*TraceKernel, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("webgpu: device and queue are required")
	}

	k := &TraceKernel{
		device: device,
		queue:  queue,
	}

	if err := k.init(); err != nil {
		k.Destroy()
		return nil, err
	}

	return k, nil
}

// init initializes GPU resources (pipeline, layouts).
func (k *TraceKernel) init() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Compile WGSL to SPIR-V
	spirvBytes, err := naga.Compile(traceShaderWGSL)
	if err != nil {
		return fmt.Errorf("webgpu: failed to compile trace shader: %w", err)
	}

	k.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range k.spirvCode {
		k.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	k.shaderReady = true

	shaderModule, err := k.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "trace_shader",
		Source: hal.ShaderSource{
			SPIRV: k.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("webgpu: failed to create shader module: %w", err)
	}
	k.shaderModule = shaderModule

	if err := k.createBindGroupLayouts(); err != nil {
		return err
	}
	if err := k.createPipelineLayout(); err != nil {
		return err
	}
	if err := k.createPipeline(); err != nil {
		return err
	}

	k.initialized = true
	return nil
}

// createBindGroupLayouts creates the bind group layouts for the pipeline.
func (k *TraceKernel) createBindGroupLayouts() error {
	// Input bind group layout (group 0): config uniform + scene buffer
	inputLayout, err := k.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "trace_input_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: 64, // sizeof(GPUTraceConfig)
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("webgpu: failed to create input bind group layout: %w", err)
	}
	k.inputBindLayout = inputLayout

	// Output bind group layout (group 1): frame buffer
	outputLayout, err := k.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "trace_output_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("webgpu: failed to create output bind group layout: %w", err)
	}
	k.outputBindLayout = outputLayout

	return nil
}

// createPipelineLayout creates the pipeline layout.
func (k *TraceKernel) createPipelineLayout() error {
	layout, err := k.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "trace_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{k.inputBindLayout, k.outputBindLayout},
	})
	if err != nil {
		return fmt.Errorf("webgpu: failed to create pipeline layout: %w", err)
	}
	k.pipelineLayout = layout
	return nil
}

// createPipeline creates the trace compute pipeline.
func (k *TraceKernel) createPipeline() error {
	pipeline, err := k.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "trace_pipeline",
		Layout: k.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     k.shaderModule,
			EntryPoint: "cs_trace",
		},
	})
	if err != nil {
		return fmt.Errorf("webgpu: failed to create trace pipeline: %w", err)
	}
	k.tracePipeline = pipeline
	return nil
}

// IsInitialized returns whether the kernel is initialized.
func (k *TraceKernel) IsInitialized() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.initialized
}

// IsShaderReady returns whether the shader compiled successfully.
func (k *TraceKernel) IsShaderReady() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.shaderReady
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (k *TraceKernel) SPIRVCode() []uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.spirvCode
}

// Destroy releases all GPU resources.
func (k *TraceKernel) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.device == nil {
		return
	}

	if k.tracePipeline != nil {
		k.device.DestroyComputePipeline(k.tracePipeline)
		k.tracePipeline = nil
	}
	if k.pipelineLayout != nil {
		k.device.DestroyPipelineLayout(k.pipelineLayout)
		k.pipelineLayout = nil
	}
	if k.inputBindLayout != nil {
		k.device.DestroyBindGroupLayout(k.inputBindLayout)
		k.inputBindLayout = nil
	}
	if k.outputBindLayout != nil {
		k.device.DestroyBindGroupLayout(k.outputBindLayout)
		k.outputBindLayout = nil
	}
	if k.shaderModule != nil {
		k.device.DestroyShaderModule(k.shaderModule)
		k.shaderModule = nil
	}

	k.initialized = false
}

// ConvertScene converts CPU spheres to the GPU buffer layout.
func ConvertScene(spheres []spheretrace.Sphere) []GPUSphere {
	result := make([]GPUSphere, len(spheres))
	for i := range spheres {
		s := &spheres[i]
		result[i] = GPUSphere{
			CenterX: s.Center[0],
			CenterY: s.Center[1],
			CenterZ: s.Center[2],
			Radius:  s.Radius,
			ColorR:  s.Color[0],
			ColorG:  s.Color[1],
			ColorB:  s.Color[2],
		}
	}
	return result
}

// ConvertConfig converts a render Config to the kernel uniform layout.
func ConvertConfig(cfg *spheretrace.Config, numSpheres int) GPUTraceConfig {
	//nolint:gosec // dimensions and sphere count are bounded configuration values
	return GPUTraceConfig{
		Width:      uint32(cfg.Width),
		Height:     uint32(cfg.Height),
		NumSpheres: uint32(numSpheres),
		Left:       cfg.Left,
		Bottom:     cfg.Bottom,
		PlaneW:     cfg.PlaneWidth,
		PlaneH:     cfg.PlaneHeight,
		Near:       cfg.Near,
		Far:        cfg.Far,
		Background: [4]float32{cfg.Background[0], cfg.Background[1], cfg.Background[2], 1},
	}
}

// Byte serialization helpers (for GPU buffer upload)

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}

func sceneToBytes(spheres []GPUSphere) []byte {
	buf := make([]byte, len(spheres)*32)
	for i, s := range spheres {
		off := i * 32
		writeFloat32(buf, off+0, s.CenterX)
		writeFloat32(buf, off+4, s.CenterY)
		writeFloat32(buf, off+8, s.CenterZ)
		writeFloat32(buf, off+12, s.Radius)
		writeFloat32(buf, off+16, s.ColorR)
		writeFloat32(buf, off+20, s.ColorG)
		writeFloat32(buf, off+24, s.ColorB)
		writeFloat32(buf, off+28, s.Padding)
	}
	return buf
}

func configToBytes(c GPUTraceConfig) []byte {
	buf := make([]byte, 64)
	writeUint32(buf, 0, c.Width)
	writeUint32(buf, 4, c.Height)
	writeUint32(buf, 8, c.NumSpheres)
	writeUint32(buf, 12, c.Padding0)
	writeFloat32(buf, 16, c.Left)
	writeFloat32(buf, 20, c.Bottom)
	writeFloat32(buf, 24, c.PlaneW)
	writeFloat32(buf, 28, c.PlaneH)
	writeFloat32(buf, 32, c.Near)
	writeFloat32(buf, 36, c.Far)
	writeFloat32(buf, 40, c.Padding1)
	writeFloat32(buf, 44, c.Padding2)
	writeFloat32(buf, 48, c.Background[0])
	writeFloat32(buf, 52, c.Background[1])
	writeFloat32(buf, 56, c.Background[2])
	writeFloat32(buf, 60, c.Background[3])
	return buf
}
