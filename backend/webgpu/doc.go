// Package webgpu provides a WebGPU compute backend for the sphere trace
// using gogpu/wgpu.
//
// # Architecture Overview
//
// The trace kernel is written in WGSL (shaders/trace.wgsl), compiled to
// SPIR-V with gogpu/naga, and bound as a compute pipeline on a wgpu/hal
// device:
//
//	Scene + Config -> GPU buffers -> cs_trace (one invocation per pixel) -> frame buffer
//
// Key components:
//
//   - Backend: entry point implementing backend.TraceBackend and
//     spheretrace.Accelerator
//   - TraceKernel: shader compilation, bind group layouts and pipeline setup
//   - DeviceHandle: device/queue handoff from a host application
//     (gpucontext.DeviceProvider)
//
// The backend does not create its own GPU device; it receives one from the
// host via SetDeviceProvider, following the gogpu device-sharing model.
//
// # Execution
//
// HAL buffer readback is not yet exposed, so kernel execution currently
// runs on CPU lanes that mirror the shader invocation grid exactly (one
// lane per pixel, 8x8 workgroups). Pipeline and layout creation run on the
// real device, which validates the shader against the hardware; the lane
// mirror keeps output identical to the other strategies in the meantime.
package webgpu
