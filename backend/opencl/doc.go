// Package opencl dispatches the sphere trace to an OpenCL device, one
// work-item per pixel over a width x height range.
//
// The scene is uploaded once as a read-only float buffer (seven floats per
// sphere), the kernel resolves every pixel's closest hit independently,
// and the frame is read back after a blocking run. The kernel body is the
// same algorithm as spheretrace.TracePixel, so the device frame matches
// the CPU frame.
//
// Importing this package registers the backend; it also registers itself
// as the device accelerator when a usable OpenCL device is present:
//
//	import _ "github.com/gogpu/spheretrace/backend/opencl" // enable OpenCL dispatch
//
// If no OpenCL runtime or device is available, registration is skipped and
// rendering falls back to the CPU worker pool.
package opencl
