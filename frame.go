package spheretrace

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Frame is the render output: a flat float32 buffer with three channels
// per pixel in row-major order, index (y*width + x)*3. Channel values are
// always in [0, 1]. The render driver fully writes the buffer; it never
// reads it back.
type Frame struct {
	width  int
	height int
	data   []float32
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		data:   make([]float32, width*height*3),
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Data returns the underlying float buffer. The layout is the external
// interface: row-major, three floats per pixel.
func (f *Frame) Data() []float32 { return f.data }

// SetPixel writes one pixel's RGB channels.
func (f *Frame) SetPixel(x, y int, r, g, b float32) {
	i := (y*f.width + x) * 3
	f.data[i] = r
	f.data[i+1] = g
	f.data[i+2] = b
}

// Pixel reads one pixel's RGB channels.
func (f *Frame) Pixel(x, y int) (r, g, b float32) {
	i := (y*f.width + x) * 3
	return f.data[i], f.data[i+1], f.data[i+2]
}

// ToImage converts the frame to an 8-bit image.NRGBA.
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			r, g, b := f.Pixel(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: channelByte(r),
				G: channelByte(g),
				B: channelByte(b),
				A: 255,
			})
		}
	}
	return img
}

// channelByte quantizes a [0,1] channel to 8 bits.
func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// SavePNG saves the frame to a PNG file.
func (f *Frame) SavePNG(path string) error {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	return png.Encode(out, f.ToImage())
}
