package motion

import (
	"image"
	"image/color"
	"io"
)

// Frame is a single decoded video image and its position in the stream.
// The pipeline only reads from Image.
type Frame struct {
	Index int
	Image image.Image
}

func NewFrame(index int, img image.Image) Frame {
	return Frame{
		Index: index,
		Image: img,
	}
}

// Bounds returns frame's image bounds
func (frame Frame) Bounds() image.Rectangle {
	if frame.Image == nil {
		return image.Rectangle{}
	}
	return frame.Image.Bounds()
}

// rgbaAt returns the 8-bit RGBA color of the pixel, with a fast path for the common image types
func (frame Frame) rgbaAt(x, y int) color.RGBA {
	switch img := frame.Image.(type) {
	case *image.RGBA:
		return img.RGBAAt(x, y)
	case *image.NRGBA:
		c := img.NRGBAAt(x, y)
		return color.RGBAModel.Convert(c).(color.RGBA)
	default:
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
}

// FrameSource delivers frames in increasing index order.
// Next returns io.EOF once the stream is exhausted.
type FrameSource interface {
	Next() (Frame, error)
}

// SliceSource is a FrameSource over frames held in memory
type SliceSource struct {
	frames []Frame
	pos    int
}

// NewSliceSource creates a source that yields frames in slice order
func NewSliceSource(frames []Frame) *SliceSource {
	return &SliceSource{frames: frames}
}

// Next returns the next frame or io.EOF
func (src *SliceSource) Next() (Frame, error) {
	if src.pos >= len(src.frames) {
		return Frame{}, io.EOF
	}
	frame := src.frames[src.pos]
	src.pos++
	return frame, nil
}
