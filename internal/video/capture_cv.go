//go:build withcv
// +build withcv

package video

import (
	"image"
	"io"
	"os"
	"strings"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Capture is a frame source decoding a video file through OpenCV
type Capture struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	index   int
}

// NewCapture opens the video file
func NewCapture(path string) (*Capture, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open video '%s'", path)
	}
	return &Capture{
		capture: capture,
		mat:     gocv.NewMat(),
	}, nil
}

// FPS returns the frame rate stored in the container, or 0 if unknown
func (c *Capture) FPS() float64 {
	return c.capture.Get(gocv.VideoCaptureFPS)
}

// Next implements motion.FrameSource. The decoded image is copied out of the OpenCV
// buffer, so frames stay valid after the next read.
func (c *Capture) Next() (motion.Frame, error) {
	if ok := c.capture.Read(&c.mat); !ok || c.mat.Empty() {
		return motion.Frame{}, io.EOF
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return motion.Frame{}, errors.Wrapf(err, "Can't convert frame %d", c.index)
	}
	frame := motion.NewFrame(c.index, img)
	c.index++
	return frame, nil
}

// Close releases OpenCV resources
func (c *Capture) Close() error {
	c.mat.Close()
	return c.capture.Close()
}

// Writer is a Sink encoding frames into a video container through OpenCV.
// The container is created on the first frame, when the frame size is known.
type Writer struct {
	path   string
	codec  string
	fps    float64
	writer *gocv.VideoWriter
}

// NewWriter prepares a writer. codec is a FourCC code such as "avc1" or "MJPG"
func NewWriter(path, codec string, fps float64) *Writer {
	return &Writer{
		path:  path,
		codec: codec,
		fps:   fps,
	}
}

// WriteFrame implements Sink
func (w *Writer) WriteFrame(img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return errors.Wrap(err, "Can't convert frame")
	}
	defer mat.Close()
	if w.writer == nil {
		bounds := img.Bounds()
		w.writer, err = gocv.VideoWriterFile(w.path, w.codec, w.fps, bounds.Dx(), bounds.Dy(), true)
		if err != nil {
			return errors.Wrapf(err, "Can't create video '%s'", w.path)
		}
	}
	return w.writer.Write(mat)
}

// Close flushes the container. Closing a writer that never received a frame is a no-op
func (w *Writer) Close() error {
	if w.writer == nil {
		return nil
	}
	err := w.writer.Close()
	w.writer = nil
	return err
}

// Open returns a frame source for path: an image directory or any container OpenCV decodes
func Open(path string) (motion.FrameSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open video '%s'", path)
	}
	if info.IsDir() {
		return NewImageSequence(path)
	}
	return NewCapture(path)
}

// Create returns a sink for path: a video container for known extensions, otherwise a
// PNG directory
func Create(path string, fps float64) (Sink, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".mp4"):
		return NewWriter(path, "avc1", fps), nil
	case strings.HasSuffix(strings.ToLower(path), ".avi"):
		return NewWriter(path, "MJPG", fps), nil
	default:
		return NewFrameDirWriter(frameDirFor(path))
	}
}
