package video

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
)

var (
	// ErrCodecUnavailable is returned for container files when the binary was built without OpenCV
	ErrCodecUnavailable = errors.New("video containers require building with -tags withcv")
)

// Sink consumes annotated frames. Close flushes and releases the underlying resource and
// must be called on every exit path.
type Sink interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Tap wraps a frame source and remembers the frame it handed out last, so consumers of the
// pipeline samples can draw on the very frame a sample was computed from.
type Tap struct {
	src  motion.FrameSource
	last motion.Frame
}

// NewTap wraps src
func NewTap(src motion.FrameSource) *Tap {
	return &Tap{src: src}
}

// Next implements motion.FrameSource
func (tap *Tap) Next() (motion.Frame, error) {
	frame, err := tap.src.Next()
	if err != nil {
		return frame, err
	}
	tap.last = frame
	return frame, nil
}

// Last returns the most recently delivered frame
func (tap *Tap) Last() motion.Frame {
	return tap.last
}

// frameDirFor strips the container extension: outputs/run.mp4 -> outputs/run
func frameDirFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
