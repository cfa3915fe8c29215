//go:build !withcv

package video

import (
	"os"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
)

// Open returns a frame source for path. Without OpenCV only image directories are supported
func Open(path string) (motion.FrameSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open video '%s'", path)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrCodecUnavailable, "Can't open video '%s'", path)
	}
	return NewImageSequence(path)
}

// Create returns a sink for path. Without OpenCV frames are always stored as a PNG
// directory named after path without its extension
func Create(path string, fps float64) (Sink, error) {
	return NewFrameDirWriter(frameDirFor(path))
}
