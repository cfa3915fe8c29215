package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FrameDirWriter is a Sink storing every frame as a numbered PNG file
type FrameDirWriter struct {
	dir    string
	count  int
	closed bool
}

// NewFrameDirWriter creates dir if needed
func NewFrameDirWriter(dir string) (*FrameDirWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "Can't create frame directory '%s'", dir)
	}
	return &FrameDirWriter{dir: dir}, nil
}

// WriteFrame implements Sink
func (w *FrameDirWriter) WriteFrame(img image.Image) error {
	if w.closed {
		return errors.New("frame writer is closed")
	}
	path := filepath.Join(w.dir, fmt.Sprintf("frame_%06d.png", w.count))
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Can't create '%s'", path)
	}
	err = png.Encode(file, img)
	if err != nil {
		file.Close()
		return errors.Wrapf(err, "Can't encode '%s'", path)
	}
	err = file.Close()
	if err != nil {
		return errors.Wrapf(err, "Can't close '%s'", path)
	}
	w.count++
	return nil
}

// Count returns the number of frames written so far
func (w *FrameDirWriter) Count() int {
	return w.count
}

// Close implements Sink. Closing twice is a no-op
func (w *FrameDirWriter) Close() error {
	w.closed = true
	return nil
}
