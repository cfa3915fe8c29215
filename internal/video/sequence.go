package video

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// ImageSequence is a frame source over a directory of still images (an extracted video).
// Files are read in lexical order, so names must be zero padded (frame_000001.png).
type ImageSequence struct {
	files []string
	pos   int
}

// NewImageSequence lists image files in dir
func NewImageSequence(dir string) (*ImageSequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't list frames in '%s'", dir)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains(imageExtensions, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return &ImageSequence{files: files}, nil
}

// Len returns the number of frames in the sequence
func (seq *ImageSequence) Len() int {
	return len(seq.files)
}

// Next decodes the next image. It returns io.EOF after the last one
func (seq *ImageSequence) Next() (motion.Frame, error) {
	if seq.pos >= len(seq.files) {
		return motion.Frame{}, io.EOF
	}
	index := seq.pos
	path := seq.files[index]
	seq.pos++

	file, err := os.Open(path)
	if err != nil {
		return motion.Frame{}, errors.Wrapf(err, "Can't open frame %d", index)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return motion.Frame{}, errors.Wrapf(err, "Can't decode frame '%s'", path)
	}
	return motion.NewFrame(index, img), nil
}
