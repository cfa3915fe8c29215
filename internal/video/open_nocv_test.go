//go:build !withcv

package video

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ContainerWithoutOpenCV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.mp4")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 0}, 0644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrCodecUnavailable)
}

func TestCreate_FrameDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.mp4")
	sink, err := Create(path, 30)
	require.NoError(t, err)
	defer sink.Close()

	_, ok := sink.(*FrameDirWriter)
	assert.True(t, ok)
	info, err := os.Stat(frameDirFor(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
