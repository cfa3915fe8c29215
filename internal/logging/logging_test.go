package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("INFO"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("Error"))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_WritesFileWithoutColors(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Int("frame", 12).Msg("marker lost")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "marker lost")
	assert.Contains(t, out, "frame=12")
	assert.NotContains(t, out, "\x1b[")
}

func TestOpenFile(t *testing.T) {
	file, err := OpenFile("")
	require.NoError(t, err)
	assert.Nil(t, file)

	path := filepath.Join(t.TempDir(), "run.log")
	file, err = OpenFile(path)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.NoError(t, file.Close())
}
