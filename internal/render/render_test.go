package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	markerRed = color.RGBA{R: 220, G: 20, B: 25, A: 255}
	grass     = color.RGBA{R: 40, G: 90, B: 60, A: 255}
)

func frameWithMarker(index, cx, cy int) motion.Frame {
	img := image.NewRGBA(image.Rect(0, 0, 96, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 96; x++ {
			img.SetRGBA(x, y, grass)
			if x >= cx-6 && x <= cx+6 && y >= cy-2 && y <= cy+2 {
				img.SetRGBA(x, y, markerRed)
			}
		}
	}
	return motion.NewFrame(index, img)
}

func runSamples(t *testing.T, n int) []motion.MotionSample {
	t.Helper()
	frames := make([]motion.Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, frameWithMarker(i, 15+5*i, 20+2*i))
	}
	cfg := motion.DefaultConfig()
	cfg.FPS = 10
	pipeline, err := motion.NewPipeline(cfg)
	require.NoError(t, err)

	samples := []motion.MotionSample{}
	for sample, err := range pipeline.Run(context.Background(), motion.NewSliceSource(frames)) {
		require.NoError(t, err)
		samples = append(samples, sample)
	}
	return samples
}

func TestSeries(t *testing.T) {
	samples := runSamples(t, 5)
	series := NewSeries()
	for _, sample := range samples {
		series.Observe(sample)
	}
	series.Observe(motion.MotionSample{FrameIndex: 5})

	assert.Equal(t, 6, series.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, series.Frames)
	assert.InDelta(t, 25.0, series.X[2], 1e-9)
	assert.InDelta(t, 24.0, series.Y[2], 1e-9)
	assert.True(t, math.IsNaN(series.Speeds[0]))
	assert.False(t, math.IsNaN(series.Speeds[1]))
	assert.True(t, math.IsNaN(series.X[5]))
	assert.True(t, math.IsNaN(series.Orientations[5]))
	assert.Equal(t, 0, series.Trajectory().Len(), "trajectory follows the last sample")
}

func TestSaveAll(t *testing.T) {
	samples := runSamples(t, 8)
	series := NewSeries()
	for _, sample := range samples {
		series.Observe(sample)
	}

	dir := filepath.Join(t.TempDir(), "outputs")
	files, err := SaveAll(series, dir, Bounds{Width: 128, Height: 64}, Bounds{Width: 900, Height: 550})
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "%s is not a PNG", file)
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 900, cfg.Width, "%s width", file)
		assert.Equal(t, 550, cfg.Height, "%s height", file)
	}
}

func TestPlotsWithoutData(t *testing.T) {
	series := NewSeries()
	series.Observe(motion.MotionSample{FrameIndex: 0})

	_, err := TrajectoryPlot(series.Trajectory(), Bounds{Width: 900, Height: 550})
	require.NoError(t, err)
	_, err = OrientationPlot(series)
	require.NoError(t, err)
	_, err = PositionPlot(series)
	require.NoError(t, err)

	_, err = SaveAll(series, t.TempDir(), Bounds{Width: 300, Height: 200}, Bounds{Width: 300, Height: 200})
	require.NoError(t, err)
}

func TestAnnotate(t *testing.T) {
	samples := runSamples(t, 4)
	last := samples[len(samples)-1]
	frame := frameWithMarker(3, 30, 26)

	annotated, err := Annotate(frame.Image, last, DefaultOverlays()...)
	require.NoError(t, err)
	assert.Equal(t, 96, annotated.Bounds().Dx())
	assert.Equal(t, 64, annotated.Bounds().Dy())
}

func TestAnnotate_KeepsFramePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetRGBA(x, y, grass)
		}
	}
	annotated, err := Annotate(img, motion.MotionSample{})
	require.NoError(t, err)

	center := color.RGBAModel.Convert(annotated.At(20, 15)).(color.RGBA)
	assert.InDelta(t, float64(grass.R), float64(center.R), 2)
	assert.InDelta(t, float64(grass.G), float64(center.G), 2)
	assert.InDelta(t, float64(grass.B), float64(center.B), 2)
}

func TestFramePlotToPlot(t *testing.T) {
	fp := NewFramePlot(image.NewRGBA(image.Rect(0, 0, 100, 50)))
	xy := fp.ToPlot(motion.Point{X: 10, Y: 5})
	assert.Equal(t, 10.0, xy.X)
	assert.Equal(t, 45.0, xy.Y)
}

func TestEllipseOutline(t *testing.T) {
	fp := NewFramePlot(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	ellipse := motion.InertiaEllipse{
		Center:    motion.Point{X: 50, Y: 50},
		SemiMajor: 20,
		SemiMinor: 5,
		AngleDeg:  90,
	}
	xys := ellipseOutline(fp, ellipse)
	require.Len(t, xys, ellipseSegments+1)
	assert.InDelta(t, xys[0].X, xys[len(xys)-1].X, 1e-9, "outline is closed")
	assert.InDelta(t, xys[0].Y, xys[len(xys)-1].Y, 1e-9, "outline is closed")
	// Major axis along image y: first point is 20 px below the center on screen
	assert.InDelta(t, 50.0, xys[0].X, 1e-9)
	assert.InDelta(t, 30.0, xys[0].Y, 1e-9)
}

func TestArrowPath(t *testing.T) {
	fp := NewFramePlot(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	path := arrowPath(fp, motion.Point{X: 10, Y: 10}, motion.Point{X: 40, Y: 10})
	require.Len(t, path, 5)
	assert.Equal(t, path[1], path[3])
	// Barbs point back along the shaft
	assert.Less(t, path[2].X, path[1].X)
	assert.Less(t, path[4].X, path[1].X)
}

func TestWriteChart(t *testing.T) {
	samples := runSamples(t, 6)
	series := NewSeries()
	for _, sample := range samples {
		series.Observe(sample)
	}
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, series, "test run"))
	html := buf.String()
	assert.Contains(t, html, "Instantaneous Speed")
	assert.Contains(t, html, "Orientation")
	assert.Contains(t, html, "echarts")

	path := filepath.Join(t.TempDir(), ChartFile)
	require.NoError(t, SaveChart(series, "test run", path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}
