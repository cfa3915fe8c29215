package render

import (
	"math"

	"github.com/LdDl/motion-estimator/motion"
)

// Series keeps the per-frame values needed by the end of run plots and charts.
// Undefined values (no detection, no orientation, no speed yet) are stored as NaN.
type Series struct {
	Frames       []int
	X            []float64
	Y            []float64
	Orientations []float64
	Speeds       []float64
	trajectory   motion.Trajectory
}

// NewSeries creates an empty series
func NewSeries() *Series {
	return &Series{}
}

// Observe appends one sample
func (series *Series) Observe(sample motion.MotionSample) {
	series.Frames = append(series.Frames, sample.FrameIndex)
	x, y := math.NaN(), math.NaN()
	if sample.Detected {
		x, y = sample.Centroid.X, sample.Centroid.Y
	}
	series.X = append(series.X, x)
	series.Y = append(series.Y, y)

	orientation := math.NaN()
	if sample.Detected && sample.OrientationDefined {
		orientation = sample.Orientation
	}
	series.Orientations = append(series.Orientations, orientation)

	speed := math.NaN()
	if sample.SpeedAvailable {
		speed = sample.Speed
	}
	series.Speeds = append(series.Speeds, speed)
	series.trajectory = sample.Trajectory
}

// Len returns the number of observed samples
func (series *Series) Len() int {
	return len(series.Frames)
}

// Trajectory returns the trajectory carried by the last observed sample
func (series *Series) Trajectory() motion.Trajectory {
	return series.trajectory
}
