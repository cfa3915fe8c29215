package motion

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrNoDetection marks a frame whose mask had no foreground pixels
	ErrNoDetection = errors.New("no marker detected")
	// ErrUndefinedOrientation marks a frame whose marker has no principal axis
	ErrUndefinedOrientation = errors.New("marker orientation undefined")
	// ErrPipelineConsumed is returned when Run is called on a pipeline that already ran
	ErrPipelineConsumed = errors.New("pipeline already consumed")
)

// MotionSample is everything estimated for one frame. Samples are values and are never
// modified after being emitted.
type MotionSample struct {
	RunID      uuid.UUID
	FrameIndex int

	// Centroid, Area and BBox are meaningful only when Detected is true
	Detected bool
	Centroid Point
	Area     float64
	BBox     Rectangle

	// Orientation in degrees within (-90, 90]
	OrientationDefined bool
	Orientation        float64
	Ellipse            InertiaEllipse

	// Speed in scaled units per second; held between sample frames
	SpeedAvailable bool
	Speed          float64
	// Frame falls on a sample boundary
	SampleFrame bool

	// Kalman filtered centroid, when smoothing is enabled and the frame has a detection
	SmoothedValid bool
	Smoothed      Point

	// Trajectory recorded up to and including this frame
	Trajectory Trajectory
}

// Gap returns ErrNoDetection or ErrUndefinedOrientation when the frame carries a detection
// gap, and nil otherwise. Gaps are per-frame markers, never run failures.
func (sample MotionSample) Gap() error {
	if !sample.Detected {
		return ErrNoDetection
	}
	if !sample.OrientationDefined {
		return ErrUndefinedOrientation
	}
	return nil
}
