package storage

import (
	"time"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/google/uuid"
)

// Run is one processed video
type Run struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey"`
	CreatedAt      time.Time
	FinishedAt     *time.Time
	VideoFile      string
	FPS            float64
	SampleInterval int
	Scale          float64

	Frames                int
	Detections            int
	Gaps                  int
	UndefinedOrientations int
	SpeedUpdates          int
	TotalDistance         float64
	TotalTime             float64
	AverageSpeed          float64
}

func (Run) TableName() string {
	return "runs"
}

// Sample is one frame of a run. Undefined values are stored as NULL
type Sample struct {
	ID          uint      `gorm:"primaryKey"`
	RunID       uuid.UUID `gorm:"type:text;index:idx_run_frame,priority:1"`
	FrameIndex  int       `gorm:"index:idx_run_frame,priority:2"`
	Detected    bool
	SampleFrame bool

	CentroidX *float64
	CentroidY *float64
	Area      *float64

	Orientation *float64
	SemiMajor   *float64
	SemiMinor   *float64

	Speed *float64

	SmoothedX *float64
	SmoothedY *float64

	TrajectoryLen int
}

func (Sample) TableName() string {
	return "samples"
}

func newRun(runID uuid.UUID, videoFile string, cfg motion.Config) *Run {
	return &Run{
		ID:             runID,
		VideoFile:      videoFile,
		FPS:            cfg.FPS,
		SampleInterval: cfg.SampleInterval,
		Scale:          cfg.Scale,
	}
}

func newSample(sample motion.MotionSample) Sample {
	row := Sample{
		RunID:         sample.RunID,
		FrameIndex:    sample.FrameIndex,
		Detected:      sample.Detected,
		SampleFrame:   sample.SampleFrame,
		TrajectoryLen: sample.Trajectory.Len(),
	}
	if sample.Detected {
		row.CentroidX = ptr(sample.Centroid.X)
		row.CentroidY = ptr(sample.Centroid.Y)
		row.Area = ptr(sample.Area)
		row.SemiMajor = ptr(sample.Ellipse.SemiMajor)
		row.SemiMinor = ptr(sample.Ellipse.SemiMinor)
	}
	if sample.Detected && sample.OrientationDefined {
		row.Orientation = ptr(sample.Orientation)
	}
	if sample.SpeedAvailable {
		row.Speed = ptr(sample.Speed)
	}
	if sample.SmoothedValid {
		row.SmoothedX = ptr(sample.Smoothed.X)
		row.SmoothedY = ptr(sample.Smoothed.Y)
	}
	return row
}

func ptr[T any](v T) *T {
	return &v
}
