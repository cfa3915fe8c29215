package motion

import "github.com/google/uuid"

// Summary aggregates a whole run.
type Summary struct {
	RunID          uuid.UUID
	FPS            float64
	SampleInterval int

	Frames                int
	Detections            int
	Gaps                  int
	UndefinedOrientations int
	SpeedUpdates          int

	// Sum of displacements between consecutive valid samples, scaled units
	TotalDistance float64
	// Frames / FPS, seconds
	TotalTime float64
	// TotalDistance / TotalTime, or 0 for an empty run
	AverageSpeed float64
}

func (summary *Summary) add(sample MotionSample) {
	summary.Frames++
	if !sample.Detected {
		summary.Gaps++
		return
	}
	summary.Detections++
	if !sample.OrientationDefined {
		summary.UndefinedOrientations++
	}
}

func (summary *Summary) finish(totalDistance float64, speedUpdates int) {
	summary.TotalDistance = totalDistance
	summary.SpeedUpdates = speedUpdates
	summary.TotalTime = float64(summary.Frames) / summary.FPS
	summary.AverageSpeed = 0
	if summary.TotalTime > 0 {
		summary.AverageSpeed = summary.TotalDistance / summary.TotalTime
	}
}
