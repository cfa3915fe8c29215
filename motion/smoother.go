package motion

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// initialVelocityStdDev is the prior spread of the marker velocity, pixels per second
const initialVelocityStdDev = 300.0

// CentroidSmoother filters the raw centroid with a constant-acceleration 2D Kalman filter.
// The filter is created on the first detection and advanced once per frame afterwards,
// including frames without a detection, so its time step always matches the frame rate.
type CentroidSmoother struct {
	dt      float64
	tracker *kalman_filter.Kalman2D
	state   Point
}

// NewCentroidSmoother creates a smoother for a stream of the given frame rate
func NewCentroidSmoother(fps float64) *CentroidSmoother {
	return &CentroidSmoother{
		dt: 1.0 / fps,
	}
}

// Observe advances the filter by one frame. When ok is true the centroid is used as a
// measurement and the filtered position is returned. When ok is false the filter only
// predicts, and the second result is false.
func (smoother *CentroidSmoother) Observe(center Point, ok bool) (Point, bool, error) {
	if smoother.tracker == nil {
		if !ok {
			return Point{}, false, nil
		}
		/* Kalman filter props */
		ux := 0.0
		uy := 0.0
		stdDevA := 50.0
		stdDevMx := 1.0
		stdDevMy := 1.0
		smoother.tracker = kalman_filter.NewKalman2D(smoother.dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(center.X, center.Y))
		// Velocity is unknown on the first detection
		smoother.tracker.P.Set(2, 2, initialVelocityStdDev*initialVelocityStdDev)
		smoother.tracker.P.Set(3, 3, initialVelocityStdDev*initialVelocityStdDev)
		smoother.state = center
		return center, true, nil
	}
	smoother.tracker.Predict()
	if !ok {
		stateX, stateY := smoother.tracker.GetState()
		smoother.state = Point{X: stateX, Y: stateY}
		return Point{}, false, nil
	}
	err := smoother.tracker.Update(center.X, center.Y)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "Can't update centroid filter")
	}
	stateX, stateY := smoother.tracker.GetState()
	smoother.state = Point{X: stateX, Y: stateY}
	return smoother.state, true, nil
}

// State returns the latest filter state (predicted or corrected)
func (smoother *CentroidSmoother) State() Point {
	return smoother.state
}
