package motion

// SpeedEstimator computes instantaneous speed from the displacement between sampled frames.
// Only frames whose index is a multiple of the sample interval are sampled. Between
// samples the last computed speed is held.
type SpeedEstimator struct {
	fps            float64
	sampleInterval int

	// Last sampled frame with a valid centroid
	prevIndex  int
	prevCenter Point
	hasPrev    bool

	// Last computed speed, pixels per second
	speed    float64
	hasSpeed bool

	totalDistance float64
	updates       int
}

// NewSpeedEstimator creates an estimator. fps and sampleInterval must be positive;
// Config.Validate checks that before a pipeline is built.
func NewSpeedEstimator(fps float64, sampleInterval int) *SpeedEstimator {
	return &SpeedEstimator{
		fps:            fps,
		sampleInterval: sampleInterval,
	}
}

// IsSampleFrame reports whether frameIndex falls on a sample boundary
func (est *SpeedEstimator) IsSampleFrame(frameIndex int) bool {
	return frameIndex%est.sampleInterval == 0
}

// Update feeds the centroid of frameIndex (ok is false when the frame had no detection)
// and returns the current speed in pixels per second and whether it is available.
//
// On a sample boundary with a valid centroid and a stored previous sample, speed is the
// euclidean displacement divided by the time elapsed between the two sampled frames. A
// boundary without a detection reports no speed for that frame and keeps both the stored
// sample and the held speed, so a single dropped detection does not corrupt later values.
func (est *SpeedEstimator) Update(frameIndex int, center Point, ok bool) (float64, bool) {
	if !est.IsSampleFrame(frameIndex) {
		return est.speed, est.hasSpeed
	}
	if !ok {
		return 0, false
	}
	if est.hasPrev && frameIndex > est.prevIndex {
		elapsed := float64(frameIndex-est.prevIndex) / est.fps
		distance := euclideanDistance(center, est.prevCenter)
		est.speed = distance / elapsed
		est.hasSpeed = true
		est.totalDistance += distance
		est.updates++
	}
	est.prevIndex = frameIndex
	est.prevCenter = center
	est.hasPrev = true
	return est.speed, est.hasSpeed
}

// Speed returns the held speed without feeding a new frame
func (est *SpeedEstimator) Speed() (float64, bool) {
	return est.speed, est.hasSpeed
}

// TotalDistance returns the sum of displacements between consecutive valid samples, pixels
func (est *SpeedEstimator) TotalDistance() float64 {
	return est.totalDistance
}

// Updates returns how many times speed has been recomputed
func (est *SpeedEstimator) Updates() int {
	return est.updates
}
