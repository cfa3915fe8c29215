package motion

import "math"

// DefaultJumpThreshold is the orientation change (degrees) between consecutive frames
// above which a reading is treated as a spurious flip
const DefaultJumpThreshold = 60.0

// JumpFilter suppresses sudden orientation flips. Orientations are axes, so a change is
// measured modulo 180 degrees: 89 and -89 are 2 degrees apart. A reading that differs from
// the previous accepted value by more than the threshold is replaced by the axial mean of
// the last two accepted values (or the last one if only one exists). A zero threshold
// disables it; thresholds of 90 or more never trigger.
type JumpFilter struct {
	threshold float64
	history   []float64
}

// NewJumpFilter creates a filter with the given threshold in degrees
func NewJumpFilter(threshold float64) *JumpFilter {
	return &JumpFilter{
		threshold: threshold,
		history:   make([]float64, 0, 2),
	}
}

// Filter returns the accepted orientation for this frame
func (f *JumpFilter) Filter(angle float64) float64 {
	if f.threshold <= 0 || math.IsNaN(angle) {
		return angle
	}
	n := len(f.history)
	if n > 0 && math.Abs(axisDifference(angle, f.history[n-1])) > f.threshold {
		if n > 1 {
			angle = axialMean(f.history[n-1], f.history[n-2])
		} else {
			angle = f.history[n-1]
		}
	}
	f.push(angle)
	return angle
}

func (f *JumpFilter) push(angle float64) {
	if len(f.history) == 2 {
		f.history[0] = f.history[1]
		f.history = f.history[:1]
	}
	f.history = append(f.history, angle)
}

// axialMean returns the axis halfway between a and b, in (-90, 90]
func axialMean(a, b float64) float64 {
	return normalizeHalfTurn(a + axisDifference(b, a)/2)
}
