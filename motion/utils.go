package motion

import "math"

const (
	radToDeg = 180.0 / math.Pi
	degToRad = math.Pi / 180.0
)

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// normalizeHalfTurn maps an axis angle in degrees into (-90, 90].
// An axis has no direction, so angles that differ by 180 are the same axis.
func normalizeHalfTurn(deg float64) float64 {
	deg = math.Mod(deg, 180.0)
	if deg > 90.0 {
		deg -= 180.0
	} else if deg <= -90.0 {
		deg += 180.0
	}
	return deg
}

// axisDifference returns the smallest signed difference a-b between two axis angles in degrees.
func axisDifference(a, b float64) float64 {
	return normalizeHalfTurn(a - b)
}
