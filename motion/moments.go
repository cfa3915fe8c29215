package motion

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// orientationEpsilon is the relative tolerance under which the second order central
	// moments are considered isotropic (no principal axis)
	orientationEpsilon = 1e-9
	// ellipseChiSquare95 scales eigenvalues of the covariance matrix to the 95% confidence
	// ellipse (chi-square quantile, 2 degrees of freedom)
	ellipseChiSquare95 = 5.991
)

// Moments holds the spatial moments of a binary mask up to second order.
// Central moments are plain sums about the centroid, not divided by the area.
type Moments struct {
	M00  float64
	M10  float64
	M01  float64
	Mu20 float64
	Mu02 float64
	Mu11 float64
}

// InertiaEllipse is the ellipse with the same second moments as the mask.
// Semi-axes are in pixels, AngleDeg is the direction of the major axis.
type InertiaEllipse struct {
	Center    Point
	SemiMajor float64
	SemiMinor float64
	AngleDeg  float64
}

// Analyze computes the moments of the mask by direct summation over foreground pixels.
// The first pass accumulates raw moments, the second pass accumulates central moments
// about the centroid, which avoids the cancellation of the raw-moment shortcut.
func Analyze(mask *BinaryMask) Moments {
	var m Moments
	bounds := mask.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !mask.At(x, y) {
				continue
			}
			m.M00++
			m.M10 += float64(x)
			m.M01 += float64(y)
		}
	}
	if m.M00 == 0 {
		return m
	}
	xc := m.M10 / m.M00
	yc := m.M01 / m.M00
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !mask.At(x, y) {
				continue
			}
			dx := float64(x) - xc
			dy := float64(y) - yc
			m.Mu20 += dx * dx
			m.Mu02 += dy * dy
			m.Mu11 += dx * dy
		}
	}
	return m
}

// Empty reports whether the mask had no foreground pixels
func (m Moments) Empty() bool {
	return m.M00 <= 0
}

// Centroid returns (M10/M00, M01/M00). The second value is false for an empty mask.
func (m Moments) Centroid() (Point, bool) {
	if m.Empty() {
		return Point{}, false
	}
	return Point{X: m.M10 / m.M00, Y: m.M01 / m.M00}, true
}

// Isotropic reports whether the shape has no principal axis (e.g. a disk or a square)
func (m Moments) Isotropic() bool {
	scale := m.Mu20 + m.Mu02
	if scale <= 0 {
		return true
	}
	return math.Abs(m.Mu20-m.Mu02) <= orientationEpsilon*scale && math.Abs(m.Mu11) <= orientationEpsilon*scale
}

// Orientation returns the principal axis angle in degrees within (-90, 90], measured from
// the +x axis towards +y (clockwise on screen, since y points down).
// The second value is false for an empty mask or an isotropic shape.
func (m Moments) Orientation() (float64, bool) {
	if m.Empty() || m.Isotropic() {
		return math.NaN(), false
	}
	angle := 0.5 * math.Atan2(2*m.Mu11, m.Mu20-m.Mu02) * radToDeg
	return normalizeHalfTurn(angle), true
}

// InertiaEllipse derives the equivalent ellipse from the eigenvalues of the normalized
// second moment matrix [[mu20, mu11], [mu11, mu02]] / m00.
// Eigenvalues are clamped at zero so near-degenerate masks (a single row of pixels)
// never produce NaN axes. The second value is false for an empty mask.
func (m Moments) InertiaEllipse() (InertiaEllipse, bool) {
	center, ok := m.Centroid()
	if !ok {
		return InertiaEllipse{}, false
	}
	cov := mat.NewSymDense(2, []float64{
		m.Mu20 / m.M00, m.Mu11 / m.M00,
		m.Mu11 / m.M00, m.Mu02 / m.M00,
	})
	var eig mat.EigenSym
	var lambdaMin, lambdaMax float64
	if eig.Factorize(cov, false) {
		// Values are returned in ascending order
		values := eig.Values(nil)
		lambdaMin, lambdaMax = values[0], values[1]
	} else {
		lambdaMin, lambdaMax = closedFormEigen(cov.At(0, 0), cov.At(0, 1), cov.At(1, 1))
	}
	lambdaMin = maxFloat64(0, lambdaMin)
	lambdaMax = maxFloat64(0, lambdaMax)

	angle, defined := m.Orientation()
	if !defined {
		angle = 0
	}
	return InertiaEllipse{
		Center:    center,
		SemiMajor: math.Sqrt(ellipseChiSquare95 * lambdaMax),
		SemiMinor: math.Sqrt(ellipseChiSquare95 * lambdaMin),
		AngleDeg:  angle,
	}, true
}

// closedFormEigen returns (smaller, larger) eigenvalues of the symmetric matrix [[a, b], [b, c]]
func closedFormEigen(a, b, c float64) (float64, float64) {
	trace := a + c
	disc := math.Sqrt(maxFloat64(0, (a-c)*(a-c)+4*b*b))
	return (trace - disc) / 2, (trace + disc) / 2
}
