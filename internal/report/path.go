package report

import (
	"math"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/pkg/errors"
)

// PathStats describes the geometry of a recorded trajectory
type PathStats struct {
	Points int
	// Length along every recorded point, pixels
	Length float64
	// Straight line distance between the first and the last point, pixels
	Displacement float64
	// Path crosses or touches itself
	SelfCrossing bool
}

// Path measures the trajectory as a line string.
// Consecutive repeated points (a marker standing still) are collapsed first.
func Path(tr motion.Trajectory) (PathStats, error) {
	stats := PathStats{Points: tr.Len()}
	if tr.Len() < 2 {
		return stats, nil
	}
	first, last := tr.At(0), tr.At(tr.Len()-1)
	stats.Displacement = math.Hypot(last.X-first.X, last.Y-first.Y)

	coords := make([]float64, 0, 2*tr.Len())
	prev := first
	coords = append(coords, first.X, first.Y)
	for pt := range tr.Points() {
		if pt == prev {
			continue
		}
		coords = append(coords, pt.X, pt.Y)
		prev = pt
	}
	if len(coords) < 4 {
		return stats, nil
	}
	ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return PathStats{}, errors.Wrap(err, "Can't build trajectory line string")
	}
	stats.Length = ls.Length()
	stats.SelfCrossing = !ls.IsSimple()
	return stats, nil
}

// Straightness is Displacement / Length, 1 for a straight path and 0 when undefined
func (stats PathStats) Straightness() float64 {
	if stats.Length == 0 {
		return 0
	}
	return stats.Displacement / stats.Length
}
