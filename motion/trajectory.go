package motion

import "iter"

// Trajectory is a read-only snapshot of the centroids recorded so far.
// Snapshots stay valid after further recording: the accumulator only appends, and a
// snapshot never sees points recorded after it was taken.
type Trajectory struct {
	points []Point
}

// Len returns the number of points in the snapshot
func (tr Trajectory) Len() int {
	return len(tr.points)
}

// At returns the i-th point
func (tr Trajectory) At(i int) Point {
	return tr.points[i]
}

// Last returns the most recent point and false if the trajectory is empty
func (tr Trajectory) Last() (Point, bool) {
	if len(tr.points) == 0 {
		return Point{}, false
	}
	return tr.points[len(tr.points)-1], true
}

// All iterates over (position, point) pairs in recording order
func (tr Trajectory) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i, p := range tr.points {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Points iterates over points in recording order
func (tr Trajectory) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range tr.points {
			if !yield(p) {
				return
			}
		}
	}
}

// TrajectoryAccumulator owns the growing path of valid detections.
type TrajectoryAccumulator struct {
	track []Point
}

// NewTrajectoryAccumulator creates an empty accumulator
func NewTrajectoryAccumulator() *TrajectoryAccumulator {
	return &TrajectoryAccumulator{
		track: make([]Point, 0, 150),
	}
}

// Record appends p when ok is true and returns the current snapshot.
// Frames without a detection leave the trajectory unchanged.
func (acc *TrajectoryAccumulator) Record(p Point, ok bool) Trajectory {
	if ok {
		acc.track = append(acc.track, p)
	}
	return acc.Snapshot()
}

// Snapshot returns the trajectory without recording anything
func (acc *TrajectoryAccumulator) Snapshot() Trajectory {
	n := len(acc.track)
	// Capacity is capped so an append on the snapshot side can never write into our storage
	return Trajectory{points: acc.track[:n:n]}
}

// Len returns the number of recorded points
func (acc *TrajectoryAccumulator) Len() int {
	return len(acc.track)
}
