package motion

import "testing"

func TestTrajectoryAccumulatorRecord(t *testing.T) {
	acc := NewTrajectoryAccumulator()
	tr := acc.Record(Point{X: 1, Y: 1}, true)
	if tr.Len() != 1 {
		t.Errorf("Wrong trajectory length: %v, expected: %v", tr.Len(), 1)
	}
	tr = acc.Record(Point{}, false)
	if tr.Len() != 1 {
		t.Errorf("Frame without detection should not extend the trajectory, length: %v", tr.Len())
	}
	tr = acc.Record(Point{X: 2, Y: 3}, true)
	last, ok := tr.Last()
	if !ok || last != (Point{X: 2, Y: 3}) {
		t.Errorf("Wrong last point: %v", last)
	}
	if acc.Len() != 2 {
		t.Errorf("Wrong accumulator length: %v, expected: %v", acc.Len(), 2)
	}
}

func TestTrajectorySnapshotIsolation(t *testing.T) {
	acc := NewTrajectoryAccumulator()
	acc.Record(Point{X: 1, Y: 1}, true)
	acc.Record(Point{X: 2, Y: 2}, true)
	snapshot := acc.Snapshot()

	acc.Record(Point{X: 3, Y: 3}, true)
	if snapshot.Len() != 2 {
		t.Errorf("Snapshot should not see later points, length: %v", snapshot.Len())
	}

	// Appending through the snapshot must not overwrite accumulator's storage
	grown := append(snapshot.points, Point{X: 99, Y: 99})
	if grown[2] == acc.track[2] {
		t.Error("Snapshot append clobbered accumulator storage")
	}
	if acc.Snapshot().At(2) != (Point{X: 3, Y: 3}) {
		t.Errorf("Wrong third point: %v", acc.Snapshot().At(2))
	}
}

func TestTrajectoryIterators(t *testing.T) {
	acc := NewTrajectoryAccumulator()
	for i := 0; i < 5; i++ {
		acc.Record(Point{X: float64(i), Y: float64(i * 2)}, true)
	}
	tr := acc.Snapshot()

	for i, p := range tr.All() {
		if p != tr.At(i) {
			t.Errorf("All() position %d: %v, expected: %v", i, p, tr.At(i))
		}
	}

	visited := 0
	for p := range tr.Points() {
		visited++
		if p.X >= 2 {
			break
		}
	}
	if visited != 3 {
		t.Errorf("Points() should stop on break, visited: %v", visited)
	}

	if _, ok := (Trajectory{}).Last(); ok {
		t.Error("Empty trajectory should have no last point")
	}
}
