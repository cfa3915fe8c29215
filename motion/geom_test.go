package motion

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correnctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correnctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correnctAnswer)
	}
}

func TestRectangleCenter(t *testing.T) {
	rect := NewRectFrom(image.Rect(10, 20, 40, 60))
	center := rect.Center()
	expected := Point{X: 25, Y: 40}
	if center != expected {
		t.Errorf("Wrong center: %v, expected: %v", center, expected)
	}
}

func TestNormalizeHalfTurn(t *testing.T) {
	cases := []struct {
		in, out float64
	}{
		{0, 0},
		{90, 90},
		{-90, 90},
		{91, -89},
		{180, 0},
		{-135, 45},
		{270, 90},
		{-45, -45},
	}
	for _, c := range cases {
		got := normalizeHalfTurn(c.in)
		if math.Abs(got-c.out) > eps {
			t.Errorf("normalizeHalfTurn(%v): %v, expected: %v", c.in, got, c.out)
		}
	}
}
