package motion

import (
	"image"
	"image/color"
	"testing"
)

func TestChromaticityRule(t *testing.T) {
	rule := NewRedMarkerRule()
	cases := []struct {
		c        color.RGBA
		expected bool
	}{
		{markerRed, true},
		{background, false},
		{color.RGBA{R: 0, G: 0, B: 0, A: 255}, false},
		{color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		// Dark red is still red
		{color.RGBA{R: 60, G: 5, B: 10, A: 255}, true},
		// Orange has too much green
		{color.RGBA{R: 230, G: 120, B: 10, A: 255}, false},
		// Magenta has too much blue
		{color.RGBA{R: 200, G: 10, B: 200, A: 255}, false},
		// Exactly on both bounds: r = 0.5, g = 0.2
		{color.RGBA{R: 100, G: 40, B: 60, A: 255}, true},
	}
	for _, c := range cases {
		if got := rule.Classify(c.c); got != c.expected {
			t.Errorf("Classify(%v): %v, expected: %v", c.c, got, c.expected)
		}
	}
}

func TestChannelRangeRule(t *testing.T) {
	rule := ChannelRangeRule{
		Lower: color.RGBA{R: 150, G: 0, B: 0},
		Upper: color.RGBA{R: 255, G: 60, B: 60},
	}
	cases := []struct {
		c        color.RGBA
		expected bool
	}{
		{markerRed, true},
		{background, false},
		{color.RGBA{R: 150, G: 0, B: 0, A: 255}, true},
		{color.RGBA{R: 255, G: 60, B: 60, A: 255}, true},
		{color.RGBA{R: 149, G: 0, B: 0, A: 255}, false},
		{color.RGBA{R: 200, G: 61, B: 0, A: 255}, false},
	}
	for _, c := range cases {
		if got := rule.Classify(c.c); got != c.expected {
			t.Errorf("Classify(%v): %v, expected: %v", c.c, got, c.expected)
		}
	}
}

func TestSegmentMarkerFrame(t *testing.T) {
	frame := markerFrame(0, 64, 48, 20, 30, 4, 2)
	mask := Segment(frame, NewRedMarkerRule())
	if mask.Bounds() != frame.Bounds() {
		t.Errorf("Mask bounds %v differ from frame bounds %v", mask.Bounds(), frame.Bounds())
	}
	if mask.Count() != 9*5 {
		t.Errorf("Wrong number of foreground pixels: %v, expected: %v", mask.Count(), 9*5)
	}
	box, ok := mask.BoundingBox()
	if !ok || box != (Rectangle{X: 16, Y: 28, Width: 9, Height: 5}) {
		t.Errorf("Wrong bounding box: %v", box)
	}

	if Segment(emptyFrame(1, 64, 48), NewRedMarkerRule()).Count() != 0 {
		t.Error("Frame without marker should produce an empty mask")
	}
}

func TestSegmentImageTypes(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	nrgba.SetNRGBA(3, 4, color.NRGBA{R: 220, G: 20, B: 25, A: 255})
	mask := Segment(NewFrame(0, nrgba), NewRedMarkerRule())
	if mask.Count() != 1 || !mask.At(3, 4) {
		t.Errorf("NRGBA frame: expected exactly pixel (3, 4), got %d pixels", mask.Count())
	}

	ycbcr := image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio444)
	if Segment(NewFrame(0, ycbcr), NewRedMarkerRule()).Count() != 0 {
		t.Error("Zero YCbCr frame decodes to green and should produce an empty mask")
	}

	if Segment(Frame{}, NewRedMarkerRule()).Count() != 0 {
		t.Error("Frame without an image should produce an empty mask")
	}
}

func TestRuleFunc(t *testing.T) {
	greenOnly := RuleFunc(func(c color.RGBA) bool {
		return c.G > c.R && c.G > c.B
	})
	mask := Segment(emptyFrame(0, 10, 10), greenOnly)
	if mask.Count() != 100 {
		t.Errorf("Custom rule should select every background pixel, got %d", mask.Count())
	}
}
