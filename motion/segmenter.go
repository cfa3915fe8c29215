package motion

import (
	"image/color"
)

// ThresholdRule classifies a single pixel as marker (true) or background (false).
// Implementations must be pure: the result depends only on the color and the rule's bounds.
type ThresholdRule interface {
	Classify(c color.RGBA) bool
}

// RuleFunc adapts an ordinary function to ThresholdRule
type RuleFunc func(c color.RGBA) bool

// Classify calls f(c)
func (f RuleFunc) Classify(c color.RGBA) bool {
	return f(c)
}

// ChromaticityRule selects pixels by normalized red and green chromaticity:
// r = R/(R+G+B) >= MinRed and g = G/(R+G+B) <= MaxGreen.
// Chromaticity is brightness independent, so a red marker stays red in shadow.
type ChromaticityRule struct {
	MinRed   float64
	MaxGreen float64
}

// NewRedMarkerRule returns the default rule for a red marker
func NewRedMarkerRule() ChromaticityRule {
	return ChromaticityRule{
		MinRed:   0.5,
		MaxGreen: 0.2,
	}
}

// Classify implements ThresholdRule
func (rule ChromaticityRule) Classify(c color.RGBA) bool {
	sum := float64(c.R) + float64(c.G) + float64(c.B)
	if sum == 0 {
		return false
	}
	r := float64(c.R) / sum
	g := float64(c.G) / sum
	return r >= rule.MinRed && g <= rule.MaxGreen
}

// ChannelRangeRule selects pixels whose R, G and B all lie within inclusive bounds.
// Alpha is ignored.
type ChannelRangeRule struct {
	Lower color.RGBA
	Upper color.RGBA
}

// Classify implements ThresholdRule
func (rule ChannelRangeRule) Classify(c color.RGBA) bool {
	return c.R >= rule.Lower.R && c.R <= rule.Upper.R &&
		c.G >= rule.Lower.G && c.G <= rule.Upper.G &&
		c.B >= rule.Lower.B && c.B <= rule.Upper.B
}

// Segment applies rule to every pixel of the frame and returns the resulting mask.
// The frame is not modified.
func Segment(frame Frame, rule ThresholdRule) *BinaryMask {
	bounds := frame.Bounds()
	mask := NewBinaryMask(bounds)
	if frame.Image == nil {
		return mask
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if rule.Classify(frame.rgbaAt(x, y)) {
				mask.Set(x, y, true)
			}
		}
	}
	return mask
}
