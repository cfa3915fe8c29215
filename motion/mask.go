package motion

import "image"

const (
	maskOn  uint8 = 255
	maskOff uint8 = 0
)

// BinaryMask is a foreground/background grid with the same bounds as its source frame.
// Foreground pixels are stored as 255 and background as 0 in an underlying *image.Gray,
// which keeps the mask usable by image filters without conversion.
type BinaryMask struct {
	gray *image.Gray
}

// NewBinaryMask returns an empty (all background) mask with the given bounds
func NewBinaryMask(bounds image.Rectangle) *BinaryMask {
	return &BinaryMask{gray: image.NewGray(bounds)}
}

// Bounds returns mask's bounds
func (mask *BinaryMask) Bounds() image.Rectangle {
	return mask.gray.Rect
}

// At reports whether the pixel at (x, y) is foreground. Pixels outside bounds are background.
func (mask *BinaryMask) At(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(mask.gray.Rect) {
		return false
	}
	return mask.gray.Pix[mask.gray.PixOffset(x, y)] != maskOff
}

// Set marks the pixel at (x, y) as foreground or background
func (mask *BinaryMask) Set(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(mask.gray.Rect) {
		return
	}
	v := maskOff
	if on {
		v = maskOn
	}
	mask.gray.Pix[mask.gray.PixOffset(x, y)] = v
}

// Count returns the number of foreground pixels
func (mask *BinaryMask) Count() int {
	n := 0
	bounds := mask.gray.Rect
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := mask.gray.Pix[mask.gray.PixOffset(bounds.Min.X, y):mask.gray.PixOffset(bounds.Max.X, y)]
		for _, v := range row {
			if v != maskOff {
				n++
			}
		}
	}
	return n
}

// BoundingBox returns the tight box around foreground pixels and false if there are none
func (mask *BinaryMask) BoundingBox() (Rectangle, bool) {
	bounds := mask.gray.Rect
	box := image.Rectangle{}
	found := false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !mask.At(x, y) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				box = px
				found = true
				continue
			}
			box = box.Union(px)
		}
	}
	return NewRectFrom(box), found
}

// Equal reports whether both masks have the same bounds and the same foreground pixels
func (mask *BinaryMask) Equal(other *BinaryMask) bool {
	if mask.Bounds() != other.Bounds() {
		return false
	}
	bounds := mask.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.At(x, y) != other.At(x, y) {
				return false
			}
		}
	}
	return true
}

// Gray returns a copy of the mask as a grayscale image (foreground = 255).
func (mask *BinaryMask) Gray() *image.Gray {
	cp := image.NewGray(mask.gray.Rect)
	copy(cp.Pix, mask.gray.Pix)
	return cp
}

// binarize forces every pixel of gray to 0 or 255 and wraps it without copying
func binarize(gray *image.Gray) *BinaryMask {
	for i, v := range gray.Pix {
		if v >= 128 {
			gray.Pix[i] = maskOn
		} else {
			gray.Pix[i] = maskOff
		}
	}
	return &BinaryMask{gray: gray}
}
