package motion

import (
	"image"
	"image/color"
	"math"
)

var (
	markerRed  = color.RGBA{R: 220, G: 20, B: 25, A: 255}
	background = color.RGBA{R: 40, G: 90, B: 60, A: 255}
)

// fillRect marks [x0, x1) x [y0, y1) as foreground
func fillRect(mask *BinaryMask, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask.Set(x, y, true)
		}
	}
}

// fillDisk marks every pixel within radius of (cx, cy) as foreground
func fillDisk(mask *BinaryMask, cx, cy, radius int) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				mask.Set(x, y, true)
			}
		}
	}
}

// fillRotatedBar marks pixels of a bar of the given half length and half width centered
// at (cx, cy) whose long axis points at angleDeg (image coordinates, y down)
func fillRotatedBar(mask *BinaryMask, cx, cy, halfLen, halfWidth, angleDeg float64) {
	cos := math.Cos(angleDeg * degToRad)
	sin := math.Sin(angleDeg * degToRad)
	bounds := mask.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			u := dx*cos + dy*sin
			v := -dx*sin + dy*cos
			if math.Abs(u) <= halfLen && math.Abs(v) <= halfWidth {
				mask.Set(x, y, true)
			}
		}
	}
}

// markerFrame renders a frame with a red rectangle of (2*halfW+1) x (2*halfH+1) pixels
// centered at (cx, cy) over a green background
func markerFrame(index, width, height, cx, cy, halfW, halfH int) Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	for y := cy - halfH; y <= cy+halfH; y++ {
		for x := cx - halfW; x <= cx+halfW; x++ {
			img.SetRGBA(x, y, markerRed)
		}
	}
	return NewFrame(index, img)
}

// emptyFrame renders a frame without a marker
func emptyFrame(index, width, height int) Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	return NewFrame(index, img)
}

// barFrame renders a frame with a red bar rotated by angleDeg (image coordinates, y down)
func barFrame(index, width, height int, cx, cy, halfLen, halfWidth, angleDeg float64) Frame {
	mask := NewBinaryMask(image.Rect(0, 0, width, height))
	fillRotatedBar(mask, cx, cy, halfLen, halfWidth, angleDeg)
	img := image.NewRGBA(mask.Bounds())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.At(x, y) {
				img.SetRGBA(x, y, markerRed)
			} else {
				img.SetRGBA(x, y, background)
			}
		}
	}
	return NewFrame(index, img)
}
