package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const ellipseSegments = 72

// pixelDPI makes one plot point one output pixel
const pixelDPI = 72

var (
	centroidColor = color.RGBA{R: 255, G: 255, A: 255}
	ellipseColor  = color.RGBA{G: 255, B: 255, A: 255}
	pathColor     = color.RGBA{R: 255, A: 255}
	arrowColor    = color.RGBA{G: 255, A: 255}
)

// FramePlot is a plot whose data coordinates are the pixels of one video frame.
// Plot space has y pointing up, so every image point goes through ToPlot.
type FramePlot struct {
	*plot.Plot
	Width  float64
	Height float64
}

// ToPlot converts image coordinates (y down) into plot coordinates (y up)
func (fp *FramePlot) ToPlot(p motion.Point) plotter.XY {
	return plotter.XY{X: p.X, Y: fp.Height - p.Y}
}

// Overlay draws one layer over a frame plot. Overlays are independent of each other and
// are applied in the order given to Annotate.
type Overlay func(fp *FramePlot, sample motion.MotionSample) error

// NewFramePlot creates a plot showing img edge to edge with no axes
func NewFramePlot(img image.Image) *FramePlot {
	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	p := plot.New()
	p.HideAxes()
	p.X.Padding, p.Y.Padding = 0, 0
	p.Add(plotter.NewImage(img, 0, 0, w, h))
	p.X.Min, p.X.Max = 0, w
	p.Y.Min, p.Y.Max = 0, h
	return &FramePlot{Plot: p, Width: w, Height: h}
}

// Annotate draws overlays over the frame image and rasterizes the result at the frame size
func Annotate(img image.Image, sample motion.MotionSample, overlays ...Overlay) (image.Image, error) {
	fp := NewFramePlot(img)
	for _, overlay := range overlays {
		if err := overlay(fp, sample); err != nil {
			return nil, errors.Wrapf(err, "Can't annotate frame %d", sample.FrameIndex)
		}
	}
	canvas := vgimg.NewWith(vgimg.UseWH(vg.Points(fp.Width), vg.Points(fp.Height)), vgimg.UseDPI(pixelDPI))
	fp.Draw(draw.New(canvas))
	return canvas.Image(), nil
}

// DefaultOverlays is the overlay stack of the annotated output video
func DefaultOverlays() []Overlay {
	return []Overlay{
		TrajectoryOverlay,
		EllipseOverlay,
		CentroidOverlay,
		VelocityOverlay,
	}
}

// CentroidOverlay marks the centroid with a cross
func CentroidOverlay(fp *FramePlot, sample motion.MotionSample) error {
	if !sample.Detected {
		return nil
	}
	scatter, err := plotter.NewScatter(plotter.XYs{fp.ToPlot(sample.Centroid)})
	if err != nil {
		return err
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  centroidColor,
		Radius: vg.Points(4),
		Shape:  draw.CrossGlyph{},
	}
	fp.Add(scatter)
	return nil
}

// EllipseOverlay outlines the inertia ellipse of the marker
func EllipseOverlay(fp *FramePlot, sample motion.MotionSample) error {
	if !sample.Detected {
		return nil
	}
	line, err := plotter.NewLine(ellipseOutline(fp, sample.Ellipse))
	if err != nil {
		return err
	}
	line.Color = ellipseColor
	line.Width = vg.Points(2)
	fp.Add(line)
	return nil
}

// TrajectoryOverlay draws the path recorded so far
func TrajectoryOverlay(fp *FramePlot, sample motion.MotionSample) error {
	if sample.Trajectory.Len() < 2 {
		return nil
	}
	xys := make(plotter.XYs, 0, sample.Trajectory.Len())
	for pt := range sample.Trajectory.Points() {
		xys = append(xys, fp.ToPlot(pt))
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = pathColor
	line.Width = vg.Points(1)
	fp.Add(line)
	return nil
}

// VelocityOverlay draws the last displacement as an arrow from the previous trajectory
// point and prints the current speed next to the centroid
func VelocityOverlay(fp *FramePlot, sample motion.MotionSample) error {
	n := sample.Trajectory.Len()
	if !sample.Detected || n < 2 {
		return nil
	}
	from := sample.Trajectory.At(n - 2)
	to := sample.Trajectory.At(n - 1)
	if from == to {
		return nil
	}
	arrow, err := plotter.NewLine(arrowPath(fp, from, to))
	if err != nil {
		return err
	}
	arrow.Color = arrowColor
	arrow.Width = vg.Points(2)
	fp.Add(arrow)

	if !sample.SpeedAvailable {
		return nil
	}
	at := fp.ToPlot(sample.Centroid)
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: at.X + 8, Y: at.Y + 8}},
		Labels: []string{fmt.Sprintf("%.2f px/s", sample.Speed)},
	})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = arrowColor
	}
	fp.Add(labels)
	return nil
}

// ellipseOutline samples a closed polygon along the ellipse in plot coordinates
func ellipseOutline(fp *FramePlot, ellipse motion.InertiaEllipse) plotter.XYs {
	angle := ellipse.AngleDeg * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)
	xys := make(plotter.XYs, 0, ellipseSegments+1)
	for i := 0; i <= ellipseSegments; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		u := ellipse.SemiMajor * math.Cos(t)
		v := ellipse.SemiMinor * math.Sin(t)
		// Rotation in image coordinates, then flip into plot space
		pt := motion.Point{
			X: ellipse.Center.X + u*cos - v*sin,
			Y: ellipse.Center.Y + u*sin + v*cos,
		}
		xys = append(xys, fp.ToPlot(pt))
	}
	return xys
}

// arrowPath returns a polyline: shaft from -> to, then both barbs of the head
func arrowPath(fp *FramePlot, from, to motion.Point) plotter.XYs {
	d := to.Sub(from)
	length := math.Hypot(d.X, d.Y)
	head := math.Min(6, length/2)
	ux, uy := d.X/length, d.Y/length
	left := motion.Point{
		X: to.X - head*(ux*math.Cos(math.Pi/6)-uy*math.Sin(math.Pi/6)),
		Y: to.Y - head*(uy*math.Cos(math.Pi/6)+ux*math.Sin(math.Pi/6)),
	}
	right := motion.Point{
		X: to.X - head*(ux*math.Cos(math.Pi/6)+uy*math.Sin(math.Pi/6)),
		Y: to.Y - head*(uy*math.Cos(math.Pi/6)-ux*math.Sin(math.Pi/6)),
	}
	return plotter.XYs{
		fp.ToPlot(from),
		fp.ToPlot(to),
		fp.ToPlot(left),
		fp.ToPlot(to),
		fp.ToPlot(right),
	}
}
