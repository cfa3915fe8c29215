package render

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	TrajectoryFile  = "Robot_trajectory.png"
	OrientationFile = "Robot_angles.png"
	PositionFile    = "Robot_position.png"
)

var (
	trajectoryColor = color.RGBA{R: 220, A: 255}
	pointsColor     = color.RGBA{B: 220, A: 255}
	angleColor      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	yColor          = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Bounds is the visible area of trajectory plots in pixels
type Bounds struct {
	Width  float64
	Height float64
}

// TrajectoryPlot draws the full path as a line with hollow markers at every point.
// The y axis is inverted so the picture matches the video frame.
func TrajectoryPlot(tr motion.Trajectory, bounds Bounds) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Complete Trajectory"
	p.X.Label.Text = "Horizontal Position"
	p.Y.Label.Text = "Vertical Position"
	p.X.Min, p.X.Max = 0, bounds.Width
	p.Y.Min, p.Y.Max = 0, bounds.Height
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	if tr.Len() == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, 0, tr.Len())
	for pt := range tr.Points() {
		xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build trajectory line")
	}
	line.Color = trajectoryColor
	line.Width = vg.Points(1)
	points.GlyphStyle = draw.GlyphStyle{
		Color:  pointsColor,
		Radius: vg.Points(3),
		Shape:  draw.RingGlyph{},
	}
	p.Add(line, points)
	p.Legend.Add("Complete Trajectory", line)
	p.Legend.Add("Trajectory Points", points)
	p.Legend.Top = true

	return p, nil
}

// OrientationPlot draws the orientation angle against the frame number.
// Frames with an undefined orientation are left out.
func OrientationPlot(series *Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Angle in Each Frame"
	p.X.Label.Text = "Frame Number"
	p.Y.Label.Text = "Angle (degrees)"
	p.Y.Min, p.Y.Max = -90, 90

	xys := finite(series.Frames, series.Orientations)
	if len(xys) == 0 {
		return p, nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build orientation line")
	}
	line.Color = angleColor
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("Angle", line)
	return p, nil
}

// PositionPlot draws centroid x and y against the frame number
func PositionPlot(series *Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Centroid Position in Each Frame"
	p.X.Label.Text = "Frame Number"
	p.Y.Label.Text = "Position (pixels)"

	for _, axis := range []struct {
		name   string
		values []float64
		color  color.Color
	}{
		{"X", series.X, trajectoryColor},
		{"Y", series.Y, yColor},
	} {
		xys := finite(series.Frames, axis.values)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build %s line", axis.name)
		}
		line.Color = axis.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(axis.name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// Save writes the plot as a PNG of width x height pixels
func Save(p *plot.Plot, width, height float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "Can't create plot directory for '%s'", path)
	}
	canvas := vgimg.NewWith(vgimg.UseWH(vg.Points(width), vg.Points(height)), vgimg.UseDPI(pixelDPI))
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Can't create plot '%s'", path)
	}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "Can't save plot '%s'", path)
	}
	return file.Close()
}

// SaveAll renders the trajectory, orientation and position plots into dir.
// frame limits the trajectory axes, size is the image size of every plot in points.
func SaveAll(series *Series, dir string, frame, size Bounds) ([]string, error) {
	trajectory, err := TrajectoryPlot(series.Trajectory(), frame)
	if err != nil {
		return nil, err
	}
	orientation, err := OrientationPlot(series)
	if err != nil {
		return nil, err
	}
	position, err := PositionPlot(series)
	if err != nil {
		return nil, err
	}
	files := []struct {
		p    *plot.Plot
		name string
	}{
		{trajectory, TrajectoryFile},
		{orientation, OrientationFile},
		{position, PositionFile},
	}
	saved := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := Save(f.p, size.Width, size.Height, path); err != nil {
			return saved, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}

func finite(frames []int, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(frames[i]), Y: v})
	}
	return xys
}
