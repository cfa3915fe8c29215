package render

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

const ChartFile = "Robot_motion.html"

// WriteChart renders an interactive page with speed and orientation per frame.
// Undefined values become gaps in the lines.
func WriteChart(w io.Writer, series *Series, title string) error {
	frames := make([]string, 0, series.Len())
	for _, frame := range series.Frames {
		frames = append(frames, strconv.Itoa(frame))
	}

	speed := charts.NewLine()
	speed.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Instantaneous Speed", Subtitle: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Speed (per second)"}),
	)
	speed.SetXAxis(frames).
		AddSeries("speed", lineData(series.Speeds))

	orientation := charts.NewLine()
	orientation.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Orientation"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Angle (degrees)", Min: -90, Max: 90}),
	)
	orientation.SetXAxis(frames).
		AddSeries("angle", lineData(series.Orientations))

	page := components.NewPage().SetPageTitle(title)
	page.AddCharts(speed, orientation)
	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "Can't render chart page")
	}
	return nil
}

// SaveChart writes the chart page to path
func SaveChart(series *Series, title, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "Can't create chart directory for '%s'", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Can't create '%s'", path)
	}
	if err := WriteChart(file, series, title); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}
