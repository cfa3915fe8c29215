package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
)

// Info is everything written to the run info file
type Info struct {
	Summary motion.Summary
	Path    PathStats
	// Name of the distance unit, "pixels" unless a scale is configured
	Unit string
}

// NewInfo builds the info for a finished run
func NewInfo(summary motion.Summary, tr motion.Trajectory, scale float64) (Info, error) {
	unit := "pixels"
	if scale != 0 && scale != 1 {
		unit = "units"
	}
	path, err := Path(tr)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Summary: summary,
		Path:    path,
		Unit:    unit,
	}, nil
}

// Write prints the "Robot Parameters" block followed by detection statistics
func (info Info) Write(w io.Writer) error {
	s := info.Summary
	lines := []string{
		"",
		"-------------------- Robot Parameters -----------------------",
		fmt.Sprintf("Video FPS: %g frames per second", s.FPS),
		fmt.Sprintf("Sampling Interval: every %d frames", s.SampleInterval),
		fmt.Sprintf("Average Speed: %.2f %s per second", s.AverageSpeed, info.Unit),
		fmt.Sprintf("Total Distance: %.2f %s", s.TotalDistance, info.Unit),
		fmt.Sprintf("Total Time: %.2f seconds", s.TotalTime),
		"--------------------------------------------------------------",
		fmt.Sprintf("Run ID: %s", s.RunID),
		fmt.Sprintf("Frames: %d", s.Frames),
		fmt.Sprintf("Detections: %d", s.Detections),
		fmt.Sprintf("Frames Without Marker: %d", s.Gaps),
		fmt.Sprintf("Undefined Orientations: %d", s.UndefinedOrientations),
		fmt.Sprintf("Speed Updates: %d", s.SpeedUpdates),
		fmt.Sprintf("Trajectory Points: %d", info.Path.Points),
		fmt.Sprintf("Trajectory Length: %.2f pixels", info.Path.Length),
		fmt.Sprintf("Net Displacement: %.2f pixels", info.Path.Displacement),
		fmt.Sprintf("Straightness: %.3f", info.Path.Straightness()),
		fmt.Sprintf("Self Crossing: %t", info.Path.SelfCrossing),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "Can't write info")
		}
	}
	return nil
}

// Save writes the info file, creating its directory when needed
func (info Info) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "Can't create info directory for '%s'", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Can't create info file '%s'", path)
	}
	if err := info.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
