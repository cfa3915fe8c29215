package metrics

import (
	"os"
	"path/filepath"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters and gauges for one estimator process.
type Metrics struct {
	registry                   *prometheus.Registry
	framesTotal                prometheus.Counter
	detectionsTotal            prometheus.Counter
	gapsTotal                  prometheus.Counter
	undefinedOrientationsTotal prometheus.Counter
	speedUpdatesTotal          prometheus.Counter
	speed                      prometheus.Gauge
	area                       prometheus.Gauge
	totalDistance              prometheus.Gauge
}

// New creates and registers the estimator metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	framesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "motion_frames_total",
		Help: "Total number of processed frames",
	})
	detectionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "motion_detections_total",
		Help: "Total number of frames where the marker was found",
	})
	gapsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "motion_gaps_total",
		Help: "Total number of frames without the marker",
	})
	undefinedOrientationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "motion_undefined_orientations_total",
		Help: "Total number of detections with an isotropic shape",
	})
	speedUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "motion_speed_updates_total",
		Help: "Total number of speed recomputations on sample frames",
	})
	speed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "motion_speed",
		Help: "Last available speed, units per second",
	})
	area := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "motion_marker_area_pixels",
		Help: "Area of the last detected marker",
	})
	totalDistance := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "motion_total_distance",
		Help: "Distance accumulated between speed samples, units",
	})

	registry.MustRegister(
		framesTotal,
		detectionsTotal,
		gapsTotal,
		undefinedOrientationsTotal,
		speedUpdatesTotal,
		speed,
		area,
		totalDistance,
	)

	return &Metrics{
		registry:                   registry,
		framesTotal:                framesTotal,
		detectionsTotal:            detectionsTotal,
		gapsTotal:                  gapsTotal,
		undefinedOrientationsTotal: undefinedOrientationsTotal,
		speedUpdatesTotal:          speedUpdatesTotal,
		speed:                      speed,
		area:                       area,
		totalDistance:              totalDistance,
	}
}

// Observe accounts one emitted sample.
// A speed update is counted on sample frames that report a speed.
func (m *Metrics) Observe(sample motion.MotionSample) {
	m.framesTotal.Inc()
	if !sample.Detected {
		m.gapsTotal.Inc()
	} else {
		m.detectionsTotal.Inc()
		m.area.Set(sample.Area)
		if !sample.OrientationDefined {
			m.undefinedOrientationsTotal.Inc()
		}
	}
	if sample.SpeedAvailable {
		m.speed.Set(sample.Speed)
		if sample.SampleFrame {
			m.speedUpdatesTotal.Inc()
		}
	}
}

// Finish records run totals.
func (m *Metrics) Finish(summary motion.Summary) {
	m.totalDistance.Set(summary.TotalDistance)
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile dumps the metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "Can't create metrics directory for '%s'", path)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "Can't write metrics to '%s'", path)
	}
	return nil
}
