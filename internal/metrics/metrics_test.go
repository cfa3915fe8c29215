package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()
	m.Observe(motion.MotionSample{Detected: true, Area: 45, OrientationDefined: true, SampleFrame: true})
	m.Observe(motion.MotionSample{})
	m.Observe(motion.MotionSample{Detected: true, Area: 49, SampleFrame: true, SpeedAvailable: true, Speed: 40})
	m.Observe(motion.MotionSample{Detected: true, Area: 49, OrientationDefined: true, SpeedAvailable: true, Speed: 40})

	assert.Equal(t, 4.0, testutil.ToFloat64(m.framesTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.detectionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gapsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.undefinedOrientationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.speedUpdatesTotal))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.speed))
	assert.Equal(t, 49.0, testutil.ToFloat64(m.area))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.Observe(motion.MotionSample{Detected: true, Area: 45, OrientationDefined: true})
	m.Finish(motion.Summary{TotalDistance: 300})

	path := filepath.Join(t.TempDir(), "metrics", "motion.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "motion_frames_total 1")
	assert.Contains(t, out, "motion_total_distance 300")
	assert.Contains(t, out, "# HELP motion_gaps_total")
}

func TestMetrics_Registry(t *testing.T) {
	m := New()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)
}
