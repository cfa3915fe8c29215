package motion

import (
	"fmt"
	"math"
)

// Config holds read-only parameters of a pipeline run.
type Config struct {
	// Video frame rate, frames per second. Must be positive
	FPS float64
	// Number of frames between speed measurements. Must be positive
	SampleInterval int
	// Marker color rule. Default is NewRedMarkerRule()
	Rule ThresholdRule
	// Morphology structuring element
	Kernel KernelConfig
	// World units per pixel applied to speed and distance. Zero means 1 (pixels)
	Scale float64
	// Orientation flip suppression in degrees, zero disables it
	JumpThreshold float64
	// Smooth the centroid with a Kalman filter
	Smoothing bool
}

// DefaultConfig returns the configuration for a red marker filmed at 30 fps
func DefaultConfig() Config {
	return Config{
		FPS:            30,
		SampleInterval: 1,
		Rule:           NewRedMarkerRule(),
		Kernel:         DefaultKernelConfig(),
		Scale:          1,
		JumpThreshold:  DefaultJumpThreshold,
	}
}

// ConfigurationError reports an invalid configuration value. It is fatal: a pipeline is
// never built from a configuration that fails validation.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks every field and returns *ConfigurationError for the first bad one
func (cfg Config) Validate() error {
	if math.IsNaN(cfg.FPS) || math.IsInf(cfg.FPS, 0) || cfg.FPS <= 0 {
		return &ConfigurationError{Field: "fps", Reason: fmt.Sprintf("must be a positive number, got %v", cfg.FPS)}
	}
	if cfg.SampleInterval <= 0 {
		return &ConfigurationError{Field: "sample_interval", Reason: fmt.Sprintf("must be a positive integer, got %d", cfg.SampleInterval)}
	}
	if cfg.Rule == nil {
		return &ConfigurationError{Field: "segmentation.rule", Reason: "threshold rule is not set"}
	}
	if cfg.Kernel.Size <= 0 || cfg.Kernel.Size%2 == 0 {
		return &ConfigurationError{Field: "morphology.kernel_size", Reason: fmt.Sprintf("must be odd and positive, got %d", cfg.Kernel.Size)}
	}
	if cfg.Scale < 0 || math.IsNaN(cfg.Scale) {
		return &ConfigurationError{Field: "scale", Reason: fmt.Sprintf("must not be negative, got %v", cfg.Scale)}
	}
	if cfg.JumpThreshold < 0 || cfg.JumpThreshold >= 90 || math.IsNaN(cfg.JumpThreshold) {
		return &ConfigurationError{Field: "orientation.jump_threshold", Reason: fmt.Sprintf("must be within [0, 90), got %v", cfg.JumpThreshold)}
	}
	return nil
}

func (cfg Config) scale() float64 {
	if cfg.Scale == 0 {
		return 1
	}
	return cfg.Scale
}
