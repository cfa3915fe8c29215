package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "MOTION"
	DefaultConfigName = "config"
	DefaultConfigDir  = "config"
)

const (
	RuleChromaticity = "chromaticity"
	RuleChannelRange = "channel_range"
)

type Segmentation struct {
	Rule     string  `mapstructure:"rule"`
	MinRed   float64 `mapstructure:"min_red"`
	MaxGreen float64 `mapstructure:"max_green"`
	Lower    []int   `mapstructure:"lower"`
	Upper    []int   `mapstructure:"upper"`
}

type Morphology struct {
	KernelSize int  `mapstructure:"kernel_size"`
	Close      bool `mapstructure:"close"`
}

type Orientation struct {
	JumpThreshold float64 `mapstructure:"jump_threshold"`
}

type Tracking struct {
	Kalman bool `mapstructure:"kalman"`
}

type Plots struct {
	Dir    string `mapstructure:"dir"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	HTML   bool   `mapstructure:"html"`
}

type Storage struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Metrics struct {
	Textfile string `mapstructure:"textfile"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config is the whole application configuration
type Config struct {
	VideoFile      string  `mapstructure:"video_file"`
	OutputVideo    string  `mapstructure:"output_video"`
	InfoFile       string  `mapstructure:"info_file"`
	FPS            float64 `mapstructure:"fps"`
	SampleInterval int     `mapstructure:"sample_interval"`
	Scale          float64 `mapstructure:"scale"`

	Segmentation Segmentation `mapstructure:"segmentation"`
	Morphology   Morphology   `mapstructure:"morphology"`
	Orientation  Orientation  `mapstructure:"orientation"`
	Tracking     Tracking     `mapstructure:"tracking"`
	Plots        Plots        `mapstructure:"plots"`
	Storage      Storage      `mapstructure:"storage"`
	Metrics      Metrics      `mapstructure:"metrics"`
	Log          Log          `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("video_file", "videos/robot.mp4")
	v.SetDefault("output_video", "outputs/output.mp4")
	v.SetDefault("info_file", "outputs/info.txt")
	v.SetDefault("fps", 30)
	v.SetDefault("sample_interval", 1)
	v.SetDefault("scale", 1.0)

	v.SetDefault("segmentation.rule", RuleChromaticity)
	v.SetDefault("segmentation.min_red", 0.5)
	v.SetDefault("segmentation.max_green", 0.2)
	v.SetDefault("segmentation.lower", []int{150, 0, 0})
	v.SetDefault("segmentation.upper", []int{255, 80, 80})

	v.SetDefault("morphology.kernel_size", 3)
	v.SetDefault("morphology.close", true)

	v.SetDefault("orientation.jump_threshold", motion.DefaultJumpThreshold)

	v.SetDefault("tracking.kalman", false)

	v.SetDefault("plots.dir", "outputs")
	v.SetDefault("plots.width", 900)
	v.SetDefault("plots.height", 550)
	v.SetDefault("plots.html", true)

	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("metrics.textfile", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// LoadEnv reads .env files into the process environment. Missing files are skipped.
// With no paths ".env" is used.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "Can't load env file '%s'", path)
		}
	}
	return nil
}

// Load reads configuration from a YAML file and sets default values.
// An empty path searches for config.yml in ./config and the working directory; when
// nothing is found there the defaults are used. An explicit path must exist.
// Environment variables prefixed with MOTION_ override file values (MOTION_PLOTS_DIR
// overrides plots.dir).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir)
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "Can't read config file")
		}
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode config")
	}
	return cfg, nil
}

// Motion maps the file configuration onto the pipeline configuration and validates it
func (cfg *Config) Motion() (motion.Config, error) {
	rule, err := cfg.Segmentation.thresholdRule()
	if err != nil {
		return motion.Config{}, err
	}
	mcfg := motion.Config{
		FPS:            cfg.FPS,
		SampleInterval: cfg.SampleInterval,
		Rule:           rule,
		Kernel: motion.KernelConfig{
			Size:  cfg.Morphology.KernelSize,
			Close: cfg.Morphology.Close,
		},
		Scale:         cfg.Scale,
		JumpThreshold: cfg.Orientation.JumpThreshold,
		Smoothing:     cfg.Tracking.Kalman,
	}
	if err := mcfg.Validate(); err != nil {
		return motion.Config{}, err
	}
	return mcfg, nil
}

func (seg Segmentation) thresholdRule() (motion.ThresholdRule, error) {
	switch strings.ToLower(seg.Rule) {
	case RuleChromaticity:
		if seg.MinRed < 0 || seg.MinRed > 1 {
			return nil, &motion.ConfigurationError{Field: "segmentation.min_red", Reason: fmt.Sprintf("must be within [0, 1], got %v", seg.MinRed)}
		}
		if seg.MaxGreen < 0 || seg.MaxGreen > 1 {
			return nil, &motion.ConfigurationError{Field: "segmentation.max_green", Reason: fmt.Sprintf("must be within [0, 1], got %v", seg.MaxGreen)}
		}
		return motion.ChromaticityRule{MinRed: seg.MinRed, MaxGreen: seg.MaxGreen}, nil
	case RuleChannelRange:
		lower, err := rgbFrom("segmentation.lower", seg.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := rgbFrom("segmentation.upper", seg.Upper)
		if err != nil {
			return nil, err
		}
		if lower.R > upper.R || lower.G > upper.G || lower.B > upper.B {
			return nil, &motion.ConfigurationError{Field: "segmentation.lower", Reason: "must not exceed segmentation.upper"}
		}
		return motion.ChannelRangeRule{Lower: lower, Upper: upper}, nil
	default:
		return nil, &motion.ConfigurationError{Field: "segmentation.rule", Reason: fmt.Sprintf("unknown rule '%s'", seg.Rule)}
	}
}

func rgbFrom(field string, values []int) (color.RGBA, error) {
	if len(values) != 3 {
		return color.RGBA{}, &motion.ConfigurationError{Field: field, Reason: fmt.Sprintf("expected [r, g, b], got %v", values)}
	}
	for _, v := range values {
		if v < 0 || v > 255 {
			return color.RGBA{}, &motion.ConfigurationError{Field: field, Reason: fmt.Sprintf("channel value %d is outside [0, 255]", v)}
		}
	}
	return color.RGBA{R: uint8(values[0]), G: uint8(values[1]), B: uint8(values[2]), A: 255}, nil
}
