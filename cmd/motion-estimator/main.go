package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LdDl/motion-estimator/internal/config"
	"github.com/LdDl/motion-estimator/internal/logging"
	"github.com/LdDl/motion-estimator/internal/metrics"
	"github.com/LdDl/motion-estimator/internal/render"
	"github.com/LdDl/motion-estimator/internal/report"
	"github.com/LdDl/motion-estimator/internal/storage"
	"github.com/LdDl/motion-estimator/internal/video"
	"github.com/LdDl/motion-estimator/motion"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	configFile = flag.String("conf", "", "Path to YAML configuration. Empty searches ./config and the working directory")
	envFile    = flag.String("env", ".env", "Path to .env file")
)

func main() {
	flag.Parse()
	stderrLogger := zerolog.New(os.Stderr)

	if err := config.LoadEnv(*envFile); err != nil {
		stderrLogger.Fatal().Err(err).Msg("Can't load env")
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		stderrLogger.Fatal().Err(err).Msg("Can't load config")
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		stderrLogger.Fatal().Err(err).Msg("Can't open log file")
	}
	var logWriter io.Writer
	if logFile != nil {
		logWriter = logFile
		defer logFile.Close()
	}
	logger := logging.New(cfg.Log.Level, logWriter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("Estimation failed")
		stop()
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

// createSink opens the annotated video output
var createSink = video.Create

type fpsReporter interface {
	FPS() float64
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	motionCfg, err := cfg.Motion()
	if err != nil {
		return errors.Wrap(err, "Invalid configuration")
	}

	src, err := video.Open(cfg.VideoFile)
	if err != nil {
		return err
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}
	if reporter, ok := src.(fpsReporter); ok && reporter.FPS() > 0 && reporter.FPS() != motionCfg.FPS {
		logger.Info().Float64("configured", motionCfg.FPS).Float64("container", reporter.FPS()).Msg("Using container FPS")
		motionCfg.FPS = reporter.FPS()
	}
	tap := video.NewTap(src)

	pipeline, err := motion.NewPipeline(motionCfg)
	if err != nil {
		return err
	}
	log := logger.With().Str("run_id", pipeline.RunID().String()).Logger()
	log.Info().
		Str("video", cfg.VideoFile).
		Float64("fps", motionCfg.FPS).
		Int("sample_interval", motionCfg.SampleInterval).
		Bool("kalman", motionCfg.Smoothing).
		Msg("Starting estimation")

	sink, err := createSink(cfg.OutputVideo, motionCfg.FPS)
	if err != nil {
		return err
	}
	sinkClosed := false
	defer func() {
		if !sinkClosed {
			sink.Close()
		}
	}()

	var store *storage.Store
	if cfg.Storage.SQLitePath != "" {
		store, err = storage.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.BeginRun(pipeline.RunID(), cfg.VideoFile, motionCfg); err != nil {
			return err
		}
	}

	met := metrics.New()
	series := render.NewSeries()
	overlays := render.DefaultOverlays()

	for sample, err := range pipeline.Run(ctx, tap) {
		if err != nil {
			return err
		}
		series.Observe(sample)
		met.Observe(sample)
		if store != nil {
			if err := store.Add(sample); err != nil {
				return err
			}
		}
		if !sample.Detected {
			log.Debug().Int("frame", sample.FrameIndex).Msg("Marker not found")
		}
		if !sample.SampleFrame {
			continue
		}
		annotated, err := render.Annotate(tap.Last().Image, sample, overlays...)
		if err != nil {
			return errors.Wrapf(err, "Can't annotate frame %d", sample.FrameIndex)
		}
		if err := sink.WriteFrame(annotated); err != nil {
			return errors.Wrapf(err, "Can't write frame %d", sample.FrameIndex)
		}
		if sample.SpeedAvailable {
			log.Debug().Int("frame", sample.FrameIndex).Float64("speed", sample.Speed).Msg("Speed updated")
		}
	}

	sinkClosed = true
	if err := sink.Close(); err != nil {
		return errors.Wrapf(err, "Can't finalize output video '%s'", cfg.OutputVideo)
	}

	summary := pipeline.Summary()
	met.Finish(summary)
	if store != nil {
		if err := store.Finish(summary); err != nil {
			return err
		}
	}

	info, err := report.NewInfo(summary, pipeline.Trajectory(), motionCfg.Scale)
	if err != nil {
		return err
	}
	if err := info.Save(cfg.InfoFile); err != nil {
		return err
	}

	size := render.Bounds{Width: float64(cfg.Plots.Width), Height: float64(cfg.Plots.Height)}
	frame := size
	if img := tap.Last().Image; img != nil {
		frame = render.Bounds{Width: float64(img.Bounds().Dx()), Height: float64(img.Bounds().Dy())}
	}
	files, err := render.SaveAll(series, cfg.Plots.Dir, frame, size)
	if err != nil {
		return err
	}
	if cfg.Plots.HTML {
		chartPath := filepath.Join(cfg.Plots.Dir, render.ChartFile)
		if err := render.SaveChart(series, "Robot motion", chartPath); err != nil {
			return err
		}
		files = append(files, chartPath)
	}
	if cfg.Metrics.Textfile != "" {
		if err := met.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	log.Info().
		Int("frames", summary.Frames).
		Int("gaps", summary.Gaps).
		Float64("total_distance", summary.TotalDistance).
		Float64("total_time", summary.TotalTime).
		Float64("average_speed", summary.AverageSpeed).
		Strs("plots", files).
		Str("info", cfg.InfoFile).
		Msg("Estimation done")
	return nil
}
