package motion

import (
	"context"
	"io"
	"iter"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Pipeline turns a stream of frames into a stream of MotionSample.
// It holds the only cross-frame state (trajectory, speed, orientation history, smoother)
// and must be created anew for every video.
type Pipeline struct {
	cfg   Config
	runID uuid.UUID

	cleaner    *MaskCleaner
	trajectory *TrajectoryAccumulator
	speed      *SpeedEstimator
	jump       *JumpFilter
	smoother   *CentroidSmoother

	lastIndex int
	started   bool
	consumed  bool
	summary   Summary
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithRunID sets the identifier stamped on every sample. Default is a random UUID
func WithRunID(id uuid.UUID) Option {
	return func(p *Pipeline) {
		p.runID = id
	}
}

// NewPipeline validates cfg and creates a pipeline ready for one run
func NewPipeline(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:        cfg,
		runID:      uuid.New(),
		cleaner:    NewMaskCleaner(cfg.Kernel),
		trajectory: NewTrajectoryAccumulator(),
		speed:      NewSpeedEstimator(cfg.FPS, cfg.SampleInterval),
		jump:       NewJumpFilter(cfg.JumpThreshold),
	}
	if cfg.Smoothing {
		p.smoother = NewCentroidSmoother(cfg.FPS)
	}
	for _, opt := range opts {
		opt(p)
	}
	p.summary = Summary{
		RunID:          p.runID,
		FPS:            cfg.FPS,
		SampleInterval: cfg.SampleInterval,
	}
	return p, nil
}

// RunID returns pipeline's run identifier
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

// Config returns pipeline's configuration
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Trajectory returns the trajectory recorded so far
func (p *Pipeline) Trajectory() Trajectory {
	return p.trajectory.Snapshot()
}

// Summary returns aggregates over the frames processed so far
func (p *Pipeline) Summary() Summary {
	summary := p.summary
	summary.finish(p.speed.TotalDistance()*p.cfg.scale(), p.speed.Updates())
	return summary
}

// Process runs segment -> clean -> analyze -> accumulate -> speed for one frame.
// A frame without foreground pixels yields a sample with Detected == false; it is not
// an error. Frames must arrive with strictly increasing indices.
func (p *Pipeline) Process(frame Frame) (MotionSample, error) {
	if p.started && frame.Index <= p.lastIndex {
		return MotionSample{}, errors.Errorf("frame %d arrived after frame %d", frame.Index, p.lastIndex)
	}
	p.started = true
	p.lastIndex = frame.Index

	sample := MotionSample{
		RunID:       p.runID,
		FrameIndex:  frame.Index,
		SampleFrame: p.speed.IsSampleFrame(frame.Index),
	}

	mask := p.cleaner.Clean(Segment(frame, p.cfg.Rule))
	moments := Analyze(mask)

	center, detected := moments.Centroid()
	if detected {
		sample.Detected = true
		sample.Centroid = center
		sample.Area = moments.M00
		sample.BBox, _ = mask.BoundingBox()
		sample.Ellipse, _ = moments.InertiaEllipse()
		if angle, ok := moments.Orientation(); ok {
			sample.OrientationDefined = true
			sample.Orientation = p.jump.Filter(angle)
			sample.Ellipse.AngleDeg = sample.Orientation
		}
	}

	sample.Trajectory = p.trajectory.Record(center, detected)

	speed, ok := p.speed.Update(frame.Index, center, detected)
	sample.SpeedAvailable = ok
	if ok {
		sample.Speed = speed * p.cfg.scale()
	}

	if p.smoother != nil {
		smoothed, ok, err := p.smoother.Observe(center, detected)
		if err != nil {
			return sample, errors.Wrapf(err, "Can't smooth centroid of frame %d", frame.Index)
		}
		sample.Smoothed = smoothed
		sample.SmoothedValid = ok
	}

	p.summary.add(sample)
	return sample, nil
}

// Run returns a lazy, single-pass sequence of samples, one per frame of src, in order.
// The sequence ends quietly when src returns io.EOF. A read or processing failure is
// yielded once as the error and ends the sequence. Cancellation of ctx is checked before
// each frame is requested. Calling Run a second time yields ErrPipelineConsumed.
func (p *Pipeline) Run(ctx context.Context, src FrameSource) iter.Seq2[MotionSample, error] {
	return func(yield func(MotionSample, error) bool) {
		if p.consumed {
			yield(MotionSample{}, ErrPipelineConsumed)
			return
		}
		p.consumed = true
		for {
			if err := ctx.Err(); err != nil {
				yield(MotionSample{}, err)
				return
			}
			frame, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(MotionSample{}, errors.Wrap(err, "Can't read frame"))
				return
			}
			sample, err := p.Process(frame)
			if err != nil {
				yield(sample, err)
				return
			}
			if !yield(sample, nil) {
				return
			}
		}
	}
}
