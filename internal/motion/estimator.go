package motion

import (
	"context"

	uuid "github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

// ErrNoFrames is returned when the source cannot deliver its first frame.
var ErrNoFrames = errors.New("failed to read frames from video")

// FrameSource delivers decoded frames in playback order. Read reports false
// once no more frames are available, whether the stream ended or failed.
type FrameSource interface {
	Read() (*frame.Frame, bool)
}

type FrameSink interface {
	Write(*frame.Frame) error
}

// StopSignal is polled once per frame; a true result ends the run after the
// frame in flight.
type StopSignal interface {
	Stopped() bool
}

type FrameObserver interface {
	Observe(runID uuid.UUID, result FrameResult) error
}

type Summary struct {
	RunID   uuid.UUID
	Frames  int
	Flagged int
}

// Estimator drives the detector over a whole video.
type Estimator struct {
	detector  *Detector
	observers []FrameObserver
	logger    *zap.SugaredLogger
}

func NewEstimator(detector *Detector, logger *zap.SugaredLogger, observers ...FrameObserver) *Estimator {
	return &Estimator{
		detector:  detector,
		observers: observers,
		logger:    logger,
	}
}

// Run annotates each frame with the motion found against the frame read
// after it and writes it to sink. ctx is only checked between frames and
// stop may be nil.
func (e *Estimator) Run(ctx context.Context, src FrameSource, sink FrameSink, stop StopSignal) (Summary, error) {
	runID, err := uuid.NewV4()
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to generate run id")
	}
	summary := Summary{RunID: runID}

	buffer := frame.NewFrameBuffer()
	first, ok := src.Read()
	if !ok {
		return summary, ErrNoFrames
	}
	buffer.Push(first)

	e.logger.Infow("motion estimation started", "run", runID.String())

	for e.fill(buffer, src) {
		current, reference := buffer.Current(), buffer.Reference()

		result, err := e.detector.Detect(current, reference)
		if err != nil {
			return summary, errors.Wrapf(err, "failed to process frame %d", current.FrameIndex())
		}
		summary.Frames++
		summary.Flagged += result.Flagged()

		if err := sink.Write(current); err != nil {
			return summary, errors.Wrapf(err, "failed to write frame %d", current.FrameIndex())
		}
		for _, o := range e.observers {
			if err := o.Observe(runID, result); err != nil {
				return summary, errors.Wrapf(err, "failed to report frame %d", current.FrameIndex())
			}
		}

		if stop != nil && stop.Stopped() {
			e.logger.Infow("stop requested", "frame", current.FrameIndex())
			break
		}
		if ctx.Err() != nil {
			e.logger.Infow("motion estimation cancelled", "frame", current.FrameIndex())
			break
		}

		buffer.Advance()
	}

	e.logger.Infow("motion estimation finished",
		"run", runID.String(),
		"frames", summary.Frames,
		"flagged", summary.Flagged)

	return summary, nil
}

// fill reads the reference frame into buffer and reports whether a full
// pair is available.
func (e *Estimator) fill(buffer *frame.FrameBuffer, src FrameSource) bool {
	if buffer.Ready() {
		return true
	}
	next, ok := src.Read()
	if !ok {
		return false
	}
	buffer.Push(next)
	return true
}
