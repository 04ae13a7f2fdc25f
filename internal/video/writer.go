package video

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gocv.io/x/gocv"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

const outputCodec = "MJPG"

// Writer encodes annotated frames into an MJPG video file.
type Writer struct {
	video *gocv.VideoWriter
}

func NewWriter(path string, info Info) (*Writer, error) {
	w, err := gocv.VideoWriterFile(path, outputCodec, info.FrameRate, info.Width, info.Height, true)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create video file %q", path)
	}
	return &Writer{video: w}, nil
}

func (w *Writer) Write(f *frame.Frame) error {
	mat, err := ToMat(f)
	if err != nil {
		return err
	}
	defer mat.Close()

	return w.video.Write(mat)
}

func (w *Writer) Close() error {
	return w.video.Close()
}

// Sink is a frame consumer that owns resources.
type Sink interface {
	Write(*frame.Frame) error
	Close() error
}

// MultiSink writes every frame to each of its sinks in order.
type MultiSink []Sink

func (m MultiSink) Write(f *frame.Frame) error {
	for _, s := range m {
		if err := s.Write(f); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return multierr.Combine(errs...)
}
