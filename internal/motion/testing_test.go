package motion

import (
	"image"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/kmmndr/motion_estimation/internal/config"
	"github.com/kmmndr/motion_estimation/internal/frame"
)

func filledFrame(t *testing.T, index, rows, cols, channels int, value uint8) *frame.Frame {
	t.Helper()
	f, err := frame.NewFilled(index, rows, cols, channels, value)
	test.That(t, err, test.ShouldBeNil)
	return f
}

func randomFrame(t *testing.T, seed int64, rows, cols, channels int) *frame.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pix := make([]uint8, rows*cols*channels)
	for i := range pix {
		pix[i] = uint8(rng.Intn(256))
	}
	f, err := frame.NewFrame(0, rows, cols, channels, pix)
	test.That(t, err, test.ShouldBeNil)
	return f
}

func newTestDetector(t *testing.T, blockSize, threshold, workers int) *Detector {
	t.Helper()
	cfg := config.Config{MacroBlockSize: blockSize, MotionThreshold: threshold, Workers: workers}
	d, err := NewDetector(cfg, dotMarker{}, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)
	return d
}

// dotMarker sets every channel of each in-frame point to 255.
type dotMarker struct{}

func (dotMarker) Mark(f *frame.Frame, points []image.Point) error {
	for _, p := range points {
		if p.X < 0 || p.Y < 0 || p.X >= f.Width() || p.Y >= f.Height() {
			continue
		}
		for ch := 0; ch < f.Channels(); ch++ {
			f.Set(p.Y, p.X, ch, 255)
		}
	}
	return nil
}

type failingMarker struct{}

func (failingMarker) Mark(*frame.Frame, []image.Point) error {
	return errors.New("no canvas")
}

// sliceSource replays frames and then reports the end of the stream.
type sliceSource struct {
	frames []*frame.Frame
	reads  int
}

func (s *sliceSource) Read() (*frame.Frame, bool) {
	if s.reads >= len(s.frames) {
		return nil, false
	}
	f := s.frames[s.reads]
	s.reads++
	return f, true
}

type collectSink struct {
	frames []*frame.Frame
}

func (s *collectSink) Write(f *frame.Frame) error {
	s.frames = append(s.frames, f.Clone())
	return nil
}

// stopAfter fires once it has been polled n times.
type stopAfter struct {
	n     int
	polls int
}

func (s *stopAfter) Stopped() bool {
	s.polls++
	return s.polls >= s.n
}
