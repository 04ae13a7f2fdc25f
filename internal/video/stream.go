package video

import (
	"go.uber.org/multierr"
	"gocv.io/x/gocv"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

// Stream reads decoded frames from a video capture.
type Stream struct {
	Video      *gocv.VideoCapture
	mat        gocv.Mat
	frameIndex int
}

func newStream(capture *gocv.VideoCapture) *Stream {
	return &Stream{Video: capture, mat: gocv.NewMat()}
}

func (s *Stream) Close() error {
	return multierr.Combine(s.mat.Close(), s.Video.Close())
}

func (s *Stream) Fps() float64 {
	return s.Video.Get(gocv.VideoCaptureFPS)
}

func (s *Stream) Info() Info {
	return Info{
		Width:     int(s.Video.Get(gocv.VideoCaptureFrameWidth)),
		Height:    int(s.Video.Get(gocv.VideoCaptureFrameHeight)),
		FrameRate: s.Fps(),
	}
}

// Read decodes the next frame. A failed read is reported the same way as the
// end of the stream.
func (s *Stream) Read() (*frame.Frame, bool) {
	if ok := s.Video.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, false
	}

	f, err := FromMat(s.mat, s.frameIndex)
	if err != nil {
		return nil, false
	}
	s.frameIndex++
	return f, true
}

func (s *Stream) TimeAtFrame(frameIndex int) float64 {
	return timeAtFrame(frameIndex, s.Fps())
}

// Captures that report no frame rate time every frame at zero.
func timeAtFrame(frameIndex int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frameIndex) / fps
}
