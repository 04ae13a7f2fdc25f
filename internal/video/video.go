// Package video connects the motion estimator to OpenCV: it decodes the
// input video into frames, encodes annotated frames and shows them in a
// window.
package video

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

// Info describes an opened video.
type Info struct {
	Width     int
	Height    int
	FrameRate float64
}

// Open opens the video file at path for reading.
func Open(path string) (*Stream, Info, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		if capture != nil {
			capture.Close()
		}
		return nil, Info{}, errors.Wrap(err, "failed to open video")
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, Info{}, errors.Errorf("failed to open video %q", path)
	}

	stream := newStream(capture)
	return stream, stream.Info(), nil
}

// FromMat copies an 8-bit Mat into a Frame.
func FromMat(mat gocv.Mat, frameIndex int) (*frame.Frame, error) {
	if mat.Empty() {
		return nil, errors.New("Frame is empty")
	}
	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
	default:
		return nil, errors.Errorf("unsupported mat type %v", mat.Type())
	}

	return frame.NewFrame(frameIndex, mat.Rows(), mat.Cols(), mat.Channels(), mat.ToBytes())
}

// ToMat copies a Frame into a new 8-bit Mat. The caller closes it.
func ToMat(f *frame.Frame) (gocv.Mat, error) {
	var mt gocv.MatType
	switch f.Channels() {
	case 1:
		mt = gocv.MatTypeCV8UC1
	case 3:
		mt = gocv.MatTypeCV8UC3
	case 4:
		mt = gocv.MatTypeCV8UC4
	default:
		return gocv.Mat{}, errors.Errorf("unsupported channel count %d", f.Channels())
	}

	mat, err := gocv.NewMatFromBytes(f.Height(), f.Width(), mt, f.Bytes())
	if err != nil {
		return mat, errors.Wrap(err, "unable to build mat from frame")
	}
	return mat, nil
}
