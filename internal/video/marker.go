package video

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

// MarkColor is drawn on colour frames; gray frames are marked white.
var MarkColor = color.RGBA{R: 255, A: 255}

var grayMark = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// CircleMarker draws filled circles at motion points with OpenCV.
type CircleMarker struct {
	radius int
}

func NewCircleMarker() *CircleMarker {
	return &CircleMarker{radius: 1}
}

func (m *CircleMarker) Mark(f *frame.Frame, points []image.Point) error {
	mat, err := ToMat(f)
	if err != nil {
		return err
	}
	defer mat.Close()

	c := MarkColor
	if f.Channels() == 1 {
		c = grayMark
	}
	for _, p := range points {
		gocv.Circle(&mat, p, m.radius, c, -1)
	}

	// The mat may not share the frame's memory.
	copy(f.Bytes(), mat.ToBytes())
	return nil
}
