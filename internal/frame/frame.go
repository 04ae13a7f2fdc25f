// Package frame holds decoded video frames as dense 8-bit pixel grids and
// the rectangular block views the motion search works on.
package frame

import (
	"github.com/pkg/errors"
)

// Frame is a row-major, channel-interleaved grid of 8-bit samples. Three
// channel frames are stored in BGR order, as OpenCV decodes them.
type Frame struct {
	frameIndex int
	rows       int
	cols       int
	channels   int
	pix        []uint8
}

// NewFrame wraps pix as a rows x cols x channels frame. pix is not copied.
func NewFrame(frameIndex, rows, cols, channels int, pix []uint8) (*Frame, error) {
	if rows <= 0 || cols <= 0 || channels <= 0 {
		return nil, errors.New("Frame is empty")
	}
	if len(pix) != rows*cols*channels {
		return nil, errors.Errorf("frame data has %d samples, want %d", len(pix), rows*cols*channels)
	}

	return &Frame{frameIndex: frameIndex, rows: rows, cols: cols, channels: channels, pix: pix}, nil
}

// NewFilled returns a frame with every sample set to value.
func NewFilled(frameIndex, rows, cols, channels int, value uint8) (*Frame, error) {
	pix := make([]uint8, rows*cols*channels)
	for i := range pix {
		pix[i] = value
	}
	return NewFrame(frameIndex, rows, cols, channels, pix)
}

func (f *Frame) FrameIndex() int {
	return f.frameIndex
}

func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.pix))
	copy(pix, f.pix)

	return &Frame{frameIndex: f.frameIndex, rows: f.rows, cols: f.cols, channels: f.channels, pix: pix}
}

func (f *Frame) Height() int {
	return f.rows
}

func (f *Frame) Width() int {
	return f.cols
}

func (f *Frame) Channels() int {
	return f.channels
}

func (f *Frame) Bytes() []uint8 {
	return f.pix
}

func (f *Frame) At(row, col, ch int) uint8 {
	return f.pix[f.offset(row, col)+ch]
}

func (f *Frame) Set(row, col, ch int, v uint8) {
	f.pix[f.offset(row, col)+ch] = v
}

func (f *Frame) offset(row, col int) int {
	return (row*f.cols + col) * f.channels
}

func (f *Frame) SameGeometry(other *Frame) bool {
	return f.rows == other.rows && f.cols == other.cols && f.channels == other.channels
}
