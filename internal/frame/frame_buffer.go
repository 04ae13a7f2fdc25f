package frame

// FrameBuffer holds the current frame and the reference frame read after it.
type FrameBuffer struct {
	current   *Frame
	reference *Frame
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

func (fb *FrameBuffer) Push(f *Frame) bool {
	switch {
	case fb.current == nil:
		fb.current = f
	case fb.reference == nil:
		fb.reference = f
	default:
		return false
	}
	return true
}

func (fb *FrameBuffer) Ready() bool {
	return fb.current != nil && fb.reference != nil
}

func (fb *FrameBuffer) Current() *Frame {
	return fb.current
}

func (fb *FrameBuffer) Reference() *Frame {
	return fb.reference
}

// Advance makes the reference frame current and returns the previous one.
func (fb *FrameBuffer) Advance() *Frame {
	previous := fb.current
	fb.current = fb.reference
	fb.reference = nil
	return previous
}
