package video

import (
	"gocv.io/x/gocv"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

const (
	windowTitle = "Motion Estimation"
	waitKeyMs   = 30
	quitKey     = 'q'
)

// Window displays annotated frames and watches for the quit key.
type Window struct {
	window *gocv.Window
}

func NewWindow() *Window {
	return &Window{window: gocv.NewWindow(windowTitle)}
}

func (w *Window) Write(f *frame.Frame) error {
	mat, err := ToMat(f)
	if err != nil {
		return err
	}
	defer mat.Close()

	w.window.IMShow(mat)
	return nil
}

// Stopped waits briefly for a key press and reports whether it was 'q'.
func (w *Window) Stopped() bool {
	return w.window.WaitKey(waitKeyMs)&0xff == quitKey
}

func (w *Window) Close() error {
	return w.window.Close()
}
