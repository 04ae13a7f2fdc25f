package motion

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kmmndr/motion_estimation/internal/config"
	"github.com/kmmndr/motion_estimation/internal/frame"
)

// Marker draws the motion points of a frame onto it.
type Marker interface {
	Mark(f *frame.Frame, points []image.Point) error
}

type Detector struct {
	blockSize int
	threshold float64
	workers   int
	marker    Marker
	logger    *zap.SugaredLogger
}

func NewDetector(cfg config.Config, marker Marker, logger *zap.SugaredLogger) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid detector config")
	}
	if marker == nil {
		return nil, errors.New("detector needs a marker")
	}

	return &Detector{
		blockSize: cfg.MacroBlockSize,
		threshold: float64(cfg.MotionThreshold),
		workers:   cfg.Workers,
		marker:    marker,
		logger:    logger,
	}, nil
}

// Detect searches every block of current in reference and marks current at
// the matched centre of each block whose distance reaches the threshold.
func (d *Detector) Detect(current, reference *frame.Frame) (FrameResult, error) {
	if !current.SameGeometry(reference) {
		return FrameResult{}, errors.Errorf("frame %d is %dx%dx%d but reference frame %d is %dx%dx%d",
			current.FrameIndex(), current.Width(), current.Height(), current.Channels(),
			reference.FrameIndex(), reference.Width(), reference.Height(), reference.Channels())
	}

	gridRows := ceilDiv(current.Height(), d.blockSize)
	gridCols := ceilDiv(current.Width(), d.blockSize)
	matches := make([]Match, gridRows*gridCols)

	// Each task owns one row of matches; frames are only read here.
	var g errgroup.Group
	g.SetLimit(d.workers)
	for gr := 0; gr < gridRows; gr++ {
		gr := gr
		g.Go(func() error {
			row := gr * d.blockSize
			for gc := 0; gc < gridCols; gc++ {
				block := current.Block(row, gc*d.blockSize, d.blockSize)
				matches[gr*gridCols+gc] = Search(block, d.blockSize, reference)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FrameResult{}, err
	}

	result := FrameResult{Index: current.FrameIndex(), Blocks: len(matches)}
	var points []image.Point
	for i, m := range matches {
		if !m.Found || m.Distance < d.threshold {
			continue
		}
		origin := image.Pt((i%gridCols)*d.blockSize, (i/gridCols)*d.blockSize)
		result.Detections = append(result.Detections, Detection{Block: origin, Match: m})
		points = append(points, m.Point)
	}

	// Marks go on only after every block has been searched.
	if len(points) > 0 {
		if err := d.marker.Mark(current, points); err != nil {
			return FrameResult{}, errors.Wrapf(err, "unable to mark frame %d", current.FrameIndex())
		}
	}

	d.logger.Debugw("frame processed",
		"frame", result.Index,
		"blocks", result.Blocks,
		"flagged", result.Flagged())

	return result, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
