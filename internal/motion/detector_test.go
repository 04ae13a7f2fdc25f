package motion

import (
	"image"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/kmmndr/motion_estimation/internal/config"
)

func TestNewDetectorValidatesConfig(t *testing.T) {
	_, err := NewDetector(config.Config{MacroBlockSize: 0, MotionThreshold: 25, Workers: 1}, dotMarker{}, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "macro block size")

	_, err = NewDetector(config.Default(), nil, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDetectIdenticalFrames(t *testing.T) {
	current := randomFrame(t, 5, 20, 20, 3)
	reference := current.Clone()
	before := current.Clone()

	for _, threshold := range []int{1, 25, 1000} {
		result, err := newTestDetector(t, 5, threshold, 4).Detect(current, reference)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, result.Blocks, test.ShouldEqual, 16)
		test.That(t, result.Flagged(), test.ShouldEqual, 0)
	}
	test.That(t, current.Bytes(), test.ShouldResemble, before.Bytes())
}

func TestDetectBlackAgainstWhite(t *testing.T) {
	maxDistance := 255 * math.Sqrt(5*5*3)

	current := filledFrame(t, 0, 15, 15, 3, 0)
	reference := filledFrame(t, 1, 15, 15, 3, 255)
	result, err := newTestDetector(t, 5, int(math.Floor(maxDistance)), 2).Detect(current, reference)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Flagged(), test.ShouldEqual, 9)
	for _, d := range result.Detections {
		test.That(t, d.Match.Distance, test.ShouldAlmostEqual, maxDistance, 1e-9)
	}

	current = filledFrame(t, 0, 15, 15, 3, 0)
	result, err = newTestDetector(t, 5, int(math.Ceil(maxDistance)), 2).Detect(current, reference)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Flagged(), test.ShouldEqual, 0)
	test.That(t, current.Bytes(), test.ShouldResemble, filledFrame(t, 0, 15, 15, 3, 0).Bytes())
}

func TestDetectMarksMatchedCentre(t *testing.T) {
	current := filledFrame(t, 0, 15, 15, 3, 0)
	reference := filledFrame(t, 1, 15, 15, 3, 255)

	_, err := newTestDetector(t, 5, 1, 1).Detect(current, reference)
	test.That(t, err, test.ShouldBeNil)

	// Every block matches the first candidate up and left of it, so the
	// marks land on the centres of the top-left 2x2 blocks only.
	want := filledFrame(t, 0, 15, 15, 3, 0)
	for _, p := range []image.Point{image.Pt(2, 2), image.Pt(7, 2), image.Pt(2, 7), image.Pt(7, 7)} {
		for ch := 0; ch < 3; ch++ {
			want.Set(p.Y, p.X, ch, 255)
		}
	}
	test.That(t, current.Bytes(), test.ShouldResemble, want.Bytes())
	test.That(t, reference.Bytes(), test.ShouldResemble, filledFrame(t, 1, 15, 15, 3, 255).Bytes())
}

func TestDetectMarkerError(t *testing.T) {
	cfg := config.Config{MacroBlockSize: 5, MotionThreshold: 1, Workers: 1}
	d, err := NewDetector(cfg, failingMarker{}, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)

	_, err = d.Detect(filledFrame(t, 4, 10, 10, 1, 0), filledFrame(t, 5, 10, 10, 1, 255))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to mark frame 4")

	// Frames without motion never reach the marker.
	_, err = d.Detect(filledFrame(t, 4, 10, 10, 1, 0), filledFrame(t, 5, 10, 10, 1, 0))
	test.That(t, err, test.ShouldBeNil)
}

func TestDetectPartialEdgeBlocks(t *testing.T) {
	current := filledFrame(t, 0, 12, 12, 3, 0)
	reference := filledFrame(t, 1, 12, 12, 3, 255)

	result, err := newTestDetector(t, 5, 1, 3).Detect(current, reference)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Blocks, test.ShouldEqual, 9)
	test.That(t, result.Flagged(), test.ShouldEqual, 9)

	byOrigin := map[image.Point]Match{}
	for _, d := range result.Detections {
		byOrigin[d.Block] = d.Match
	}
	corner := byOrigin[image.Pt(10, 10)]
	test.That(t, corner.Found, test.ShouldBeTrue)
	test.That(t, corner.Distance, test.ShouldAlmostEqual, 255*math.Sqrt(2*2*3), 1e-9)
	test.That(t, corner.Point, test.ShouldResemble, image.Pt(12, 12))

	bottom := byOrigin[image.Pt(0, 10)]
	test.That(t, bottom.Distance, test.ShouldAlmostEqual, 255*math.Sqrt(2*5*3), 1e-9)
}

func TestDetectSingleMovedBlock(t *testing.T) {
	still := filledFrame(t, 0, 4, 4, 1, 0)
	moved := filledFrame(t, 1, 4, 4, 1, 0)
	for r := 2; r < 4; r++ {
		for c := 2; c < 4; c++ {
			moved.Set(r, c, 0, 10)
		}
	}

	pristine := moved.Clone()

	result, err := newTestDetector(t, 2, 1, 2).Detect(moved, still)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Blocks, test.ShouldEqual, 4)
	test.That(t, result.Detections, test.ShouldHaveLength, 1)
	test.That(t, result.Detections[0].Block, test.ShouldResemble, image.Pt(2, 2))
	test.That(t, result.Detections[0].Match.Distance, test.ShouldEqual, 20.0)
	test.That(t, result.Detections[0].Match.Point, test.ShouldResemble, image.Pt(1, 1))

	// Only the matched centre (1, 1) changes.
	want := pristine.Clone()
	want.Set(1, 1, 0, 255)
	test.That(t, moved.Bytes(), test.ShouldResemble, want.Bytes())
	test.That(t, still.Bytes(), test.ShouldResemble, filledFrame(t, 0, 4, 4, 1, 0).Bytes())

	// The other way round every zero block finds a zero neighbour.
	current := still.Clone()
	result, err = newTestDetector(t, 2, 1, 2).Detect(current, pristine)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Blocks, test.ShouldEqual, 4)
	test.That(t, result.Flagged(), test.ShouldEqual, 0)
	test.That(t, current.Bytes(), test.ShouldResemble, still.Bytes())
}

func TestDetectIndependentOfWorkers(t *testing.T) {
	reference := randomFrame(t, 6, 33, 41, 3)
	base := randomFrame(t, 7, 33, 41, 3)

	serial := base.Clone()
	want, err := newTestDetector(t, 4, 500, 1).Detect(serial, reference)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, want.Flagged(), test.ShouldBeGreaterThan, 0)

	parallel := base.Clone()
	got, err := newTestDetector(t, 4, 500, 8).Detect(parallel, reference)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, want)
	test.That(t, parallel.Bytes(), test.ShouldResemble, serial.Bytes())
}

func TestDetectGeometryMismatch(t *testing.T) {
	current := filledFrame(t, 0, 10, 10, 3, 0)
	reference := filledFrame(t, 1, 10, 10, 1, 0)
	_, err := newTestDetector(t, 5, 1, 1).Detect(current, reference)
	test.That(t, err, test.ShouldNotBeNil)
}
