package motion

import (
	"encoding/json"
	"io"

	uuid "github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
)

// Point is a matched block centre flagged as motion.
type Point struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Distance float64 `json:"distance"`
}

type FrameReport struct {
	RunID   string  `json:"run_id"`
	Frame   int     `json:"frame"`
	Time    float64 `json:"time"`
	Blocks  int     `json:"blocks"`
	Flagged int     `json:"flagged"`
	Points  []Point `json:"points"`
}

// FrameTimer returns the playback time in seconds of a frame index.
type FrameTimer func(frameIndex int) float64

func NewFrameReport(runID uuid.UUID, result FrameResult, timestamp float64) FrameReport {
	report := FrameReport{
		RunID:   runID.String(),
		Frame:   result.Index,
		Time:    timestamp,
		Blocks:  result.Blocks,
		Flagged: result.Flagged(),
		Points:  make([]Point, 0, result.Flagged()),
	}
	for _, d := range result.Detections {
		report.Points = append(report.Points, Point{X: d.Match.Point.X, Y: d.Match.Point.Y, Distance: d.Match.Distance})
	}
	return report
}

// ReportWriter writes one FrameReport per line.
type ReportWriter struct {
	enc   *json.Encoder
	timer FrameTimer
}

func NewReportWriter(w io.Writer, timer FrameTimer) *ReportWriter {
	return &ReportWriter{enc: json.NewEncoder(w), timer: timer}
}

func (rw *ReportWriter) Observe(runID uuid.UUID, result FrameResult) error {
	if err := rw.enc.Encode(NewFrameReport(runID, result, rw.timer(result.Index))); err != nil {
		return errors.Wrap(err, "unable to write frame report")
	}
	return nil
}
