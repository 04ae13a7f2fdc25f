// Package motion estimates per-block motion between consecutive frames by
// exhaustive block matching and marks the blocks whose best match is still
// far away.
package motion

import (
	"image"
	"math"
)

type Match struct {
	Distance float64
	// Point is the (x, y) centre of the matched reference block.
	Point image.Point
	Found bool
}

// NoMatch is returned by Search when no candidate had the current block's
// shape.
var NoMatch = Match{Distance: math.Inf(1), Point: image.Pt(-1, -1)}

type Detection struct {
	// Block is the origin of the current block, x being the column.
	Block image.Point
	Match Match
}

type FrameResult struct {
	Index      int
	Blocks     int
	Detections []Detection
}

func (r FrameResult) Flagged() int {
	return len(r.Detections)
}
