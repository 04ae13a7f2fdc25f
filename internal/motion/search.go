package motion

import (
	"image"
	"math"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

// Search returns the closest of the 3x3 reference blocks offset by whole
// block sizes from current. Ties keep the first candidate in row-major order.
func Search(current frame.Block, size int, reference *frame.Frame) Match {
	best := NoMatch
	half := blockCentre(size)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			row := current.Row() + dr*size
			col := current.Col() + dc*size

			candidate := reference.Block(row, col, size)
			if candidate.Empty() || !candidate.SameShape(current) {
				continue
			}

			if d := Distance(current, candidate); d < best.Distance {
				best = Match{
					Distance: d,
					Point:    image.Pt(col+half, row+half),
					Found:    true,
				}
			}
		}
	}
	return best
}

// Half the block size, rounded half to even.
func blockCentre(size int) int {
	return int(math.RoundToEven(float64(size) / 2))
}
