package motion

import (
	"fmt"
	"math"

	"github.com/kmmndr/motion_estimation/internal/frame"
)

// Distance returns sqrt(sum((a_i - b_i)^2)) over every sample of a and b.
// The blocks must have the same shape; Search never calls it otherwise.
func Distance(a, b frame.Block) float64 {
	if !a.SameShape(b) {
		panic(fmt.Sprintf("motion: distance between %dx%dx%d and %dx%dx%d blocks",
			a.Rows(), a.Cols(), a.Channels(), b.Rows(), b.Cols(), b.Channels()))
	}

	var sum int64
	for r := 0; r < a.Rows(); r++ {
		rowA, rowB := a.RowSamples(r), b.RowSamples(r)
		for i := range rowA {
			d := int64(rowA[i]) - int64(rowB[i])
			sum += d * d
		}
	}
	return math.Sqrt(float64(sum))
}
