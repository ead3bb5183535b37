package tesscut

import (
	"math"

	"github.com/mjkukula/tessgraph/lightcurve"
	"github.com/pkg/errors"
)

// Cube is an ordered stack of equal-shaped 2D pixel frames with a time per
// frame. Frames are indexed [row][col].
type Cube struct {
	Times  []float64 // BTJD, one per frame
	Frames [][][]float64
	Width  int
	Height int
	Sector int // 0 when the file doesn't say
}

func (c *Cube) Len() int {
	return len(c.Frames)
}

// NearestFrame returns the index of the frame closest in time to t.
func (c *Cube) NearestFrame(t float64) (int, error) {
	idx, err := lightcurve.NearestIndex(c.Times, t)
	if err != nil {
		return 0, errors.Wrap(err, "nearest frame")
	}
	return idx, nil
}

// MinMax returns the global minimum and maximum pixel value over frames
// [start, end). NaN pixels are ignored.
func (c *Cube) MinMax(start int, end int) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)

	for i := start; i < end; i++ {
		for _, row := range c.Frames[i] {
			for _, v := range row {
				if math.IsNaN(v) {
					continue
				}
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
	}

	return lo, hi
}
