package lightcurve

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Bin is one phase bin of a folded curve. Center is the bin midpoint in the
// folded time coordinate.
type Bin struct {
	Center float64
	Median float64
	Count  int
}

// BinMedians buckets a folded curve into bins of the given width and
// returns the median flux per non-empty bin, ordered by bin center. Width
// must be positive. Intended for overplotting a binned curve on the
// folded scatter.
func BinMedians(phase []float64, flux []float64, width float64) ([]Bin, error) {
	if width <= 0 {
		return nil, errors.Errorf("bin: width must be positive, got %v", width)
	}
	if len(phase) != len(flux) {
		return nil, errors.New("bin: phase and flux length mismatch")
	}
	if len(phase) == 0 {
		return nil, nil
	}

	lo := minFloat(phase)

	buckets := map[int][]float64{}
	for i, p := range phase {
		idx := int(math.Floor((p - lo) / width))
		buckets[idx] = append(buckets[idx], flux[i])
	}

	indices := make([]int, 0, len(buckets))
	for idx := range buckets {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	result := make([]Bin, 0, len(indices))
	for _, idx := range indices {
		values := buckets[idx]
		sort.Float64s(values)
		result = append(result, Bin{
			Center: lo + (float64(idx)+0.5)*width,
			Median: stat.Quantile(0.5, stat.Empirical, values, nil),
			Count:  len(values),
		})
	}

	return result, nil
}

func minFloat(xs []float64) float64 {
	lo := xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
	}
	return lo
}
