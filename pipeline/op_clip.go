package pipeline

import (
	"math"

	"github.com/mjkukula/tessgraph/schema"
	"gonum.org/v1/gonum/stat"
)

// OpClip drops values more than NSigma standard deviations from the mean
// of the incoming batch. Batches too small to estimate a spread pass
// through untouched.
type OpClip struct {
	NSigma float64
}

func (o OpClip) ProcessNewValues(values []schema.Value) []schema.Value {
	if len(values) < 3 {
		return values
	}

	flux := make([]float64, len(values))
	for i, v := range values {
		flux[i] = v.Value
	}
	mean, std := stat.MeanStdDev(flux, nil)

	result := make([]schema.Value, 0, len(values))
	for _, v := range values {
		if math.Abs(v.Value-mean) > o.NSigma*std {
			continue
		}
		result = append(result, v)
	}
	return result
}
