package pipeline

import (
	"github.com/mjkukula/tessgraph/lightcurve"
	"github.com/mjkukula/tessgraph/schema"
)

// OpBin buckets each incoming batch into bins of Width days and emits the
// median per non-empty bin. Binning is per batch: it condenses the initial
// backfill (typically a whole folded curve) and passes live trickle
// updates through nearly unchanged.
type OpBin struct {
	Width float64
}

func (o OpBin) ProcessNewValues(values []schema.Value) []schema.Value {
	if len(values) == 0 {
		return nil
	}

	times := make([]float64, len(values))
	flux := make([]float64, len(values))
	for i, v := range values {
		times[i] = schema.ToBTJD(v.Timestamp)
		flux[i] = v.Value
	}

	bins, err := lightcurve.BinMedians(times, flux, o.Width)
	if err != nil {
		// Width is validated at parse time; an error here means empty
		// input, which we've already excluded.
		return nil
	}

	result := make([]schema.Value, len(bins))
	for i, bin := range bins {
		result[i] = schema.Value{
			Timestamp: schema.FromBTJD(bin.Center),
			Value:     bin.Median,
		}
	}
	return result
}
