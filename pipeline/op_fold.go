package pipeline

import (
	"github.com/mjkukula/tessgraph/lightcurve"
	"github.com/mjkukula/tessgraph/schema"
)

// OpFold folds timestamps onto phase relative to Period and Epoch (both in
// days, Epoch in BTJD). Output timestamps are re-anchored at the epoch so a
// time-series plot of the output is a phase diagram centered on the
// transit.
type OpFold struct {
	Period float64
	Epoch  float64
}

func (o OpFold) ProcessNewValues(values []schema.Value) []schema.Value {
	result := make([]schema.Value, len(values))
	for idx, value := range values {
		phase := lightcurve.Fold(schema.ToBTJD(value.Timestamp), o.Period, o.Epoch)
		result[idx] = schema.Value{
			Timestamp: schema.FromBTJD(o.Epoch + phase),
			Value:     value.Value,
		}
	}
	return result
}
