package pipeline

import (
	"github.com/gammazero/deque"
	"github.com/mjkukula/tessgraph/schema"
)

type Fcn interface {
	// AddValue and RemoveValue maintain aggregations incrementally as the
	// window slides.
	AddValue(v schema.Value)
	RemoveValue(v schema.Value)

	// Compute may inspect the individual points in the window when the
	// aggregation alone isn't enough.
	Compute(values *deque.Deque[schema.Value]) (float64, bool)
}
