package pipeline

import (
	"github.com/gammazero/deque"
	"github.com/mjkukula/tessgraph/schema"
)

type FcnAvg struct {
	sum   float64
	count int
}

func (f *FcnAvg) AddValue(v schema.Value) {
	f.sum += v.Value
	f.count++
}

func (f *FcnAvg) RemoveValue(v schema.Value) {
	f.sum -= v.Value
	f.count--
}

func (f *FcnAvg) Compute(values *deque.Deque[schema.Value]) (float64, bool) {
	if f.count == 0 {
		return 0, false
	}
	return f.sum / float64(f.count), true
}
