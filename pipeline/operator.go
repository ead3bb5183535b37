package pipeline

import (
	"time"

	"github.com/mjkukula/tessgraph/schema"
)

type Operator interface {
	ProcessNewValues(values []schema.Value) []schema.Value
}

// WindowedOperator is implemented by operators that need history from
// before the subscription start to produce correct output.
type WindowedOperator interface {
	Lookback() time.Duration
}

type Identity struct{}

func (i Identity) ProcessNewValues(values []schema.Value) []schema.Value {
	return values
}

type chain struct {
	ops []Operator
}

func (c chain) ProcessNewValues(values []schema.Value) []schema.Value {
	for _, op := range c.ops {
		values = op.ProcessNewValues(values)
	}
	return values
}

func (c chain) Lookback() time.Duration {
	var max time.Duration
	for _, op := range c.ops {
		if wo, ok := op.(WindowedOperator); ok {
			if lb := wo.Lookback(); lb > max {
				max = lb
			}
		}
	}
	return max
}
