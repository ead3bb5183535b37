package pipeline

import (
	"testing"
	"time"

	"github.com/mjkukula/tessgraph/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuesAt(btjds []float64, flux []float64) []schema.Value {
	values := make([]schema.Value, len(btjds))
	for i := range btjds {
		values[i] = schema.Value{
			Timestamp: schema.FromBTJD(btjds[i]),
			Value:     flux[i],
		}
	}
	return values
}

func TestOpFold(t *testing.T) {
	op := OpFold{Period: 2.0, Epoch: 1000.0}

	out := op.ProcessNewValues(valuesAt(
		[]float64{1000.0, 1001.0, 1002.0, 1003.5},
		[]float64{1, 2, 3, 4},
	))
	require.Len(t, out, 4)

	// all outputs land within half a period of the epoch
	for _, v := range out {
		phase := schema.ToBTJD(v.Timestamp) - 1000.0
		assert.GreaterOrEqual(t, phase, -1.0-1e-6)
		assert.Less(t, phase, 1.0)
	}

	// one full period later folds back onto the epoch
	assert.InDelta(t, 1000.0, schema.ToBTJD(out[2].Timestamp), 1e-6)
	// flux passes through untouched
	assert.Equal(t, 3.0, out[2].Value)
}

func TestOpBin(t *testing.T) {
	op := OpBin{Width: 1.0}

	out := op.ProcessNewValues(valuesAt(
		[]float64{1000.1, 1000.2, 1000.3, 1001.4, 1001.5},
		[]float64{1, 2, 3, 10, 20},
	))
	require.Len(t, out, 2)
	assert.InDelta(t, 2.0, out[0].Value, 1e-9)
}

func TestOpClip(t *testing.T) {
	op := OpClip{NSigma: 2}

	values := valuesAt(
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]float64{1.0, 1.01, 0.99, 1.0, 1.02, 0.98, 1.0, 1.01, 0.99, 50.0},
	)
	out := op.ProcessNewValues(values)
	assert.Len(t, out, 9)

	// tiny batches pass through
	out = op.ProcessNewValues(values[:2])
	assert.Len(t, out, 2)
}

func TestComputedSeriesAvg(t *testing.T) {
	start := time.Now()
	cs := NewComputedSeries(&FcnAvg{}, 10*time.Second, start)

	var values []schema.Value
	for i := 0; i < 5; i++ {
		values = append(values, schema.Value{
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Value:     float64(i),
		})
	}

	out := cs.ProcessNewValues(values)
	require.Len(t, out, 5)
	// running average over the whole window
	assert.InDelta(t, 2.0, out[4].Value, 1e-9) // (0+1+2+3+4)/5
}

func TestComputedSeriesEvictsOldValues(t *testing.T) {
	start := time.Now()
	cs := NewComputedSeries(&FcnAvg{}, 2*time.Second, start)

	out := cs.ProcessNewValues([]schema.Value{
		{Timestamp: start, Value: 100},
		{Timestamp: start.Add(10 * time.Second), Value: 1},
	})
	require.Len(t, out, 2)
	// the first value fell out of the window
	assert.InDelta(t, 1.0, out[1].Value, 1e-9)
}

func TestChainOrder(t *testing.T) {
	c := chain{ops: []Operator{OpAdd{X: 1}, OpGt{X: 5}}}

	out := c.ProcessNewValues(valuesAt(
		[]float64{1, 2, 3},
		[]float64{3.0, 5.0, 7.0},
	))
	// 3->4 filtered, 5->6 kept, 7->8 kept
	require.Len(t, out, 2)
	assert.Equal(t, 6.0, out[0].Value)
	assert.Equal(t, 8.0, out[1].Value)
}
