package tesscut

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestFrame(t *testing.T) {
	cube := &Cube{
		Times: []float64{1000.0, 1000.5, 1001.0, 1002.5},
	}

	idx, err := cube.NearestFrame(1001.1)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = (&Cube{}).NearestFrame(1.0)
	require.Error(t, err)
}

func TestMinMaxIgnoresNaN(t *testing.T) {
	cube := &Cube{
		Frames: [][][]float64{
			{{1, math.NaN()}, {3, 4}},
			{{-2, 5}, {math.NaN(), 0}},
		},
		Width:  2,
		Height: 2,
	}

	lo, hi := cube.MinMax(0, 2)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestFrameShape(t *testing.T) {
	w, h, err := frameShape([]int{11, 13}, 143)
	require.NoError(t, err)
	assert.Equal(t, 11, w)
	assert.Equal(t, 13, h)

	w, h, err = frameShape(nil, 25)
	require.NoError(t, err)
	assert.Equal(t, 5, w)
	assert.Equal(t, 5, h)

	_, _, err = frameShape(nil, 26)
	require.Error(t, err)
}
