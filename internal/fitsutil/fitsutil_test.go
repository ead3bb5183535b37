package fitsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDims(t *testing.T) {
	dims, err := ParseDims("(11,11)")
	require.NoError(t, err)
	assert.Equal(t, []int{11, 11}, dims)

	dims, err = ParseDims(" (3, 4) ")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, dims)

	_, err = ParseDims("(a,b)")
	require.Error(t, err)
}

func TestFloat64(t *testing.T) {
	for _, v := range []any{float64(1.5), float32(1.5)} {
		f, err := Float64(v)
		require.NoError(t, err)
		assert.Equal(t, 1.5, f)
	}

	f, err := Float64(int32(7))
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	_, err = Float64("nope")
	require.Error(t, err)
}

func TestInt32(t *testing.T) {
	for _, v := range []any{int32(8), int16(8), int64(8), uint8(8)} {
		n, err := Int32(v)
		require.NoError(t, err)
		assert.Equal(t, int32(8), n)
	}

	_, err := Int32(3.5)
	require.Error(t, err)
}

func TestFloat64s(t *testing.T) {
	fs, err := Float64s([]float32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, fs)

	fs, err = Float64s([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, fs)

	_, err = Float64s(42)
	require.Error(t, err)
}
