package render

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/mjkukula/tessgraph/tesscut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCube() *tesscut.Cube {
	frame := func(base float64) [][]float64 {
		return [][]float64{
			{base, base + 1},
			{base + 2, base + 3},
		}
	}
	return &tesscut.Cube{
		Times:  []float64{1000.0, 1000.1, 1000.2},
		Frames: [][][]float64{frame(0), frame(10), frame(20)},
		Width:  2,
		Height: 2,
	}
}

func TestAnimateGIFDefaultsToAllFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AnimateGIF(&buf, testCube(), Options{}))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, anim.Delay)
}

func TestAnimateGIFStartFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AnimateGIF(&buf, testCube(), Options{StartFrame: 1}))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
}

func TestAnimateGIFRejectsBadRange(t *testing.T) {
	for _, opts := range []Options{
		{StartFrame: -1},
		{StartFrame: 3},
		{EndFrame: 4},
		{StartFrame: 2, EndFrame: 2},
	} {
		var buf bytes.Buffer
		assert.Error(t, AnimateGIF(&buf, testCube(), opts))
	}
}

func TestBoundsDefaultToGlobalMinMax(t *testing.T) {
	cube := testCube()

	vmin, vmax := bounds(cube, Options{StartFrame: 0, EndFrame: 3})
	assert.Equal(t, 0.0, vmin)
	assert.Equal(t, 23.0, vmax)

	// bounds are global over the selection, not per frame
	vmin, vmax = bounds(cube, Options{StartFrame: 1, EndFrame: 3})
	assert.Equal(t, 10.0, vmin)
	assert.Equal(t, 23.0, vmax)
}

func TestBoundsExplicit(t *testing.T) {
	lo, hi := 5.0, 15.0
	vmin, vmax := bounds(testCube(), Options{
		StartFrame: 0, EndFrame: 3,
		VMin: &lo, VMax: &hi,
	})
	assert.Equal(t, 5.0, vmin)
	assert.Equal(t, 15.0, vmax)
}

func TestFramePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FramePNG(&buf, testCube(), 1, Options{Map: Heat}))
	assert.NotZero(t, buf.Len())

	assert.Error(t, FramePNG(&buf, testCube(), 5, Options{}))
}

func TestColorMapEndpoints(t *testing.T) {
	assert.Equal(t, uint8(0), Gray(0).R)
	assert.Equal(t, uint8(255), Gray(1).R)

	// out-of-range inputs clamp
	assert.Equal(t, Gray(0), Gray(-2))
	assert.Equal(t, Gray(1), Gray(7))
}
