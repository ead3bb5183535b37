package render

import "image/color"

// ColorMap maps a normalized value in [0, 1] to a color.
type ColorMap func(t float64) color.RGBA

// Gray is a linear grayscale ramp.
func Gray(t float64) color.RGBA {
	v := uint8(clamp01(t)*255 + 0.5)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// Heat is a black-red-yellow-white ramp, close enough to the usual pixel
// cutout colormaps for visual inspection.
func Heat(t float64) color.RGBA {
	t = clamp01(t)
	switch {
	case t < 1.0/3:
		return color.RGBA{R: ramp(t * 3), A: 255}
	case t < 2.0/3:
		return color.RGBA{R: 255, G: ramp((t - 1.0/3) * 3), A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: ramp((t - 2.0/3) * 3), A: 255}
	}
}

func ramp(t float64) uint8 {
	return uint8(clamp01(t)*255 + 0.5)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func buildPalette(m ColorMap) color.Palette {
	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = m(float64(i) / 255)
	}
	return palette
}
