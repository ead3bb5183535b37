// Package render turns pixel cubes into viewable images: animated GIFs of
// the cadence stack and single-frame PNGs.
package render

import (
	"image"
	"image/gif"
	"image/png"
	"io"
	"math"

	"github.com/mjkukula/tessgraph/tesscut"
	"github.com/pkg/errors"
)

type Options struct {
	// StartFrame/EndFrame select [StartFrame, EndFrame). EndFrame of 0
	// means through the last frame.
	StartFrame int
	EndFrame   int

	// VMin/VMax fix the color-scale bounds. When nil they default to the
	// global min/max across the selected frames, computed once, so
	// brightness stays comparable from frame to frame.
	VMin *float64
	VMax *float64

	// Delay between frames in hundredths of a second. 0 means 10 (100ms).
	Delay int

	Map ColorMap
}

func (o Options) resolve(n int) (Options, error) {
	if o.EndFrame == 0 {
		o.EndFrame = n
	}
	if o.StartFrame < 0 || o.EndFrame > n || o.StartFrame >= o.EndFrame {
		return o, errors.Errorf("frame range [%d, %d) out of bounds for %d frames",
			o.StartFrame, o.EndFrame, n)
	}
	if o.Delay == 0 {
		o.Delay = 10
	}
	if o.Map == nil {
		o.Map = Gray
	}
	return o, nil
}

// AnimateGIF renders cube frames [StartFrame, EndFrame) as an animated GIF
// with a shared palette and fixed color-scale bounds.
func AnimateGIF(w io.Writer, cube *tesscut.Cube, opts Options) error {
	opts, err := opts.resolve(cube.Len())
	if err != nil {
		return errors.Wrap(err, "animate")
	}

	vmin, vmax := bounds(cube, opts)
	palette := buildPalette(opts.Map)

	anim := &gif.GIF{}
	for i := opts.StartFrame; i < opts.EndFrame; i++ {
		img := image.NewPaletted(image.Rect(0, 0, cube.Width, cube.Height), palette)
		rasterize(img, cube.Frames[i], vmin, vmax)
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, opts.Delay)
	}

	return errors.Wrap(gif.EncodeAll(w, anim), "encode gif")
}

// FramePNG renders a single cube frame. Color-scale bounds still default
// to the global min/max of the selected range so a frame rendered alone
// matches its appearance in the animation.
func FramePNG(w io.Writer, cube *tesscut.Cube, idx int, opts Options) error {
	opts, err := opts.resolve(cube.Len())
	if err != nil {
		return errors.Wrap(err, "frame")
	}
	if idx < opts.StartFrame || idx >= opts.EndFrame {
		return errors.Errorf("frame %d outside range [%d, %d)",
			idx, opts.StartFrame, opts.EndFrame)
	}

	vmin, vmax := bounds(cube, opts)
	palette := buildPalette(opts.Map)

	img := image.NewPaletted(image.Rect(0, 0, cube.Width, cube.Height), palette)
	rasterize(img, cube.Frames[idx], vmin, vmax)

	return errors.Wrap(png.Encode(w, img), "encode png")
}

func bounds(cube *tesscut.Cube, opts Options) (float64, float64) {
	var vmin, vmax float64
	if opts.VMin != nil && opts.VMax != nil {
		return *opts.VMin, *opts.VMax
	}

	vmin, vmax = cube.MinMax(opts.StartFrame, opts.EndFrame)
	if opts.VMin != nil {
		vmin = *opts.VMin
	}
	if opts.VMax != nil {
		vmax = *opts.VMax
	}
	return vmin, vmax
}

func rasterize(img *image.Paletted, frame [][]float64, vmin float64, vmax float64) {
	span := vmax - vmin
	for y, row := range frame {
		for x, v := range row {
			var idx uint8
			switch {
			case math.IsNaN(v) || span <= 0:
				idx = 0
			default:
				idx = uint8(clamp01((v-vmin)/span)*255 + 0.5)
			}
			img.SetColorIndex(x, y, idx)
		}
	}
}
