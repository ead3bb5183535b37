package main

import (
	"fmt"
	"os"

	"github.com/mjkukula/tessgraph/render"
	"github.com/mjkukula/tessgraph/tesscut"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Render a TESS pixel cutout as an animated GIF",
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")

		var cube *tesscut.Cube
		if inFile != "" {
			f, err := os.Open(inFile)
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer func() {
				_ = f.Close()
			}()

			cube, err = tesscut.ReadCube(f)
			if err != nil {
				return errors.Wrap(err, "read cube")
			}
		} else {
			ra, _ := cmd.Flags().GetFloat64("ra")
			dec, _ := cmd.Flags().GetFloat64("dec")
			size, _ := cmd.Flags().GetInt("size")
			sector, _ := cmd.Flags().GetInt("sector")

			client := tesscut.NewClient(viper.GetString("tesscut.base_url"))
			cubes, err := client.Cutouts(cmd.Context(), tesscut.Request{
				RA:     ra,
				Dec:    dec,
				Width:  size,
				Height: size,
				Sector: sector,
			})
			if err != nil {
				return errors.Wrap(err, "fetch cutouts")
			}
			cube = cubes[0]
		}

		opts, err := animateOptions(cmd)
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer func() {
			_ = f.Close()
		}()

		if err := render.AnimateGIF(f, cube, opts); err != nil {
			return errors.Wrap(err, "animate")
		}

		fmt.Printf("wrote %s (%d frames, %dx%d)\n", out, cube.Len(), cube.Width, cube.Height)
		return nil
	},
}

func animateOptions(cmd *cobra.Command) (render.Options, error) {
	opts := render.Options{}

	opts.StartFrame, _ = cmd.Flags().GetInt("start")
	opts.EndFrame, _ = cmd.Flags().GetInt("end")
	opts.Delay, _ = cmd.Flags().GetInt("delay")

	if cmd.Flags().Changed("vmin") {
		v, _ := cmd.Flags().GetFloat64("vmin")
		opts.VMin = &v
	}
	if cmd.Flags().Changed("vmax") {
		v, _ := cmd.Flags().GetFloat64("vmax")
		opts.VMax = &v
	}

	colormap, _ := cmd.Flags().GetString("colormap")
	switch colormap {
	case "gray":
		opts.Map = render.Gray
	case "heat":
		opts.Map = render.Heat
	default:
		return opts, errors.Errorf("unknown colormap: %s", colormap)
	}

	return opts, nil
}

func init() {
	animateCmd.Flags().String("in", "", "local cutout FITS file (skips the network fetch)")
	animateCmd.Flags().String("out", "cutout.gif", "output GIF path")
	animateCmd.Flags().Float64("ra", 0, "right ascension, degrees")
	animateCmd.Flags().Float64("dec", 0, "declination, degrees")
	animateCmd.Flags().Int("size", 11, "cutout side length, pixels")
	animateCmd.Flags().Int("sector", 0, "TESS sector (0 means all available)")
	animateCmd.Flags().Int("start", 0, "first frame index")
	animateCmd.Flags().Int("end", 0, "one past the last frame index (0 means through the end)")
	animateCmd.Flags().Int("delay", 10, "inter-frame delay in hundredths of a second")
	animateCmd.Flags().Float64("vmin", 0, "color-scale lower bound (default: global minimum)")
	animateCmd.Flags().Float64("vmax", 0, "color-scale upper bound (default: global maximum)")
	animateCmd.Flags().String("colormap", "gray", "colormap: gray or heat")

	rootCmd.AddCommand(animateCmd)
}
