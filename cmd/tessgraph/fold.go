package main

import (
	"fmt"
	"time"

	"github.com/mjkukula/tessgraph/database"
	"github.com/mjkukula/tessgraph/lightcurve"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var foldCmd = &cobra.Command{
	Use:   "fold",
	Short: "Fold a stored light curve on a period and epoch",
	Long: "Folds a stored series and prints phase (days from the epoch) and\n" +
		"flux as CSV. With --bin, prints the binned medians instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		series, _ := cmd.Flags().GetString("series")
		period, _ := cmd.Flags().GetFloat64("period")
		epoch, _ := cmd.Flags().GetFloat64("epoch")
		binWidth, _ := cmd.Flags().GetFloat64("bin")

		errCh := make(chan error, 1)
		db, err := database.Get(viper.GetString("db"), errCh)
		if err != nil {
			return errors.Wrap(err, "open database")
		}

		window, err := db.LoadDataAfter(series, time.UnixMilli(0))
		if err != nil {
			return errors.Wrap(err, "load series")
		}
		if len(window.Values) == 0 {
			return errors.Errorf("no samples stored for %s", series)
		}

		times := make([]float64, len(window.Values))
		flux := make([]float64, len(window.Values))
		for i, v := range window.Values {
			times[i] = schema.ToBTJD(v.Timestamp)
			flux[i] = v.Value
		}

		phase, err := lightcurve.FoldAll(times, period, epoch)
		if err != nil {
			return errors.Wrap(err, "fold")
		}

		if binWidth > 0 {
			bins, err := lightcurve.BinMedians(phase, flux, binWidth)
			if err != nil {
				return errors.Wrap(err, "bin")
			}
			fmt.Println("phase,median,count")
			for _, bin := range bins {
				fmt.Printf("%g,%g,%d\n", bin.Center, bin.Median, bin.Count)
			}
			return nil
		}

		fmt.Println("phase,flux")
		for i := range phase {
			fmt.Printf("%g,%g\n", phase[i], flux[i])
		}
		return nil
	},
}

func init() {
	foldCmd.Flags().String("series", "", "series name")
	foldCmd.Flags().Float64("period", 0, "orbital period in days")
	foldCmd.Flags().Float64("epoch", 0, "transit epoch in BTJD")
	foldCmd.Flags().Float64("bin", 0, "bin width in days (0 disables binning)")
	_ = foldCmd.MarkFlagRequired("series")
	_ = foldCmd.MarkFlagRequired("period")
	_ = foldCmd.MarkFlagRequired("epoch")

	rootCmd.AddCommand(foldCmd)
}
