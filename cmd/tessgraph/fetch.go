package main

import (
	"fmt"

	"github.com/mjkukula/tessgraph/database"
	"github.com/mjkukula/tessgraph/lightcurve"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a light-curve FITS file into the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		series, _ := cmd.Flags().GetString("series")
		timeCol, _ := cmd.Flags().GetString("time-col")
		fluxCol, _ := cmd.Flags().GetString("flux-col")
		mask, _ := cmd.Flags().GetBool("mask")

		curve, err := lightcurve.Fetch(cmd.Context(), nil, url, timeCol, fluxCol)
		if err != nil {
			return errors.Wrap(err, "fetch")
		}

		if mask {
			curve = curve.MaskQuality()
		}

		errCh := make(chan error, 1)
		db, err := database.Get(viper.GetString("db"), errCh)
		if err != nil {
			return errors.Wrap(err, "open database")
		}

		if err := db.CreateSeries([]string{series}); err != nil {
			return errors.Wrap(err, "create series")
		}

		rows := make([]any, curve.Len())
		for i := range curve.Time {
			rows[i] = &database.Sample{
				ID:        database.RandomID(),
				Timestamp: schema.FromBTJD(curve.Time[i]),
				Value:     curve.Flux[i],
				SeriesID:  database.HashedID(series),
			}
		}
		if err := db.InsertBatch(rows); err != nil {
			return errors.Wrap(err, "insert batch")
		}

		fmt.Printf("stored %d samples as %s\n", curve.Len(), series)
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("url", "", "URL of the FITS light-curve product")
	fetchCmd.Flags().String("series", "", "series name to store the curve under")
	fetchCmd.Flags().String("time-col", "TIME", "time column name")
	fetchCmd.Flags().String("flux-col", "PDCSAP_FLUX", "flux column name")
	fetchCmd.Flags().Bool("mask", true, "drop cadences with nonzero quality flags or NaNs")
	_ = fetchCmd.MarkFlagRequired("url")
	_ = fetchCmd.MarkFlagRequired("series")

	rootCmd.AddCommand(fetchCmd)
}
