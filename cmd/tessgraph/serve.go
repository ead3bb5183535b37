package main

import (
	"embed"
	"io/fs"
	"math"
	"math/rand"
	"time"

	"github.com/mjkukula/tessgraph"
	"github.com/mjkukula/tessgraph/database"
	"github.com/mjkukula/tessgraph/database/inmem"
	"github.com/mjkukula/tessgraph/lightcurve"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/mjkukula/tessgraph/storage"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//go:embed html/index.html
var htmlFS embed.FS

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live light-curve viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		series, _ := cmd.Flags().GetStringSlice("series")
		demo, _ := cmd.Flags().GetBool("demo")

		errCh := make(chan error)

		var backend storage.Backend
		if demo {
			backend = inmem.NewBackend()
			series = append(series, "demo")
		} else {
			db, err := database.Get(viper.GetString("db"), errCh)
			if err != nil {
				return errors.Wrap(err, "open database")
			}
			go db.RunWriter()
			backend = db
		}

		graph, err := tessgraph.New(tessgraph.Opts{
			Backend:     backend,
			SeriesNames: series,
			ErrCh:       errCh,
		})
		if err != nil {
			return errors.Wrap(err, "new graph")
		}

		sub, err := fs.Sub(htmlFS, "html")
		if err != nil {
			return errors.Wrap(err, "html fs")
		}
		graph.StaticFiles(sub, "index.html", "text/html")

		if demo {
			go runDemoFeed(graph, errCh)
		}

		go func() {
			errCh <- graph.RunServer(viper.GetString("listen"))
		}()

		return <-errCh
	},
}

// runDemoFeed publishes a synthetic transit signal so the viewer has
// something to show without archive access: unit flux, a box-shaped dip
// once per period, gaussian noise on top.
func runDemoFeed(graph *tessgraph.Graph, errCh chan error) {
	const (
		period   = 0.02  // days, sped up for demo purposes
		epoch    = 0.0   // BTJD
		depth    = 0.01  // fractional
		duration = 0.002 // days
		noise    = 0.002
	)

	ticker := time.NewTicker(250 * time.Millisecond)
	for range ticker.C {
		now := time.Now()

		flux := 1.0 + rand.NormFloat64()*noise
		phase := lightcurve.Fold(schema.ToBTJD(now), period, epoch)
		if math.Abs(phase) < duration/2 {
			flux -= depth
		}

		if err := graph.CreateValue("demo", now, flux); err != nil {
			errCh <- errors.Wrap(err, "create value")
			return
		}
	}
}

func init() {
	serveCmd.Flags().StringSlice("series", nil, "series names to serve")
	serveCmd.Flags().Bool("demo", false, "feed a synthetic transit into an in-memory store")

	rootCmd.AddCommand(serveCmd)
}
