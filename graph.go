package tessgraph

import (
	"fmt"
	"time"

	"github.com/chrispappas/golang-generics-set/set"
	"github.com/gin-gonic/gin"
	"github.com/mjkukula/tessgraph/broker"
	"github.com/mjkukula/tessgraph/messages"
	"github.com/mjkukula/tessgraph/pipeline"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/mjkukula/tessgraph/storage"
	"github.com/mjkukula/tessgraph/subscription"
	"github.com/pkg/errors"
)

// Graph serves stored light curves, live updates, and derived (folded,
// binned, averaged) series over websockets.
type Graph struct {
	backend     storage.Backend
	seriesNames set.Set[string]
	errCh       chan error

	broker *broker.Broker
	parser *pipeline.Parser
	server *gin.Engine
}

type Opts struct {
	Backend     storage.Backend
	SeriesNames []string
	ErrCh       chan error
}

func New(opts Opts) (*Graph, error) {
	if err := opts.Backend.CreateSeries(opts.SeriesNames); err != nil {
		return nil, errors.Wrap(err, "create series")
	}

	br := broker.NewBroker()
	g := &Graph{
		backend:     opts.Backend,
		seriesNames: set.FromSlice(opts.SeriesNames),
		errCh:       opts.ErrCh,
		broker:      br,
		parser:      pipeline.NewParser(),
		server:      gin.Default(),
	}

	if err := g.setupServer(); err != nil {
		return nil, errors.Wrap(err, "setup server")
	}

	go br.Start()
	go g.publishPrometheusMetrics()

	return g, nil
}

func (g *Graph) GetEngine() *gin.Engine {
	return g.server
}

// CreateValue stores one sample and publishes it to live subscribers.
func (g *Graph) CreateValue(
	seriesName string,
	timestamp time.Time,
	value float64,
) error {
	if !g.seriesNames.Has(seriesName) {
		return errors.Errorf("unknown series: %s", seriesName)
	}

	if err := g.backend.InsertValue(seriesName, timestamp, value); err != nil {
		return errors.Wrap(err, "insert value")
	}

	g.broker.Publish(schema.Series{
		SeriesName: seriesName,
		Values: []schema.Value{{
			Timestamp: timestamp,
			Value:     value,
		}},
	})

	return nil
}

// CreateCurve bulk-loads a light curve into one series. Times are BTJD
// days. The whole curve is published as a single batch.
func (g *Graph) CreateCurve(
	seriesName string,
	times []float64,
	flux []float64,
) error {
	if !g.seriesNames.Has(seriesName) {
		return errors.Errorf("unknown series: %s", seriesName)
	}
	if len(times) != len(flux) {
		return errors.New("times and flux length mismatch")
	}

	batch := schema.Series{SeriesName: seriesName}
	for i := range times {
		ts := schema.FromBTJD(times[i])
		if err := g.backend.InsertValue(seriesName, ts, flux[i]); err != nil {
			return errors.Wrap(err, "insert value")
		}
		batch.Values = append(batch.Values, schema.Value{
			Timestamp: ts,
			Value:     flux[i],
		})
	}

	g.broker.Publish(batch)
	return nil
}

func (g *Graph) Subscribe(
	req *subscription.Request,
	now time.Time,
	callback func(data *messages.Data) error,
) {
	start := req.Start(now)

	sub, err := subscription.NewSubscription(g.parser, req, start)
	if err != nil {
		_ = callback(&messages.Data{
			Error: errors.Wrap(err, "new subscription").Error(),
		})
		return
	}

	// closed on return so the subscription tears down its broker
	// attachment instead of blocking on msgCh forever
	done := make(chan struct{})
	defer close(done)

	msgCh := make(chan *messages.Data, 32)
	go sub.Run(done, g.backend, g.broker, msgCh, start)

	for data := range msgCh {
		if err := callback(data); err != nil {
			fmt.Println(errors.Wrap(err, "callback error"))
			return
		}
	}
}
