package subscription

import (
	"time"

	"github.com/mjkukula/tessgraph/broker"
	"github.com/mjkukula/tessgraph/messages"
	"github.com/mjkukula/tessgraph/pipeline"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/mjkukula/tessgraph/storage"
	"github.com/pkg/errors"
)

type Subscription struct {
	inputSeries []string
	operators   []pipeline.Operator
	req         *Request
}

func NewSubscription(
	parser *pipeline.Parser,
	req *Request,
	start time.Time,
) (*Subscription, error) {
	sub := &Subscription{
		req:         req,
		operators:   make([]pipeline.Operator, len(req.Series)),
		inputSeries: make([]string, len(req.Series)),
	}

	for idx, sn := range req.Series {
		inputSeriesName, op, err := parser.Parse(sn, start)
		if err != nil {
			return nil, errors.Wrap(err, "parse series")
		}
		sub.inputSeries[idx] = inputSeriesName
		sub.operators[idx] = op
	}

	return sub, nil
}

func (sub *Subscription) getInitialData(
	db storage.Backend,
	start time.Time,
) (*messages.Data, error) {
	allSeries := make([][]schema.Value, len(sub.operators))
	for idx, op := range sub.operators {
		var window schema.Series
		var err error

		if sub.req.FromBTJD != 0 && sub.req.ToBTJD != 0 {
			window, err = db.LoadDataBetween(
				sub.inputSeries[idx],
				schema.FromBTJD(sub.req.FromBTJD),
				schema.FromBTJD(sub.req.ToBTJD),
			)
		} else {
			var lookback time.Duration = 0
			if wo, ok := op.(pipeline.WindowedOperator); ok {
				lookback = wo.Lookback()
			}

			window, err = db.LoadDataAfter(
				sub.inputSeries[idx],
				start.Add(-lookback),
			)
		}
		if err != nil {
			return nil, errors.Wrap(err, "load original window")
		}

		allSeries[idx] = op.ProcessNewValues(window.Values)
	}

	result := &messages.Data{}

	for idx, series := range allSeries {
		if len(series) == 0 {
			continue
		}

		timestamps := make([]int64, len(series))
		values := make([]float64, len(series))

		for i, s := range series {
			timestamps[i] = s.Timestamp.UnixMilli()
			values[i] = s.Value
		}

		result.Series = append(result.Series, messages.Series{
			Pos:        idx,
			Timestamps: timestamps,
			Values:     values,
		})
	}

	return result, nil
}

func (sub *Subscription) inputMap() map[string][]int {
	// map from input series names to indices into the operators array
	result := map[string][]int{}
	for idx, inName := range sub.inputSeries {
		result[inName] = append(result[inName], idx)
	}
	return result
}

// Run feeds msgCh with the initial window and then live updates, until done
// is closed or the backfill fails. msgCh is closed on return so the consumer
// can range over it.
func (sub *Subscription) Run(
	done <-chan struct{},
	db storage.Backend,
	br *broker.Broker,
	msgCh chan *messages.Data,
	start time.Time,
) {
	defer close(msgCh)

	initialData, err := sub.getInitialData(db, start)
	if err != nil {
		sub.send(done, msgCh, &messages.Data{
			Error: errors.Wrap(err, "get initial data").Error(),
		})
		return
	}
	if !sub.send(done, msgCh, initialData) {
		return
	}

	sub.produceAllSeries(done, br, msgCh)
}

// send delivers data unless the consumer has gone away.
func (sub *Subscription) send(
	done <-chan struct{},
	out chan *messages.Data,
	data *messages.Data,
) bool {
	select {
	case out <- data:
		return true
	case <-done:
		return false
	}
}

func (sub *Subscription) produceAllSeries(
	done <-chan struct{},
	br *broker.Broker,
	outMsg chan *messages.Data,
) {
	var cutoff time.Time
	if sub.req.ToBTJD != 0 {
		// stop streaming points past the end of a fixed range
		cutoff = schema.FromBTJD(sub.req.ToBTJD)
	}

	msgCh := br.Subscribe()
	defer br.Unsubscribe(msgCh)

	computedMap := sub.inputMap()

	for {
		var m broker.Message
		select {
		case <-done:
			return
		case m = <-msgCh:
		}

		msg, ok := m.(schema.Series)
		if !ok {
			continue
		}

		data := &messages.Data{}

		out, ok := computedMap[msg.SeriesName]
		if !ok {
			continue
		}

		for _, idx := range out {
			op := sub.operators[idx]
			series := op.ProcessNewValues(msg.Values)

			if len(series) == 0 {
				continue
			}

			timestamps := make([]int64, 0, len(series))
			values := make([]float64, 0, len(series))

			for _, s := range series {
				if !cutoff.IsZero() && !s.Timestamp.Before(cutoff) {
					continue
				}

				timestamps = append(timestamps, s.Timestamp.UnixMilli())
				values = append(values, s.Value)
			}

			if len(timestamps) == 0 {
				continue
			}

			data.Series = append(data.Series, messages.Series{
				Pos:        idx,
				Timestamps: timestamps,
				Values:     values,
			})
		}

		if len(data.Series) == 0 {
			continue
		}

		if !sub.send(done, outMsg, data) {
			return
		}
	}
}
