package tessgraph

import (
	"regexp"

	"github.com/mjkukula/tessgraph/schema"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var metricNameRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func metricName(seriesName string) string {
	return "tessgraph_" + metricNameRe.ReplaceAllString(seriesName, "_")
}

// publishPrometheusMetrics exports, per series, the last seen flux value
// and a count of samples published.
func (g *Graph) publishPrometheusMetrics() {
	gauges := map[string]prometheus.Gauge{}
	counters := map[string]prometheus.Counter{}

	msgCh := g.broker.Subscribe()

	for message := range msgCh {
		m, ok := message.(schema.Series)
		if !ok {
			continue
		}

		if _, ok := gauges[m.SeriesName]; !ok {
			gauge := prometheus.NewGauge(prometheus.GaugeOpts{
				Name: metricName(m.SeriesName) + "_last_value",
			})
			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: metricName(m.SeriesName) + "_samples_total",
			})

			for _, collector := range []prometheus.Collector{gauge, counter} {
				if err := prometheus.Register(collector); err != nil {
					g.errCh <- errors.Wrap(err, "register prometheus metric")
				}
			}

			gauges[m.SeriesName] = gauge
			counters[m.SeriesName] = counter
		}

		if len(m.Values) == 0 {
			continue
		}

		lastPoint := m.Values[len(m.Values)-1]
		gauges[m.SeriesName].Set(lastPoint.Value)
		counters[m.SeriesName].Add(float64(len(m.Values)))
	}
}
