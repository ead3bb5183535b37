package storage

import (
	"time"

	"github.com/mjkukula/tessgraph/schema"
)

type Backend interface {
	LoadDataAfter(
		seriesName string,
		start time.Time,
	) (schema.Series, error)

	LoadDataBetween(
		seriesName string,
		start time.Time,
		end time.Time,
	) (schema.Series, error)

	CreateSeries(
		seriesNames []string,
	) error

	InsertValue(
		seriesName string,
		timestamp time.Time,
		value float64,
	) error
}
