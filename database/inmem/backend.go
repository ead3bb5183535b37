package inmem

import (
	"sync"
	"time"

	"github.com/mjkukula/tessgraph/schema"
)

// Backend is an in-memory storage.Backend used in tests and demo mode.
type Backend struct {
	lock   sync.Mutex
	values map[string][]schema.Value
}

func NewBackend() *Backend {
	return &Backend{
		values: map[string][]schema.Value{},
	}
}

func (b *Backend) LoadDataAfter(
	seriesName string,
	start time.Time,
) (schema.Series, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	var values []schema.Value
	for _, value := range b.values[seriesName] {
		if value.Timestamp.Before(start) {
			continue
		}
		values = append(values, value)
	}
	return schema.Series{
		SeriesName: seriesName,
		Values:     values,
	}, nil
}

func (b *Backend) LoadDataBetween(
	seriesName string,
	start time.Time,
	end time.Time,
) (schema.Series, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	var values []schema.Value
	for _, value := range b.values[seriesName] {
		if value.Timestamp.Before(start) || !value.Timestamp.Before(end) {
			continue
		}
		values = append(values, value)
	}
	return schema.Series{
		SeriesName: seriesName,
		Values:     values,
	}, nil
}

func (b *Backend) CreateSeries(seriesNames []string) error {
	return nil
}

func (b *Backend) InsertValue(
	seriesName string,
	timestamp time.Time,
	value float64,
) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.values[seriesName] = append(b.values[seriesName], schema.Value{
		Timestamp: timestamp,
		Value:     value,
	})
	return nil
}
