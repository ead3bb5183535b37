package database

import (
	"crypto/rand"
	"crypto/sha256"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Backend struct {
	db      *gorm.DB
	errCh   chan error
	objects chan any
}

// Get opens (creating if needed) the local sample store. Fetched light
// curves land here so refolding doesn't refetch from the archive.
func Get(filename string, errCh chan error) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}

	for _, table := range []any{
		&Sample{},
		&Series{},
	} {
		err = db.AutoMigrate(table)
		if err != nil {
			return nil, errors.Wrap(err, "migrate")
		}
	}

	return &Backend{
		db:      db,
		errCh:   errCh,
		objects: make(chan any, 1024),
	}, nil
}

func (b *Backend) GetORM() *gorm.DB {
	return b.db
}

func RandomID() []byte {
	var result [16]byte
	_, err := rand.Read(result[:])
	if err != nil {
		panic(err)
	}
	return result[:]
}

func HashedID(s string) []byte {
	var result [16]byte
	h := sha256.New()
	h.Write([]byte(s))
	sum := h.Sum(nil)
	copy(result[:], sum[:16])
	return result[:]
}

func loadSeries(db *gorm.DB) (map[string]*Series, error) {
	seriesMap := map[string]*Series{}

	var all []*Series
	tx := db.Find(&all)
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "find")
	}

	for _, s := range all {
		seriesMap[s.Name] = s
	}

	return seriesMap, nil
}

func (b *Backend) CreateSeries(seriesNames []string) error {
	seriesMap, err := loadSeries(b.db)
	if err != nil {
		return errors.Wrap(err, "initial load")
	}

	for _, name := range seriesNames {
		if _, found := seriesMap[name]; found {
			continue
		}
		tx := b.db.Create(&Series{
			ID:   HashedID(name),
			Name: name,
			Unit: "",
		})
		if tx.Error != nil {
			return errors.Wrap(tx.Error, "create series")
		}
	}

	return nil
}

func (b *Backend) loadSamples(query *gorm.DB, seriesName string) (schema.Series, error) {
	var rows []Sample

	tx := query.Order("timestamp asc").Find(&rows)
	if tx.Error != nil {
		return schema.Series{}, errors.Wrap(tx.Error, "find")
	}

	result := schema.Series{
		SeriesName: seriesName,
		Values:     make([]schema.Value, len(rows)),
	}
	for idx, row := range rows {
		result.Values[idx] = schema.Value{
			Timestamp: row.Timestamp,
			Value:     row.Value,
		}
	}

	return result, nil
}

func (b *Backend) LoadDataAfter(
	seriesName string,
	start time.Time,
) (schema.Series, error) {
	query := b.db.Where(
		"series_id = ? and timestamp >= ?",
		HashedID(seriesName),
		start,
	)
	return b.loadSamples(query, seriesName)
}

func (b *Backend) LoadDataBetween(
	seriesName string,
	start time.Time,
	end time.Time,
) (schema.Series, error) {
	query := b.db.Where(
		"series_id = ? and timestamp >= ? and timestamp < ?",
		HashedID(seriesName),
		start,
		end,
	)
	return b.loadSamples(query, seriesName)
}

func (b *Backend) InsertValue(
	seriesName string,
	timestamp time.Time,
	value float64,
) error {
	b.Insert(&Sample{
		ID:        RandomID(),
		Timestamp: timestamp,
		Value:     value,
		SeriesID:  HashedID(seriesName),
	})
	return nil
}
