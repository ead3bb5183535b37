package database

import "time"

type Sample struct {
	ID        []byte    `gorm:"primary_key"`
	Timestamp time.Time `gorm:"index;not null"`
	Value     float64
	SeriesID  []byte `gorm:"index;not null"`
	Series    *Series
}

type Series struct {
	ID   []byte `gorm:"primary_key"`
	Name string `gorm:"unique"`
	Unit string
}
