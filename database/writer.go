package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (b *Backend) Insert(obj any) {
	b.objects <- obj
}

func (b *Backend) insert(objects []any) error {
	err := b.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range objects {
			res := tx.Create(row)
			if res.Error != nil {
				return errors.Wrap(res.Error, "create")
			}
		}
		return nil
	})
	return err
}

// RunWriter batches inserts into periodic transactions. A whole light curve
// arrives as thousands of samples; per-row transactions are too slow.
func (b *Backend) RunWriter() {
	ticker := time.NewTicker(100 * time.Millisecond)

	var rows []any

	for {
		select {
		case obj := <-b.objects:
			rows = append(rows, obj)
		case <-ticker.C:
			if len(rows) == 0 {
				continue
			}

			err := b.insert(rows)
			rows = nil

			if err != nil {
				b.errCh <- errors.Wrap(err, "transaction")
				return
			}
		}
	}
}

// InsertBatch writes rows synchronously in one transaction. Intended for
// batch CLI use where RunWriter isn't running; a whole light curve would
// otherwise overflow the insert channel.
func (b *Backend) InsertBatch(objects []any) error {
	return b.insert(objects)
}
