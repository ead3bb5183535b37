package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackend(t *testing.T) *Backend {
	t.Helper()

	errCh := make(chan error, 1)
	db, err := Get(filepath.Join(t.TempDir(), "tessgraph.db"), errCh)
	require.NoError(t, err)
	return db
}

func TestCreateSeriesIsIdempotent(t *testing.T) {
	db := testBackend(t)

	require.NoError(t, db.CreateSeries([]string{"a", "b"}))
	require.NoError(t, db.CreateSeries([]string{"a", "b"}))

	var count int64
	tx := db.GetORM().Model(&Series{}).Count(&count)
	require.NoError(t, tx.Error)
	assert.Equal(t, int64(2), count)
}

func TestInsertAndLoad(t *testing.T) {
	db := testBackend(t)
	require.NoError(t, db.CreateSeries([]string{"wasp18"}))

	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := db.InsertValue("wasp18", t0.Add(time.Duration(i)*time.Minute), float64(i))
		require.NoError(t, err)
	}
	require.NoError(t, db.Flush())

	window, err := db.LoadDataAfter("wasp18", t0.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, window.Values, 3)
	assert.Equal(t, 2.0, window.Values[0].Value)

	between, err := db.LoadDataBetween("wasp18", t0, t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Len(t, between.Values, 2)
}

func TestLoadOrdersByTimestamp(t *testing.T) {
	db := testBackend(t)
	require.NoError(t, db.CreateSeries([]string{"s"}))

	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// insert out of order
	for _, offset := range []int{3, 1, 2, 0} {
		err := db.InsertValue("s", t0.Add(time.Duration(offset)*time.Second), float64(offset))
		require.NoError(t, err)
	}
	require.NoError(t, db.Flush())

	window, err := db.LoadDataAfter("s", t0)
	require.NoError(t, err)
	require.Len(t, window.Values, 4)
	for i, v := range window.Values {
		assert.Equal(t, float64(i), v.Value)
	}
}

func TestHashedIDIsStable(t *testing.T) {
	assert.Equal(t, HashedID("x"), HashedID("x"))
	assert.NotEqual(t, HashedID("x"), HashedID("y"))
	assert.Len(t, HashedID("x"), 16)
}
