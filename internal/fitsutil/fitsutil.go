// Package fitsutil holds the fiddly parts of reading FITS binary tables:
// locating a table HDU by column names, coercing cell values (FITS tables
// mix float32/float64/int formats), and decoding TDIM shape cards.
package fitsutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/pkg/errors"
)

// FindTable returns the first binary-table HDU containing all of the named
// columns.
func FindTable(f *fitsio.File, cols ...string) (*fitsio.Table, error) {
	for _, hdu := range f.HDUs() {
		tbl, ok := hdu.(*fitsio.Table)
		if !ok {
			continue
		}

		found := 0
		for _, want := range cols {
			for _, col := range tbl.Cols() {
				if col.Name == want {
					found++
					break
				}
			}
		}
		if found == len(cols) {
			return tbl, nil
		}
	}
	return nil, errors.Errorf("no table HDU with columns %v", cols)
}

// ColumnIndex returns the zero-based index of the named column.
func ColumnIndex(tbl *fitsio.Table, name string) (int, error) {
	for i, col := range tbl.Cols() {
		if col.Name == name {
			return i, nil
		}
	}
	return 0, errors.Errorf("no column named %q", name)
}

// TDIM decodes the TDIMn card for the given zero-based column index, e.g.
// "(11,11)" -> [11, 11]. Returns nil if the card is absent.
func TDIM(tbl *fitsio.Table, colIdx int) ([]int, error) {
	card := tbl.Header().Get(fmt.Sprintf("TDIM%d", colIdx+1))
	if card == nil {
		return nil, nil
	}

	s, ok := card.Value.(string)
	if !ok {
		return nil, errors.Errorf("TDIM%d: unexpected card type %T", colIdx+1, card.Value)
	}

	dims, err := ParseDims(s)
	if err != nil {
		return nil, errors.Wrapf(err, "TDIM%d", colIdx+1)
	}
	return dims, nil
}

// ParseDims decodes a TDIM-style shape string, e.g. "(11,11)".
func ParseDims(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	var dims []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrap(err, "parse dims")
		}
		dims = append(dims, n)
	}
	return dims, nil
}

// Float64 coerces a scalar table cell to float64.
func Float64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int8:
		return float64(x), nil
	default:
		return 0, errors.Errorf("cannot coerce %T to float64", v)
	}
}

// Int32 coerces a scalar table cell to int32.
func Int32(v any) (int32, error) {
	switch x := v.(type) {
	case int32:
		return x, nil
	case int:
		return int32(x), nil
	case int16:
		return int32(x), nil
	case int8:
		return int32(x), nil
	case int64:
		return int32(x), nil
	case uint8:
		return int32(x), nil
	default:
		return 0, errors.Errorf("cannot coerce %T to int32", v)
	}
}

// Float64s coerces an array table cell to []float64.
func Float64s(v any) ([]float64, error) {
	switch x := v.(type) {
	case []float64:
		return x, nil
	case []float32:
		result := make([]float64, len(x))
		for i, f := range x {
			result[i] = float64(f)
		}
		return result, nil
	default:
		return nil, errors.Errorf("cannot coerce %T to []float64", v)
	}
}
