package lightcurve

import (
	"io"

	"github.com/astrogo/fitsio"
	"github.com/mjkukula/tessgraph/internal/fitsutil"
	"github.com/pkg/errors"
)

// ReadFITS reads a light curve from a FITS binary table with TIME and FLUX
// columns (SAP_FLUX or PDCSAP_FLUX products work too if renamed upstream;
// we read the literal column names given). QUALITY is read when present.
func ReadFITS(r io.ReadSeeker, timeCol string, fluxCol string) (Curve, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return Curve{}, errors.Wrap(err, "open fits")
	}
	defer f.Close()

	tbl, err := fitsutil.FindTable(f, timeCol, fluxCol)
	if err != nil {
		return Curve{}, errors.Wrap(err, "find table")
	}

	hasQuality := false
	if _, err := fitsutil.ColumnIndex(tbl, "QUALITY"); err == nil {
		hasQuality = true
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return Curve{}, errors.Wrap(err, "read rows")
	}
	defer rows.Close()

	curve := Curve{}
	for rows.Next() {
		cells := map[string]any{}
		if err := rows.Scan(&cells); err != nil {
			return Curve{}, errors.Wrap(err, "scan row")
		}

		t, err := fitsutil.Float64(cells[timeCol])
		if err != nil {
			return Curve{}, errors.Wrapf(err, "column %s", timeCol)
		}
		flux, err := fitsutil.Float64(cells[fluxCol])
		if err != nil {
			return Curve{}, errors.Wrapf(err, "column %s", fluxCol)
		}

		curve.Time = append(curve.Time, t)
		curve.Flux = append(curve.Flux, flux)

		if hasQuality {
			q, err := fitsutil.Int32(cells["QUALITY"])
			if err != nil {
				return Curve{}, errors.Wrap(err, "column QUALITY")
			}
			curve.Quality = append(curve.Quality, q)
		}
	}
	if err := rows.Err(); err != nil {
		return Curve{}, errors.Wrap(err, "rows")
	}

	return curve, nil
}
