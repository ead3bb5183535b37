package schema

import "time"

// BTJDEpoch is BTJD 0.0 (JD 2457000.0) as wall-clock time. TESS data
// products carry timestamps as days since this epoch.
var BTJDEpoch = time.Date(2015, time.December, 8, 12, 0, 0, 0, time.UTC)

// FromBTJD converts a BTJD day count to a time.Time.
func FromBTJD(days float64) time.Time {
	return BTJDEpoch.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// ToBTJD converts a time.Time to days since the BTJD epoch.
func ToBTJD(t time.Time) float64 {
	return t.Sub(BTJDEpoch).Hours() / 24
}

type Value struct {
	Timestamp time.Time
	Value     float64
}

type Series struct {
	SeriesName string
	Values     []Value
}

func (s Series) Name() string {
	return "series"
}
