package subscription

import (
	"time"

	"github.com/mjkukula/tessgraph/schema"
)

type Request struct {
	Series      []string `json:"series"`
	WindowSize  uint64   `json:"windowSize"`
	LastPointMs uint64   `json:"lastPointMs"`

	// FromBTJD/ToBTJD select a fixed day range instead of a trailing
	// window, e.g. one sector of data. Zero means unset.
	FromBTJD float64 `json:"fromBtjd"`
	ToBTJD   float64 `json:"toBtjd"`
}

func (req *Request) Start(now time.Time) time.Time {
	if req.FromBTJD != 0 {
		return schema.FromBTJD(req.FromBTJD)
	}

	var windowStart time.Time
	if req.WindowSize > 0 {
		windowSize := time.Duration(req.WindowSize) * time.Millisecond
		windowStart = now.Add(-windowSize)
	} else {
		windowStart = time.UnixMilli(0) // get "all" points if windowSize unset
	}

	if req.LastPointMs != 0 {
		tStartAfter := time.UnixMilli(int64(req.LastPointMs + 1))
		if tStartAfter.After(windowStart) {
			// only use if inside the start window
			return tStartAfter
		}
	}

	return windowStart
}
