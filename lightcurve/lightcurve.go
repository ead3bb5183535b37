package lightcurve

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Curve holds one light curve as parallel slices. Times are days (BTJD for
// TESS products). Sampling is irregular; times are not required to be
// unique. Quality is optional and, when present, parallel to Time.
type Curve struct {
	Time    []float64
	Flux    []float64
	Quality []int32
}

func (c Curve) Len() int {
	return len(c.Time)
}

// Fold maps t onto phase relative to period and epoch:
//
//	((t - t0 + 0.5P) mod P) - 0.5P
//
// The result lies in [-0.5P, 0.5P), with the transit centered at zero.
func Fold(t float64, period float64, epoch float64) float64 {
	x := math.Mod(t-epoch+0.5*period, period)
	if x < 0 {
		x += period
	}
	return x - 0.5*period
}

// FoldAll folds every element of t. Period must be positive.
func FoldAll(t []float64, period float64, epoch float64) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Errorf("fold: period must be positive, got %v", period)
	}

	result := make([]float64, len(t))
	for i, ti := range t {
		result[i] = Fold(ti, period, epoch)
	}
	return result, nil
}

// Folded returns a copy of the curve with times replaced by phase.
func (c Curve) Folded(period float64, epoch float64) (Curve, error) {
	phase, err := FoldAll(c.Time, period, epoch)
	if err != nil {
		return Curve{}, err
	}
	return Curve{Time: phase, Flux: c.Flux, Quality: c.Quality}, nil
}

// NearestIndex returns the index of the timestamp closest to q. Ties go to
// the first occurrence. NaN timestamps are skipped.
func NearestIndex(ts []float64, q float64) (int, error) {
	if len(ts) == 0 {
		return 0, errors.New("nearest index: empty series")
	}

	best := -1
	bestDist := math.Inf(1)
	for i, t := range ts {
		d := math.Abs(t - q)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return 0, errors.New("nearest index: all timestamps are NaN")
	}
	return best, nil
}

// MaskQuality drops cadences with a nonzero quality flag or a NaN time or
// flux. Safe-mode gaps in SPOC products arrive as NaN rows.
func (c Curve) MaskQuality() Curve {
	result := Curve{}
	for i := range c.Time {
		if math.IsNaN(c.Time[i]) || math.IsNaN(c.Flux[i]) {
			continue
		}
		if c.Quality != nil && c.Quality[i] != 0 {
			continue
		}
		result.Time = append(result.Time, c.Time[i])
		result.Flux = append(result.Flux, c.Flux[i])
	}
	return result
}

// SigmaClip drops points more than nsigma standard deviations from the mean
// flux. A single pass; not iterated.
func (c Curve) SigmaClip(nsigma float64) Curve {
	if c.Len() == 0 {
		return Curve{}
	}

	mean, std := stat.MeanStdDev(c.Flux, nil)

	result := Curve{}
	for i := range c.Time {
		if math.Abs(c.Flux[i]-mean) > nsigma*std {
			continue
		}
		result.Time = append(result.Time, c.Time[i])
		result.Flux = append(result.Flux, c.Flux[i])
	}
	return result
}
